package litra

import "fmt"

// DeviceType identifies a Litra hardware model.
type DeviceType string

const (
	// Glow is the Logitech Litra Glow.
	Glow DeviceType = "glow"
	// Beam is the Logitech Litra Beam.
	Beam DeviceType = "beam"
	// BeamLX is the Logitech Litra Beam LX, the only model with a rear
	// light channel.
	BeamLX DeviceType = "beam_lx"
)

// ParseDeviceType validates a user-supplied device type string.
func ParseDeviceType(s string) (DeviceType, error) {
	switch DeviceType(s) {
	case Glow, Beam, BeamLX:
		return DeviceType(s), nil
	}
	return "", fmt.Errorf("invalid device type %q, must be one of: %s, %s, %s", s, Glow, Beam, BeamLX)
}

// HasBackLight reports whether the model carries a rear light channel.
func (t DeviceType) HasBackLight() bool {
	return t == BeamLX
}
