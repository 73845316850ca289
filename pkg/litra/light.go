package litra

import (
	"errors"
	"fmt"

	"github.com/sstallion/go-hid"
)

// ErrBackLightUnsupported is returned by SetBackPower on models without a
// rear light channel.
var ErrBackLightUnsupported = errors.New("litra: device has no back light channel")

// Light is a single connected Litra device.
type Light interface {
	// Serial returns the device serial number, or "" when the hardware
	// does not report one.
	Serial() string
	// Path returns the opaque OS path of the HID control interface.
	Path() string
	Model() DeviceType
	SetPower(on bool) error
	// SetBackPower drives the rear light channel. It fails with
	// ErrBackLightUnsupported on models that lack one.
	SetBackPower(on bool) error
}

// HID++ vendor feature sub-commands understood by the control interface.
const (
	cmdPower     = 0x1c
	cmdBackPower = 0x2c
)

type light struct {
	path   string
	serial string
	model  DeviceType
}

var _ Light = &light{}

func (l *light) Serial() string    { return l.serial }
func (l *light) Path() string      { return l.path }
func (l *light) Model() DeviceType { return l.model }

func (l *light) SetPower(on bool) error {
	return l.write(setMessage(l.model, cmdPower, on))
}

func (l *light) SetBackPower(on bool) error {
	if !l.model.HasBackLight() {
		return ErrBackLightUnsupported
	}
	return l.write(setMessage(l.model, cmdBackPower, on))
}

// write opens the control interface, sends one command and closes it again,
// so no handle outlives a single command. Devices unplug between decisions;
// holding handles open would leave them dangling.
func (l *light) write(msg []byte) error {
	dev, err := hid.OpenPath(l.path)
	if err != nil {
		return fmt.Errorf("litra: open %s: %w", l.path, err)
	}
	defer dev.Close()

	if _, err := dev.Write(msg); err != nil {
		return fmt.Errorf("litra: write %s: %w", l.path, err)
	}
	return nil
}

// setMessage builds the 20-byte vendor command. The feature index differs
// between the original Litra models and the Beam LX.
func setMessage(model DeviceType, cmd byte, on bool) []byte {
	featureIndex := byte(0x04)
	if model == BeamLX {
		featureIndex = 0x06
	}

	var state byte
	if on {
		state = 0x01
	}

	msg := make([]byte, 20)
	msg[0] = 0x11
	msg[1] = 0xff
	msg[2] = featureIndex
	msg[3] = cmd
	msg[4] = state
	return msg
}
