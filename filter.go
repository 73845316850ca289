package autotoggle

import (
	"errors"

	"github.com/timrogers/litra-autotoggle/pkg/litra"
)

// ErrMultipleFilters is returned when more than one filter dimension is
// supplied at once.
var ErrMultipleFilters = errors.New("only one filter (serial number, device path or device type) can be specified at a time")

// DeviceFilter narrows the target device set along at most one dimension.
// The zero value matches every device.
type DeviceFilter struct {
	serial string
	path   string
	model  litra.DeviceType
}

// NewDeviceFilter builds a filter from the raw configuration values. Empty
// strings leave a dimension unset; setting two or more dimensions fails
// before any device enumeration happens.
func NewDeviceFilter(serial, path, deviceType string) (DeviceFilter, error) {
	dims := 0
	for _, set := range []bool{serial != "", path != "", deviceType != ""} {
		if set {
			dims++
		}
	}
	if dims > 1 {
		return DeviceFilter{}, ErrMultipleFilters
	}

	f := DeviceFilter{serial: serial, path: path}
	if deviceType != "" {
		model, err := litra.ParseDeviceType(deviceType)
		if err != nil {
			return DeviceFilter{}, err
		}
		f.model = model
	}
	return f, nil
}

// Matches reports whether the light passes the filter. Serial comparison is
// exact and case-sensitive.
func (f DeviceFilter) Matches(l litra.Light) bool {
	switch {
	case f.serial != "":
		return l.Serial() == f.serial
	case f.path != "":
		return l.Path() == f.path
	case f.model != "":
		return l.Model() == f.model
	}
	return true
}

// Serial returns the serial number dimension, if that is the one set.
func (f DeviceFilter) Serial() string {
	return f.serial
}
