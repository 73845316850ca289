// Package litra enumerates and controls Logitech Litra lights over HID.
package litra

import (
	"fmt"
	"sort"

	"github.com/sstallion/go-hid"
)

const vendorID = 0x046d

// usagePage of the HID interface that accepts vendor commands. Each Litra
// also advertises a plain keyboard interface, which must be skipped.
const usagePage = 0xff43

var productIDs = map[uint16]DeviceType{
	0xc900: Glow,
	0xc901: Beam,
	0xc903: BeamLX,
}

// Litra owns the process-wide hidapi context.
type Litra struct{}

// New initializes the HID library. Close must be called before the process
// exits.
func New() (*Litra, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("litra: init hidapi: %w", err)
	}
	return &Litra{}, nil
}

func (l *Litra) Close() error {
	return hid.Exit()
}

// Lights enumerates the currently connected Litra devices, ordered by path.
// An empty result means nothing is plugged in; an error means the bus could
// not be enumerated at all.
func (l *Litra) Lights() ([]Light, error) {
	var lights []Light
	err := hid.Enumerate(vendorID, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		model, ok := productIDs[info.ProductID]
		if !ok || info.UsagePage != usagePage {
			return nil
		}
		lights = append(lights, &light{
			path:   info.Path,
			serial: info.SerialNbr,
			model:  model,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("litra: enumerate devices: %w", err)
	}

	sort.Slice(lights, func(i, j int) bool {
		return lights[i].Path() < lights[j].Path()
	})
	return lights, nil
}
