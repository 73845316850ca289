package autotoggle

import (
	"fmt"

	"github.com/timrogers/litra-autotoggle/pkg/litra"
)

// Enumerator lists the currently connected lights. *litra.Litra satisfies it.
type Enumerator interface {
	Lights() ([]litra.Light, error)
}

// Selector resolves the live target device set. It holds no device handles
// between calls: USB devices come and go, so the set is resolved fresh for
// every decision.
type Selector struct {
	enum   Enumerator
	filter DeviceFilter
}

func NewSelector(enum Enumerator, filter DeviceFilter) *Selector {
	return &Selector{enum: enum, filter: filter}
}

// Resolve returns the connected lights matching the filter. An empty result
// is not an error; a failed enumeration is.
func (s *Selector) Resolve() ([]litra.Light, error) {
	lights, err := s.enum.Lights()
	if err != nil {
		return nil, fmt.Errorf("enumerate lights: %w", err)
	}

	matched := make([]litra.Light, 0, len(lights))
	for _, l := range lights {
		if s.filter.Matches(l) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}
