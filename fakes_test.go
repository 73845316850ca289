package autotoggle

import (
	"errors"
	"sync"

	"github.com/timrogers/litra-autotoggle/pkg/litra"
)

// fakeLight records the power commands it receives.
type fakeLight struct {
	serial string
	path   string
	model  litra.DeviceType

	powerErr     error
	backPowerErr error

	mu         sync.Mutex
	powerCalls []bool
	backCalls  []bool
	applied    chan bool
}

var _ litra.Light = &fakeLight{}

func (f *fakeLight) Serial() string          { return f.serial }
func (f *fakeLight) Path() string            { return f.path }
func (f *fakeLight) Model() litra.DeviceType { return f.model }

func (f *fakeLight) SetPower(on bool) error {
	f.mu.Lock()
	f.powerCalls = append(f.powerCalls, on)
	f.mu.Unlock()
	if f.applied != nil {
		f.applied <- on
	}
	return f.powerErr
}

func (f *fakeLight) SetBackPower(on bool) error {
	if !f.model.HasBackLight() {
		return litra.ErrBackLightUnsupported
	}
	f.mu.Lock()
	f.backCalls = append(f.backCalls, on)
	f.mu.Unlock()
	return f.backPowerErr
}

// fakeEnumerator serves scripted device sets, one per Lights call; the last
// set repeats once the script runs out.
type fakeEnumerator struct {
	mu   sync.Mutex
	sets [][]litra.Light
	err  error
	call int
}

var _ Enumerator = &fakeEnumerator{}

var errBusBroken = errors.New("hid bus unavailable")

func (f *fakeEnumerator) Lights() ([]litra.Light, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sets) == 0 {
		return nil, nil
	}
	set := f.sets[f.call]
	if f.call < len(f.sets)-1 {
		f.call++
	}
	return set, nil
}
