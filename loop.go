// Package autotoggle turns Litra lights on and off as the computer's webcam
// becomes active and idle. Raw per-OS activity events are debounced into
// stabilized decisions, and each decision is applied to the device set
// matching the configured filter, resolved fresh at decision time.
package autotoggle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pion/logging"

	intlog "github.com/timrogers/litra-autotoggle/internal/logging"
	"github.com/timrogers/litra-autotoggle/pkg/activity"
)

// Channel capacities between the pipeline stages. Monitoring must keep
// observing while a decision blocks on USB I/O, so both stages are buffered.
const (
	eventBuffer    = 64
	decisionBuffer = 16
)

// NoDeviceError reports a require-device policy violation: the policy is
// set and no matching light is connected.
type NoDeviceError struct {
	Serial string
}

func (e *NoDeviceError) Error() string {
	if e.Serial != "" {
		return fmt.Sprintf("Litra device with serial number %s not found", e.Serial)
	}
	return "no Litra devices found"
}

// LoopConfig assembles a control loop.
type LoopConfig struct {
	Enumerator Enumerator
	Filter     DeviceFilter
	Source     activity.Source

	// Delay is the debounce window. Zero means DefaultDelay.
	Delay time.Duration
	// RequireDevice makes the absence of any matching light fatal, both at
	// startup and at any later decision.
	RequireDevice bool
	// BackLight also drives the rear channel on lights that have one.
	BackLight bool

	Logger logging.LeveledLogger
}

// Loop owns the pipeline lifecycle: it spawns the activity source and the
// aggregator, consumes stabilized decisions and actuates the lights, until
// ctx is cancelled or a fatal condition arises.
type Loop struct {
	selector      *Selector
	source        activity.Source
	controller    *Controller
	aggregator    *Aggregator
	requireDevice bool
	serialFilter  string
	logger        logging.LeveledLogger

	state State
}

func NewLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Enumerator == nil {
		return nil, errors.New("autotoggle: an enumerator is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("autotoggle: an activity source is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = intlog.NewLogger("autotoggle")
	}

	return &Loop{
		selector:      NewSelector(cfg.Enumerator, cfg.Filter),
		source:        cfg.Source,
		controller:    NewController(cfg.BackLight, cfg.Logger),
		aggregator:    NewAggregator(cfg.Delay, cfg.Logger),
		requireDevice: cfg.RequireDevice,
		serialFilter:  cfg.Filter.Serial(),
		logger:        cfg.Logger,
		state:         StateStarting,
	}, nil
}

// Status returns the loop's current state.
func (l *Loop) Status() State {
	return l.state
}

// Run blocks until ctx is cancelled (nil) or a fatal condition arises: an
// activity source setup failure, or a require-device policy violation.
// Transient trouble (an unreadable activity log, an unplugged light, a
// failed USB write) is logged and absorbed.
func (l *Loop) Run(ctx context.Context) error {
	noop := func() error { return nil }

	if err := l.state.Update(StateWatching, l.start); err != nil {
		l.state.Update(StateExiting, noop)
		return err
	}

	err := l.watch(ctx)
	l.state.Update(StateExiting, noop)
	return err
}

// start resolves the initial device set and enforces the require-device
// policy once before watching begins.
func (l *Loop) start() error {
	lights, err := l.selector.Resolve()
	if err != nil {
		return fmt.Errorf("resolve lights: %w", err)
	}

	if len(lights) == 0 {
		if l.requireDevice {
			return &NoDeviceError{Serial: l.serialFilter}
		}
		l.logger.Warn("no Litra devices found")
		return nil
	}

	for _, light := range lights {
		l.logger.Infof("found %s device (serial number: %s)", light.Model(), serialOrDash(light))
	}
	return nil
}

func (l *Loop) watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan activity.Event, eventBuffer)
	decisions := make(chan bool, decisionBuffer)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- l.source.Watch(ctx, events)
	}()
	go l.aggregator.Run(ctx, events, decisions)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-watchErr:
			if err != nil {
				return fmt.Errorf("activity source: %w", err)
			}
			return nil

		case on := <-decisions:
			if err := l.actuate(on); err != nil {
				return err
			}
		}
	}
}

// actuate applies one stabilized decision to a freshly resolved device set.
func (l *Loop) actuate(on bool) error {
	l.logger.Infof("attempting to turn %s Litra device(s)", onOff(on))

	lights, err := l.selector.Resolve()
	if err != nil {
		// Absence is unproven on a failed enumeration, so the
		// require-device policy is not evaluated this cycle.
		l.logger.Warnf("resolving lights: %v", err)
		return nil
	}

	if len(lights) == 0 {
		if l.requireDevice {
			return &NoDeviceError{Serial: l.serialFilter}
		}
		l.logger.Warn("no Litra devices found")
		return nil
	}

	res := l.controller.Apply(on, lights)
	l.logger.Debugf("turned %s %d light(s), %d failed", onOff(on), res.Applied, res.Failed)
	return nil
}
