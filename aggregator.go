package autotoggle

import (
	"context"
	"time"

	"github.com/pion/logging"

	"github.com/timrogers/litra-autotoggle/pkg/activity"
)

// DefaultDelay is the debounce window applied when none is configured.
// Webcams often open and close their node several times while starting up;
// acting on each raw event would flicker the lights.
const DefaultDelay = 1500 * time.Millisecond

// Aggregator folds raw activity events into stabilized on/off decisions.
// It owns the active-device set and the last stabilized decision
// exclusively; nothing else reads or writes them.
type Aggregator struct {
	delay  time.Duration
	logger logging.LeveledLogger

	active     map[string]struct{}
	global     bool
	stabilized bool
}

func NewAggregator(delay time.Duration, logger logging.LeveledLogger) *Aggregator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Aggregator{
		delay:  delay,
		logger: logger,
		active: make(map[string]struct{}),
	}
}

// Run consumes events until ctx is cancelled or events is closed, sending at
// most one stabilized decision per quiescent window to decisions. A single
// delay timer is armed while the pending aggregate differs from the last
// stabilized decision; every further event re-arms it with the full delay,
// and an event that flips the aggregate back cancels it outright.
func (a *Aggregator) Run(ctx context.Context, events <-chan activity.Event, decisions chan<- bool) {
	var timer *time.Timer
	var fire <-chan time.Time

	stop := func() {
		if timer != nil {
			timer.Stop()
			timer, fire = nil, nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			a.apply(ev)

			if a.inUse() == a.stabilized {
				// Flickered back before the timer fired: nothing to emit.
				stop()
				continue
			}
			// Each raw event restarts the full quiescent window. A fresh
			// timer per arm means a stale expiry can never be selected.
			stop()
			timer = time.NewTimer(a.delay)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			a.stabilized = a.inUse()
			a.logger.Debugf("stabilized camera state: in use = %v", a.stabilized)
			select {
			case decisions <- a.stabilized:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (a *Aggregator) apply(ev activity.Event) {
	switch ev.Kind {
	case activity.DeviceActivated:
		a.active[ev.Device] = struct{}{}
	case activity.DeviceDeactivated:
		delete(a.active, ev.Device)
	case activity.GlobalActive:
		a.global = true
	case activity.GlobalInactive:
		a.global = false
	}
}

// inUse is the aggregate predicate: some device node is open, or the
// platform-global flag is set.
func (a *Aggregator) inUse() bool {
	return len(a.active) > 0 || a.global
}
