// Package activity watches the operating system for webcam activity and
// reports it as a stream of events. Each supported OS uses a different
// mechanism: inotify on Linux, consent-store polling on Windows and unified
// log streaming on macOS.
package activity

import (
	"context"
	"time"

	"github.com/pion/logging"

	intlog "github.com/timrogers/litra-autotoggle/internal/logging"
)

// EventKind tags a raw activity event.
type EventKind string

const (
	// DeviceActivated means a specific video device node was opened for use.
	DeviceActivated EventKind = "device_activated"
	// DeviceDeactivated means a specific video device node was closed.
	DeviceDeactivated EventKind = "device_deactivated"
	// GlobalActive means some application started using a camera, on
	// platforms without per-device granularity.
	GlobalActive EventKind = "global_active"
	// GlobalInactive means no application is using a camera any more.
	GlobalInactive EventKind = "global_inactive"
)

// Event is a single raw activity signal. Device carries the video node path
// for the per-device kinds and is empty for the global kinds.
type Event struct {
	Kind   EventKind
	Device string
}

// Source produces a lazy, infinite stream of raw activity events. Watch is
// consumed exactly once per process: it blocks, sending events in the order
// they were observed, and returns only on a fatal setup failure or when ctx
// is cancelled (nil). Transient read errors are logged and absorbed.
type Source interface {
	Watch(ctx context.Context, events chan<- Event) error
}

// SourceFunc adapts an ordinary function to a Source.
type SourceFunc func(ctx context.Context, events chan<- Event) error

func (f SourceFunc) Watch(ctx context.Context, events chan<- Event) error {
	return f(ctx, events)
}

const defaultPollInterval = 500 * time.Millisecond

// Config selects and tunes the platform source.
type Config struct {
	// VideoDevice restricts monitoring to a single video node
	// (e.g. /dev/video0). Linux only; empty means all nodes.
	VideoDevice string
	// PollInterval is the consent-store polling period on Windows.
	// Zero means 500 ms.
	PollInterval time.Duration
	Logger       logging.LeveledLogger
}

func (c *Config) defaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Logger == nil {
		c.Logger = intlog.NewLogger("activity")
	}
}

// NewSource returns the activity source for the target platform.
func NewSource(cfg Config) (Source, error) {
	cfg.defaults()
	return newSource(cfg)
}

// send delivers ev unless ctx is cancelled first.
func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
