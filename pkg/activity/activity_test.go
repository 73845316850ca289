package activity

import (
	"context"
	"testing"
	"time"
)

func TestSourceFuncAdapter(t *testing.T) {
	events := make(chan Event, 1)
	src := SourceFunc(func(ctx context.Context, events chan<- Event) error {
		events <- Event{Kind: GlobalActive}
		return nil
	})

	if err := src.Watch(context.Background(), events); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	ev := <-events
	if ev.Kind != GlobalActive {
		t.Fatalf("expected GlobalActive, got %q", ev.Kind)
	}
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered and never read: only cancellation can release the send.
	events := make(chan Event)
	done := make(chan bool)
	go func() {
		done <- send(ctx, events, Event{Kind: GlobalActive})
	}()

	select {
	case delivered := <-done:
		if delivered {
			t.Fatal("send must report failure after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("send did not return after cancellation")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.defaults()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultPollInterval, cfg.PollInterval)
	}
	if cfg.Logger == nil {
		t.Fatal("expected a default logger")
	}
}
