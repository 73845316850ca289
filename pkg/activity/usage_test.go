package activity

import "testing"

func TestConsentInUse(t *testing.T) {
	if !consentInUse(200, 100) {
		t.Error("start > stop must mean in use")
	}
	if consentInUse(100, 200) {
		t.Error("start < stop must mean not in use")
	}
	if consentInUse(100, 100) {
		t.Error("start == stop must mean not in use")
	}
	if consentInUse(0, 0) {
		t.Error("an untouched entry must mean not in use")
	}
}

func TestUsageTrackerEmitsEdgesOnly(t *testing.T) {
	var track usageTracker

	if _, changed := track.observe(false); changed {
		t.Fatal("inactive snapshot on an inactive tracker must not emit")
	}

	ev, changed := track.observe(true)
	if !changed || ev.Kind != GlobalActive {
		t.Fatalf("expected GlobalActive, got changed=%v kind=%q", changed, ev.Kind)
	}

	if _, changed := track.observe(true); changed {
		t.Fatal("repeated active snapshots must not emit again")
	}

	ev, changed = track.observe(false)
	if !changed || ev.Kind != GlobalInactive {
		t.Fatalf("expected GlobalInactive, got changed=%v kind=%q", changed, ev.Kind)
	}

	if _, changed := track.observe(false); changed {
		t.Fatal("repeated inactive snapshots must not emit again")
	}
}
