package activity

// consentInUse interprets one consent-store entry: the camera is in use by
// that application while its last start timestamp is strictly newer than its
// last stop timestamp.
func consentInUse(lastStart, lastStop uint64) bool {
	return lastStart > lastStop
}

// usageTracker turns per-poll "is anything using the camera" snapshots into
// edge-triggered events. The zero value starts inactive.
type usageTracker struct {
	active bool
}

// observe records a snapshot and returns the event to emit, if the aggregate
// state changed since the previous poll.
func (t *usageTracker) observe(anyActive bool) (Event, bool) {
	if anyActive == t.active {
		return Event{}, false
	}
	t.active = anyActive
	if anyActive {
		return Event{Kind: GlobalActive}, true
	}
	return Event{Kind: GlobalInactive}, true
}
