package watchloop

import "time"

// debounceTimer coalesces a burst of file events into a single trigger:
// each Reset pushes the trigger out by the full window, so the timer only
// fires once the events go quiet.
type debounceTimer struct {
	timer  *time.Timer
	window time.Duration
	armed  bool
}

func newDebounceTimer(window time.Duration) *debounceTimer {
	t := time.NewTimer(window)
	if !t.Stop() {
		<-t.C
	}
	return &debounceTimer{timer: t, window: window}
}

// C returns the trigger channel.
func (d *debounceTimer) C() <-chan time.Time {
	return d.timer.C
}

// Reset arms the timer, restarting the full window. Any pending trigger is
// discarded first so a stale fire is never observed.
func (d *debounceTimer) Reset() {
	if d.armed && !d.timer.Stop() {
		<-d.timer.C
	}
	d.timer.Reset(d.window)
	d.armed = true
}

// Fired marks the pending trigger as consumed. Call it after receiving
// from C.
func (d *debounceTimer) Fired() {
	d.armed = false
}

// Stop disarms the timer and discards any pending trigger.
func (d *debounceTimer) Stop() {
	if d.armed && !d.timer.Stop() {
		<-d.timer.C
	}
	d.armed = false
}
