// Package shake watches device-acceleration samples for a shake and toggles
// the snow flag for a fixed hold time. Single-sample threshold trigger, no
// smoothing. A platform without motion events simply never calls Feed.
package shake

import (
	"sync"
	"time"

	"github.com/chewxy/math32"

	"tree-scene/internal/state"
)

const (
	// Threshold is the per-sample delta magnitude (|Δx|+|Δy|+|Δz|) that
	// counts as a shake.
	Threshold = 25.0

	// DefaultHold is how long snow stays on after the last shake.
	DefaultHold = 5 * time.Second
)

// Detector owns the snow flag. Feed runs on the device-event cadence; the
// expiry timer is the only other writer path and both funnel through the
// atomic flag in shared state.
type Detector struct {
	shared *state.Shared
	hold   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	lastX   float32
	lastY   float32
	lastZ   float32
	hasLast bool
	stopped bool
}

// New returns a detector with the default 5 s hold.
func New(shared *state.Shared) *Detector {
	return &Detector{shared: shared, hold: DefaultHold}
}

// SetHold overrides the snow hold time (tests use a short one).
func (d *Detector) SetHold(hold time.Duration) {
	d.mu.Lock()
	d.hold = hold
	d.mu.Unlock()
}

// Feed consumes one acceleration sample. A delta above Threshold versus the
// previous sample turns snow on and (re)starts the hold timer; each further
// shake refreshes the timer instead of stacking timers.
func (d *Detector) Feed(x, y, z float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.hasLast {
		delta := math32.Abs(x-d.lastX) + math32.Abs(y-d.lastY) + math32.Abs(z-d.lastZ)
		if delta > Threshold {
			d.triggerLocked()
		}
	}
	d.lastX, d.lastY, d.lastZ = x, y, z
	d.hasLast = true
}

// Trigger fires the snow toggle directly, as if a shake had been detected.
// Used by the console on platforms without motion events; the detector stays
// the snow flag's only writer.
func (d *Detector) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.triggerLocked()
}

// Set forces the snow flag and cancels any pending expiry, so console-forced
// snow holds until the next Set or shake.
func (d *Detector) Set(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.shared.SetSnow(on)
}

func (d *Detector) triggerLocked() {
	d.shared.SetSnow(true)
	if d.timer == nil {
		d.timer = time.AfterFunc(d.hold, d.expire)
	} else {
		d.timer.Reset(d.hold)
	}
}

func (d *Detector) expire() {
	d.shared.SetSnow(false)
}

// Stop cancels the pending timer so no callback fires after teardown.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
