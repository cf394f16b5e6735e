// Package state holds the few values shared between the render frame and the
// other sampling cadences (gesture loop, device-motion events). Each value is
// single-writer/multi-reader and crosses goroutines as a whole-value atomic
// replacement, so readers never observe a partial write and no locks are held
// in the frame path.
package state

import (
	"sync/atomic"

	"tree-scene/internal/vec"
)

// Mode is the scene arrangement: scattered (Chaos) or assembled (Formed).
type Mode int32

const (
	Chaos Mode = iota
	Formed
)

// String returns the mode name for status display.
func (m Mode) String() string {
	if m == Formed {
		return "formed"
	}
	return "chaos"
}

// Shared is the cross-cadence state. Writers: mode and status by the gesture
// loop and console commands, signal by the gesture loop only, snow by the
// shake detector only. The frame loop reads each at one point per frame.
type Shared struct {
	mode   atomic.Int32
	signal atomic.Value // vec.Vec2
	status atomic.Value // string
	snow   atomic.Bool
}

// New returns shared state starting in Chaos with a zero signal.
func New() *Shared {
	s := &Shared{}
	s.signal.Store(vec.Vec2{})
	s.status.Store("")
	return s
}

// Mode returns the current scene mode.
func (s *Shared) Mode() Mode {
	return Mode(s.mode.Load())
}

// SetMode replaces the scene mode.
func (s *Shared) SetMode(m Mode) {
	s.mode.Store(int32(m))
}

// Signal returns the latest conditioned angular-velocity signal.
func (s *Shared) Signal() vec.Vec2 {
	return s.signal.Load().(vec.Vec2)
}

// SetSignal replaces the angular-velocity signal.
func (s *Shared) SetSignal(v vec.Vec2) {
	s.signal.Store(v)
}

// Status returns the human-readable status line (gesture label, errors).
func (s *Shared) Status() string {
	return s.status.Load().(string)
}

// SetStatus replaces the status line.
func (s *Shared) SetStatus(text string) {
	s.status.Store(text)
}

// Snow reports whether the snow effect is active.
func (s *Shared) Snow() bool {
	return s.snow.Load()
}

// SetSnow sets the snow flag.
func (s *Shared) SetSnow(on bool) {
	s.snow.Store(on)
}
