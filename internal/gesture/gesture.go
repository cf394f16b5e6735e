// Package gesture turns noisy hand-tracking samples into discrete mode
// commands and a smoothed 2D angular-velocity signal for the camera. The
// recognizer itself is an external collaborator behind an interface; its
// inference runs in this package's own sampling loop, never in the render
// frame, so a slow inference cannot stall drawing.
package gesture

import (
	"context"
	"errors"

	"github.com/chewxy/math32"

	"tree-scene/internal/logger"
	"tree-scene/internal/state"
	"tree-scene/internal/vec"
)

const (
	// Sensitivity scales the frame-to-frame landmark delta into camera
	// angular velocity.
	Sensitivity = 5.0
	// DeadzoneX floors small scaled X deltas to zero to suppress jitter.
	// Y is left raw for finer vertical control.
	DeadzoneX = 0.002

	confidenceGate = 0.4

	labelOpenPalm   = "Open_Palm"
	labelClosedFist = "Closed_Fist"
)

// ErrUnavailable marks terminal recognizer failures (model load, camera
// permission). The loop reports it as status text and stops without retrying;
// orbit control degrades to console/auto-rotate.
var ErrUnavailable = errors.New("gesture recognizer unavailable")

// Landmark is one hand point, normalized to [0,1] per axis.
type Landmark struct {
	X, Y, Z float32
}

// Sample is one recognizer emission. Landmarks is empty when no hand is in
// frame. Samples are consumed once and not retained.
type Sample struct {
	Label      string
	Confidence float32
	Landmarks  []Landmark
}

// Recognizer is the hand-tracking collaborator. Next blocks until a sample is
// available or ctx is done; it returns an error wrapping ErrUnavailable for
// unrecoverable failures.
type Recognizer interface {
	Next(ctx context.Context) (Sample, error)
	Close() error
}

// Processor conditions recognizer samples. lastHand is private to the
// processor, the single consumer of samples; only the conditioned signal
// crosses to the render cadence, through the shared state cell.
type Processor struct {
	rec      Recognizer
	shared   *state.Shared
	log      *logger.Logger
	lastHand vec.Vec2
	hasLast  bool
}

// New returns a processor publishing into shared.
func New(rec Recognizer, shared *state.Shared, log *logger.Logger) *Processor {
	return &Processor{rec: rec, shared: shared, log: log}
}

// Process consumes one sample: a confident Open_Palm or Closed_Fist flips the
// scene mode, and the tracked landmark's delta becomes the angular-velocity
// signal. A sample with no hand resets the tracked position and zeroes the
// signal.
func (p *Processor) Process(s Sample) {
	if s.Label != "" {
		p.shared.SetStatus("gesture: " + s.Label)
	}
	if s.Confidence > confidenceGate {
		switch s.Label {
		case labelOpenPalm:
			p.shared.SetMode(state.Chaos)
		case labelClosedFist:
			p.shared.SetMode(state.Formed)
		}
	}

	if len(s.Landmarks) == 0 {
		p.hasLast = false
		p.shared.SetSignal(vec.Vec2{})
		return
	}

	lm := s.Landmarks[0]
	cur := vec.Vec2{X: lm.X, Y: lm.Y}
	if p.hasLast {
		dx := (cur.X - p.lastHand.X) * Sensitivity
		dy := (cur.Y - p.lastHand.Y) * Sensitivity
		if math32.Abs(dx) <= DeadzoneX {
			dx = 0
		}
		// Y inverted for natural control feel: hand up orbits the camera up.
		p.shared.SetSignal(vec.Vec2{X: dx, Y: -dy})
	}
	// The tracked position updates regardless of the deadzone outcome.
	p.lastHand = cur
	p.hasLast = true
}

// Run is the sampling loop, independent of the render frame. Transient
// per-sample errors are logged and skipped; ErrUnavailable ends the loop with
// a status line (no automatic retry). The recognizer is closed on exit so the
// camera stream is released at teardown.
func (p *Processor) Run(ctx context.Context) {
	defer p.rec.Close()
	for {
		s, err := p.rec.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, ErrUnavailable) {
				p.shared.SetStatus("gesture control off: " + err.Error())
				p.log.Log("gesture: " + err.Error())
				return
			}
			p.log.Log("gesture sample skipped: " + err.Error())
			continue
		}
		p.Process(s)
	}
}
