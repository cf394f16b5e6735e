// Package orbit integrates the gesture angular-velocity signal into the
// camera's azimuth/polar angles around the scene's vertical axis.
package orbit

import (
	"github.com/chewxy/math32"

	"tree-scene/internal/vec"
)

const (
	// polarMargin keeps the polar angle strictly inside (margin, π−margin)
	// so the camera never flips over the pole.
	polarMargin = 0.1

	// autoRotateSpeed is the slow constant azimuth drift (rad/s) used when
	// the signal is zero and the scene is formed.
	autoRotateSpeed = 0.25
)

// Controller holds the camera orbit angles. Long-lived for the session;
// mutated only from the render frame.
type Controller struct {
	Azimuth float32
	Polar   float32
}

// New returns a controller at a slightly elevated three-quarter view.
func New() *Controller {
	return &Controller{Azimuth: 0.6, Polar: math32.Pi / 2.4}
}

// Update applies one frame of the angular-velocity signal. The signal is a
// per-sample delta, so X/Y are added directly; only the auto-rotation
// fallback scales with dt. A polar update that would leave the safe interval
// is dropped entirely rather than clamped-and-applied.
func (c *Controller) Update(dt float32, sig vec.Vec2, formed bool) {
	if sig.X == 0 && sig.Y == 0 {
		if formed {
			c.Azimuth += autoRotateSpeed * dt
		}
		return
	}
	c.Azimuth += sig.X
	if next := c.Polar + sig.Y; next > polarMargin && next < math32.Pi-polarMargin {
		c.Polar = next
	}
}

// Position returns the camera position at the given radius from target for
// the current angles.
func (c *Controller) Position(target vec.Vec3, radius float32) vec.Vec3 {
	sp := math32.Sin(c.Polar)
	return vec.New(
		target.X+radius*sp*math32.Sin(c.Azimuth),
		target.Y+radius*math32.Cos(c.Polar),
		target.Z+radius*sp*math32.Cos(c.Azimuth),
	)
}
