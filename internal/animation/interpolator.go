// Package animation advances every instance's live transform toward the
// arrangement selected by the scene mode, once per rendered frame. Smoothing
// is exponential approach (factor = clamp(dt*rate, 0, 1)), not a fixed-length
// tween: convergence speed tracks the frame rate but never overshoots.
package animation

import (
	"github.com/chewxy/math32"

	"tree-scene/internal/population"
	"tree-scene/internal/state"
	"tree-scene/internal/vec"
)

const (
	// Ornament world scale lerps between these two at ornamentScaleRate.
	ornamentFormedScale = 2.0
	ornamentChaosScale  = 4.0
	ornamentScaleRate   = 3.0

	// Foliage wobble: small continuous rotation, independent of mode.
	wobbleAmplitude = 0.12
	wobbleSpeed     = 0.8

	// Ornament roll oscillation while formed.
	rollAmplitude = 0.15
	rollSpeed     = 1.2
)

// goalFor is the closed set of target-position providers, one per mode. The
// step loop stays oblivious to how many modes exist.
var goalFor = map[state.Mode]func(*population.Instance) vec.Vec3{
	state.Chaos:  func(in *population.Instance) vec.Vec3 { return in.ChaosPos },
	state.Formed: func(in *population.Instance) vec.Vec3 { return in.TargetPos },
}

// Interpolator owns the animation clock. One long-lived value serves the
// whole session; populations come and go across reconfigurations.
type Interpolator struct {
	clock float32
}

// New returns an interpolator with the clock at zero.
func New() *Interpolator {
	return &Interpolator{}
}

// Step advances every instance in the set by dt seconds toward the given
// mode. Writes are confined to each instance's live fields; nothing here
// allocates, so the per-frame path stays flat at 500+ instances.
func (it *Interpolator) Step(set *population.Set, dt float32, mode state.Mode) {
	if set == nil {
		return
	}
	it.clock += dt
	goal := goalFor[mode]

	stepPositions(set.Foliage, dt, goal)
	stepPositions(set.Ornaments, dt, goal)
	stepPositions(set.Lights, dt, goal)

	it.stepFoliage(set.Foliage, dt, mode)
	it.stepOrnaments(set.Ornaments, dt, mode)
	it.stepLights(set.Lights, mode)
}

// stepPositions applies the exponential position approach shared by all
// categories. The factor clamp keeps a slow frame from overshooting.
func stepPositions(p *population.Population, dt float32, goal func(*population.Instance) vec.Vec3) {
	if p == nil {
		return
	}
	t := vec.Clamp01(dt * p.Rate)
	for i := range p.Items {
		in := &p.Items[i]
		in.Pos = in.Pos.Lerp(goal(in), t)
	}
}

func (it *Interpolator) stepFoliage(p *population.Population, dt float32, mode state.Mode) {
	if p == nil {
		return
	}
	for i := range p.Items {
		in := &p.Items[i]
		if mode == state.Chaos {
			in.Rot.X += in.RotationSpeed.X * dt
			in.Rot.Y += in.RotationSpeed.Y * dt
			in.Rot.Z += in.RotationSpeed.Z * dt
		}
		// Wobble runs in both modes.
		in.Rot.Y += math32.Cos(it.clock*wobbleSpeed+in.Phase) * wobbleAmplitude * dt
		in.Rot.Z += math32.Sin(it.clock*wobbleSpeed+in.Phase) * wobbleAmplitude * dt
		in.Scale = in.ScaleBase
	}
}

func (it *Interpolator) stepOrnaments(p *population.Population, dt float32, mode state.Mode) {
	if p == nil {
		return
	}
	scaleT := vec.Clamp01(dt * ornamentScaleRate)
	for i := range p.Items {
		in := &p.Items[i]
		if mode == state.Formed {
			in.Scale = vec.Lerp1(in.Scale, ornamentFormedScale, scaleT)
			// Yaw faces the card outward from the tree axis.
			in.Rot = vec.Vec3{
				X: 0,
				Y: math32.Atan2(in.Pos.X, in.Pos.Z),
				Z: math32.Sin(it.clock*rollSpeed+in.Phase) * rollAmplitude,
			}
		} else {
			in.Scale = vec.Lerp1(in.Scale, ornamentChaosScale, scaleT)
			in.Rot.X += in.RotationSpeed.X * dt
			in.Rot.Y += in.RotationSpeed.Y * dt
			in.Rot.Z += in.RotationSpeed.Z * dt
		}
	}
}

// stepLights drives emissive brightness as a per-instance sinusoid, gated to
// exactly zero in chaos (instant, not smoothed).
func (it *Interpolator) stepLights(p *population.Population, mode state.Mode) {
	if p == nil {
		return
	}
	for i := range p.Items {
		in := &p.Items[i]
		if mode != state.Formed {
			in.Brightness = 0
			continue
		}
		in.Brightness = 0.5 + 0.5*math32.Sin(it.clock*in.BlinkSpeed+in.Phase)
	}
}
