package animation

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tree-scene/internal/config"
	"tree-scene/internal/population"
	"tree-scene/internal/state"
	"tree-scene/internal/vec"
)

func buildSet(t *testing.T) *population.Set {
	t.Helper()
	cfg := config.Default()
	cfg.Counts = config.Counts{Foliage: 40, OrnamentCap: 6, Lights: 20}
	cfg.Photos = []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png"}
	set, err := population.Build(rand.New(rand.NewSource(1)), cfg)
	require.NoError(t, err)
	return set
}

const frame = float32(1.0 / 60.0)

func TestStepConvergesToFormedTargets(t *testing.T) {
	set := buildSet(t)
	it := New()

	prev := make([]float32, len(set.Foliage.Items))
	for i := range set.Foliage.Items {
		in := &set.Foliage.Items[i]
		prev[i] = in.Pos.Dist(in.TargetPos)
	}

	// rate 2.0 at 1/60s per step shrinks the gap by 1/30 per frame; starting
	// from the chaos scatter (up to ~80 world units away) that is inside 1e-3
	// of the target within 400 frames.
	for step := 0; step < 400; step++ {
		it.Step(set, frame, state.Formed)
		for i := range set.Foliage.Items {
			in := &set.Foliage.Items[i]
			d := in.Pos.Dist(in.TargetPos)
			if prev[i] > 5e-3 {
				assert.Less(t, d, prev[i], "instance %d distance not decreasing at step %d", i, step)
			}
			prev[i] = d
		}
	}
	for i := range set.Foliage.Items {
		assert.Less(t, prev[i], float32(1e-3), "instance %d did not converge", i)
	}
}

func TestStepNeverOvershoots(t *testing.T) {
	set := buildSet(t)
	it := New()

	// A huge frame delta clamps the blend factor to 1: land exactly on the
	// target, never past it.
	it.Step(set, 10, state.Formed)
	for i := range set.Foliage.Items {
		in := &set.Foliage.Items[i]
		assert.InDelta(t, float64(in.TargetPos.X), float64(in.Pos.X), 1e-5, "instance %d", i)
		assert.InDelta(t, float64(in.TargetPos.Y), float64(in.Pos.Y), 1e-5, "instance %d", i)
		assert.InDelta(t, float64(in.TargetPos.Z), float64(in.Pos.Z), 1e-5, "instance %d", i)
	}
}

func TestStepContinuousAcrossModeFlip(t *testing.T) {
	set := buildSet(t)
	it := New()

	// Head toward formed for a while, but stop before convergence.
	for i := 0; i < 30; i++ {
		it.Step(set, frame, state.Formed)
	}
	before := make([]vec.Vec3, len(set.Foliage.Items))
	for i := range set.Foliage.Items {
		before[i] = set.Foliage.Items[i].Pos
	}

	// Flip back to chaos: the first frame must blend from the pre-flip
	// position toward the chaos target, not reset to it.
	it.Step(set, frame, state.Chaos)
	blend := vec.Clamp01(frame * set.Foliage.Rate)
	for i := range set.Foliage.Items {
		in := &set.Foliage.Items[i]
		want := before[i].Lerp(in.ChaosPos, blend)
		assert.InDelta(t, float64(want.X), float64(in.Pos.X), 1e-5, "instance %d", i)
		assert.InDelta(t, float64(want.Y), float64(in.Pos.Y), 1e-5, "instance %d", i)
		assert.InDelta(t, float64(want.Z), float64(in.Pos.Z), 1e-5, "instance %d", i)
		assert.Greater(t, in.Pos.Dist(in.ChaosPos), float32(0.0), "instance %d teleported", i)
	}
}

func TestStepOrnamentScaleByMode(t *testing.T) {
	set := buildSet(t)
	it := New()
	require.NotEmpty(t, set.Ornaments.Items)

	for i := 0; i < 600; i++ {
		it.Step(set, frame, state.Formed)
	}
	for i := range set.Ornaments.Items {
		assert.InDelta(t, 2.0, float64(set.Ornaments.Items[i].Scale), 1e-2, "formed ornament %d", i)
	}

	for i := 0; i < 600; i++ {
		it.Step(set, frame, state.Chaos)
	}
	for i := range set.Ornaments.Items {
		assert.InDelta(t, 4.0, float64(set.Ornaments.Items[i].Scale), 1e-2, "chaos ornament %d", i)
	}
}

func TestStepOrnamentOrientation(t *testing.T) {
	set := buildSet(t)
	it := New()

	// Converge into the formed arrangement, then check each ornament faces
	// outward: yaw matches the radial direction of its position.
	for i := 0; i < 600; i++ {
		it.Step(set, frame, state.Formed)
	}
	for i := range set.Ornaments.Items {
		in := &set.Ornaments.Items[i]
		wantYaw := math32.Atan2(in.Pos.X, in.Pos.Z)
		assert.InDelta(t, float64(wantYaw), float64(in.Rot.Y), 1e-3, "ornament %d yaw", i)
		assert.Zero(t, in.Rot.X, "ornament %d pitch", i)
	}
}

func TestStepLightsGatedInChaos(t *testing.T) {
	set := buildSet(t)
	it := New()

	for i := 0; i < 120; i++ {
		it.Step(set, frame, state.Formed)
	}
	lit := 0
	for i := range set.Lights.Items {
		b := set.Lights.Items[i].Brightness
		assert.GreaterOrEqual(t, b, float32(0), "light %d", i)
		assert.LessOrEqual(t, b, float32(1), "light %d", i)
		if b > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "formed lights should be blinking")

	// One chaos step kills brightness instantly, no smoothing.
	it.Step(set, frame, state.Chaos)
	for i := range set.Lights.Items {
		assert.Zero(t, set.Lights.Items[i].Brightness, "light %d", i)
	}
}

func TestStepChaosSpinAdvancesRotation(t *testing.T) {
	set := buildSet(t)
	it := New()

	before := make([]vec.Vec3, len(set.Ornaments.Items))
	for i := range set.Ornaments.Items {
		before[i] = set.Ornaments.Items[i].Rot
	}
	for i := 0; i < 60; i++ {
		it.Step(set, frame, state.Chaos)
	}
	for i := range set.Ornaments.Items {
		in := &set.Ornaments.Items[i]
		want := before[i].Add(in.RotationSpeed) // 60 frames of 1/60s = 1s of spin
		assert.InDelta(t, float64(want.X), float64(in.Rot.X), 1e-3, "ornament %d", i)
		assert.InDelta(t, float64(want.Y), float64(in.Rot.Y), 1e-3, "ornament %d", i)
		assert.InDelta(t, float64(want.Z), float64(in.Rot.Z), 1e-3, "ornament %d", i)
	}
}
