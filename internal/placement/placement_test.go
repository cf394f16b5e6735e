package placement

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCountAndBounds(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		cone        Cone
		minDistance float32
	}{
		{"Sparse", 50, Cone{Height: 28, Radius: 12}, 2.0},
		{"Dense", 500, Cone{Height: 28, Radius: 12}, 2.0},
		{"Small cone", 20, Cone{Height: 4, Radius: 1.5}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			points, _, err := Sample(rng, tt.count, tt.cone, tt.minDistance, OverlapAccept)
			require.NoError(t, err)
			require.Len(t, points, tt.count)

			halfH := tt.cone.Height * 0.5
			for i, p := range points {
				assert.LessOrEqual(t, p.Y, halfH, "point %d above apex", i)
				assert.GreaterOrEqual(t, p.Y, -halfH, "point %d below base", i)
				normH := (p.Y + halfH) / tt.cone.Height
				maxR := tt.cone.SurfaceRadius(normH)
				r := math32.Hypot(p.X, p.Z)
				assert.LessOrEqual(t, r, maxR+1e-4, "point %d outside cone surface", i)
			}
		})
	}
}

func TestSamplePairwiseDistanceLowDensity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const minDistance = 2.0
	points, rep, err := Sample(rng, 40, Cone{Height: 28, Radius: 12}, minDistance, OverlapAccept)
	require.NoError(t, err)
	require.Equal(t, 0, rep.Overlaps, "low density should never hit the fallback")

	for i := range points {
		for j := i + 1; j < len(points); j++ {
			assert.GreaterOrEqual(t, points[i].Dist(points[j]), float32(minDistance)-1e-4,
				"pair (%d, %d) too close", i, j)
		}
	}
}

func TestSampleFullTreeScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const (
		count       = 500
		minDistance = 2.0
	)
	points, _, err := Sample(rng, count, Cone{Height: 28, Radius: 12}, minDistance, OverlapAccept)
	require.NoError(t, err)
	require.Len(t, points, count)

	// Bounding cylinder: radius 12, half-height 14.
	for i, p := range points {
		require.LessOrEqual(t, math32.Hypot(p.X, p.Z), float32(12)+1e-4, "point %d", i)
		require.LessOrEqual(t, math32.Abs(p.Y), float32(14)+1e-4, "point %d", i)
	}

	// At this density most pairs must still satisfy the minimum distance.
	pairs, violations := 0, 0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			pairs++
			if points[i].Dist(points[j]) < minDistance {
				violations++
			}
		}
	}
	assert.LessOrEqual(t, float64(violations), 0.05*float64(pairs),
		"more than 5%% of pairs violate the minimum distance (%d of %d)", violations, pairs)
}

func TestSampleDeterministicForSeed(t *testing.T) {
	a, _, err := Sample(rand.New(rand.NewSource(3)), 100, Cone{Height: 28, Radius: 12}, 2.0, OverlapAccept)
	require.NoError(t, err)
	b, _, err := Sample(rand.New(rand.NewSource(3)), 100, Cone{Height: 28, Radius: 12}, 2.0, OverlapAccept)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleOverlapPolicies(t *testing.T) {
	// Impossible density: 200 points at min distance 10 inside a tiny cone.
	cone := Cone{Height: 4, Radius: 2}

	t.Run("Accept keeps the count and reports overlaps", func(t *testing.T) {
		points, rep, err := Sample(rand.New(rand.NewSource(1)), 200, cone, 10, OverlapAccept)
		require.NoError(t, err)
		assert.Len(t, points, 200)
		assert.Greater(t, rep.Overlaps, 0)
	})

	t.Run("Relax keeps the count", func(t *testing.T) {
		points, _, err := Sample(rand.New(rand.NewSource(1)), 200, cone, 10, OverlapRelax)
		require.NoError(t, err)
		assert.Len(t, points, 200)
	})

	t.Run("Fail returns an error", func(t *testing.T) {
		_, _, err := Sample(rand.New(rand.NewSource(1)), 200, cone, 10, OverlapFail)
		assert.Error(t, err)
	})
}

func TestSampleSurfaceRadiusAndCount(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cone := Cone{Height: 28, Radius: 12}
	const offset = float32(0.5)
	points, _ := SampleSurface(rng, 24, cone, 3.0, offset, DefaultSurfaceExponent)
	require.Len(t, points, 24)

	halfH := cone.Height * 0.5
	for i, p := range points {
		normH := (p.Y + halfH) / cone.Height
		want := cone.SurfaceRadius(normH) + offset
		got := math32.Hypot(p.X, p.Z)
		assert.InDelta(t, want, got, 1e-3, "point %d not on offset surface", i)
	}
}

func TestSampleSurfaceFirstPointAlwaysClear(t *testing.T) {
	// The first point compares against an empty set and must be accepted
	// without an overlap, even with an unsatisfiable minimum distance; later
	// points still get finite nearest-distance comparisons against it.
	rng := rand.New(rand.NewSource(4))
	cone := Cone{Height: 28, Radius: 12}
	points, rep := SampleSurface(rng, 2, cone, 1e6, 0.5, DefaultSurfaceExponent)
	require.Len(t, points, 2)
	assert.Equal(t, 1, rep.Overlaps, "only the second point can overlap")
	assert.NotEqual(t, points[0], points[1])
}

func TestSampleSurfaceHeightBiasTowardBase(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	cone := Cone{Height: 28, Radius: 12}
	points, _ := SampleSurface(rng, 400, cone, 0, 0.3, DefaultSurfaceExponent)

	below := 0
	for _, p := range points {
		if p.Y < 0 {
			below++
		}
	}
	// U^1.5 puts well over half the heights in the lower half of the cone.
	assert.Greater(t, below, 220, "expected height bias toward the base, got %d of %d below center", below, len(points))
}

func TestScatterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for i, p := range ScatterSphere(rng, 200, 30) {
		assert.LessOrEqual(t, p.Length(), float32(30), "sphere point %d", i)
	}
	for i, p := range ScatterCube(rng, 200, 20) {
		assert.LessOrEqual(t, math32.Abs(p.X), float32(20), "cube point %d", i)
		assert.LessOrEqual(t, math32.Abs(p.Y), float32(20), "cube point %d", i)
		assert.LessOrEqual(t, math32.Abs(p.Z), float32(20), "cube point %d", i)
	}
}
