// Package placement generates collision-avoiding target positions inside a
// cone for the formed arrangement. Sampling is rejection based: candidates are
// drawn inside (or on) the cone and accepted when no previously placed point
// is closer than the minimum distance.
package placement

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"tree-scene/internal/vec"
)

// Cone is the formed silhouette. Points are centered vertically: y spans
// [-Height/2, +Height/2] with the apex at +Height/2.
type Cone struct {
	Height float32
	Radius float32
}

// SurfaceRadius returns the cone's lateral-surface radius at normalized
// height t in [0,1] (0 = base, 1 = apex).
func (c Cone) SurfaceRadius(t float32) float32 {
	return c.Radius * (1 - t)
}

// OverlapPolicy selects what happens when rejection sampling exhausts its
// attempts without satisfying the minimum distance.
type OverlapPolicy int

const (
	// OverlapAccept takes the last candidate as-is. Overlap is a visual
	// degradation, never a construction failure.
	OverlapAccept OverlapPolicy = iota
	// OverlapRelax retries one more round at half the minimum distance
	// before accepting.
	OverlapRelax
	// OverlapFail aborts sampling with an error.
	OverlapFail
)

// Report carries placement diagnostics: total candidates drawn and how many
// points were accepted through the overlap fallback.
type Report struct {
	Attempts int
	Overlaps int
}

const (
	interiorAttempts = 50
	surfaceAttempts  = 20

	// DefaultSurfaceExponent biases ornament heights toward the base so the
	// apex does not crowd.
	DefaultSurfaceExponent = 1.5
)

// Sample produces exactly count points inside the cone, each at least
// minDistance from every earlier point when possible. Radial distance is
// biased toward the lateral surface (sqrt(0.5 + 0.5*U)) so the silhouette
// reads full from outside. Deterministic for a seeded rng.
func Sample(rng *rand.Rand, count int, cone Cone, minDistance float32, policy OverlapPolicy) ([]vec.Vec3, Report, error) {
	if count <= 0 {
		return nil, Report{}, nil
	}
	if cone.Height <= 0 {
		cone.Height = 1
	}
	if cone.Radius <= 0 {
		cone.Radius = 1
	}

	var rep Report
	points := make([]vec.Vec3, 0, count)
	for len(points) < count {
		p, ok := place(rng, &rep, cone, points, minDistance, interiorAttempts)
		if !ok {
			switch policy {
			case OverlapRelax:
				if q, relaxed := place(rng, &rep, cone, points, minDistance*0.5, interiorAttempts); relaxed {
					p = q
					break
				}
				rep.Overlaps++
			case OverlapFail:
				return nil, rep, fmt.Errorf("placement: no room for point %d of %d (min distance %g)", len(points)+1, count, minDistance)
			default:
				rep.Overlaps++
			}
		}
		points = append(points, p)
	}
	return points, rep, nil
}

// place draws up to maxAttempts interior candidates and returns the first one
// clear of existing points. ok is false when every attempt collided; the last
// candidate is still returned so callers can apply their overlap policy.
func place(rng *rand.Rand, rep *Report, cone Cone, placed []vec.Vec3, minDistance float32, maxAttempts int) (p vec.Vec3, ok bool) {
	for i := 0; i < maxAttempts; i++ {
		rep.Attempts++
		p = interiorCandidate(rng, cone)
		if clear(placed, p, minDistance) {
			return p, true
		}
	}
	return p, false
}

// SampleSurface produces exactly count points on the cone's lateral surface
// pushed outward by offset, for elements that must not be occluded by the
// denser interior fill. Heights follow U^exponent so the apex stays sparse.
// Each point takes the best (max min-distance) of surfaceAttempts candidates;
// a best candidate still inside minDistance is accepted and counted in
// Report.Overlaps rather than failing.
func SampleSurface(rng *rand.Rand, count int, cone Cone, minDistance, offset, exponent float32) ([]vec.Vec3, Report) {
	if count <= 0 {
		return nil, Report{}
	}
	if cone.Height <= 0 {
		cone.Height = 1
	}
	if cone.Radius <= 0 {
		cone.Radius = 1
	}
	if exponent <= 0 {
		exponent = DefaultSurfaceExponent
	}

	var rep Report
	points := make([]vec.Vec3, 0, count)
	for len(points) < count {
		var best vec.Vec3
		bestDist := float32(-1)
		for i := 0; i < surfaceAttempts; i++ {
			rep.Attempts++
			p := surfaceCandidate(rng, cone, offset, exponent)
			d := nearest(points, p)
			if d >= minDistance {
				best = p
				bestDist = d
				break
			}
			if d > bestDist {
				best = p
				bestDist = d
			}
		}
		if bestDist < minDistance && len(points) > 0 {
			rep.Overlaps++
		}
		points = append(points, best)
	}
	return points, rep
}

// interiorCandidate samples a point inside the cone, radially biased toward
// the lateral surface.
func interiorCandidate(rng *rand.Rand, cone Cone) vec.Vec3 {
	t := rng.Float32()
	maxR := cone.SurfaceRadius(t)
	r := maxR * math32.Sqrt(0.5+0.5*rng.Float32())
	theta := rng.Float32() * 2 * math32.Pi
	return vec.New(
		r*math32.Cos(theta),
		t*cone.Height-cone.Height*0.5,
		r*math32.Sin(theta),
	)
}

// surfaceCandidate samples a point on the cone surface plus offset, with
// height biased toward the base by exponent.
func surfaceCandidate(rng *rand.Rand, cone Cone, offset, exponent float32) vec.Vec3 {
	t := math32.Pow(rng.Float32(), exponent)
	r := cone.SurfaceRadius(t) + offset
	theta := rng.Float32() * 2 * math32.Pi
	return vec.New(
		r*math32.Cos(theta),
		t*cone.Height-cone.Height*0.5,
		r*math32.Sin(theta),
	)
}

// clear reports whether p is at least minDistance from every placed point.
func clear(placed []vec.Vec3, p vec.Vec3, minDistance float32) bool {
	dd := minDistance * minDistance
	for _, q := range placed {
		if p.DistSq(q) < dd {
			return false
		}
	}
	return true
}

// nearest returns the distance from p to the closest placed point, or a large
// value when no points exist yet.
func nearest(placed []vec.Vec3, p vec.Vec3) float32 {
	if len(placed) == 0 {
		return math32.MaxFloat32
	}
	best := float32(math32.MaxFloat32)
	for _, q := range placed {
		if d := p.DistSq(q); d < best {
			best = d
		}
	}
	return math32.Sqrt(best)
}

// ScatterSphere returns count points uniform inside a sphere of the given
// radius, for the chaos arrangement. Uses rejection from the bounding cube.
func ScatterSphere(rng *rand.Rand, count int, radius float32) []vec.Vec3 {
	points := make([]vec.Vec3, 0, count)
	for len(points) < count {
		p := vec.New(
			(rng.Float32()*2-1)*radius,
			(rng.Float32()*2-1)*radius,
			(rng.Float32()*2-1)*radius,
		)
		if p.Length() <= radius {
			points = append(points, p)
		}
	}
	return points
}

// ScatterCube returns count points uniform inside a cube with the given half
// extent, used for the fairy-light chaos arrangement.
func ScatterCube(rng *rand.Rand, count int, halfExtent float32) []vec.Vec3 {
	points := make([]vec.Vec3, count)
	for i := range points {
		points[i] = vec.New(
			(rng.Float32()*2-1)*halfExtent,
			(rng.Float32()*2-1)*halfExtent,
			(rng.Float32()*2-1)*halfExtent,
		)
	}
	return points
}
