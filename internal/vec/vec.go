package vec

import (
	"github.com/chewxy/math32"
)

// Vec3 is a float32 3D vector. Scene positions are Y-up, matching raylib.
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 is a float32 2D vector (e.g. the conditioned gesture signal).
type Vec2 struct {
	X, Y float32
}

// New returns a Vec3 from components.
func New(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v − o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist returns the distance between v and o.
func (v Vec3) Dist(o Vec3) float32 {
	return v.Sub(o).Length()
}

// DistSq returns the squared distance between v and o. Used in placement
// inner loops where the square root is not needed.
func (v Vec3) DistSq(o Vec3) float32 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Lerp returns v blended toward o by t. t is not clamped here; callers that
// need the no-overshoot guarantee clamp before calling.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Lerp1 blends scalar a toward b by t.
func Lerp1(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp01 clamps t to [0, 1].
func Clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
