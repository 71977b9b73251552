// Package geom provides the small vector, quaternion and transform types
// used throughout soft3d.
//
// All types are float32 and have value semantics. They are defined over the
// corresponding go-gl/mathgl mgl32 types, so values convert freely:
//
//	v := geom.V3(1, 2, 3)
//	m := mgl32.Vec3(v)
//
// Coordinates follow a right-handed frame with X to the right, Y forward
// (depth) and Z up.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used by the ApproxEqual methods.
const Epsilon = 1e-3

// Vec2 is a 2D vector.
type Vec2 mgl32.Vec2

// Vec3 is a 3D vector.
type Vec3 mgl32.Vec3

// Canonical vectors.
var (
	Zero3 = Vec3{0, 0, 0}
	One3  = Vec3{1, 1, 1}
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// V2 returns the vector (x, y).
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// V3 returns the vector (x, y, z).
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component.
func (v Vec2) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec2) Y() float32 { return v[1] }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(mgl32.Vec2(v).Add(mgl32.Vec2(o)))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(mgl32.Vec2(v).Sub(mgl32.Vec2(o)))
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2(mgl32.Vec2(v).Mul(s))
}

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v[0] * o[0], v[1] * o[1]}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return mgl32.Vec2(v).Dot(mgl32.Vec2(o))
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float32 {
	return v[0]*o[1] - v[1]*o[0]
}

// Len returns the magnitude of v.
func (v Vec2) Len() float32 {
	return mgl32.Vec2(v).Len()
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	if l := v.Len(); l != 0 {
		return v.Scale(1 / l)
	}
	return v
}

// Lerp interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{v[0] + (o[0]-v[0])*t, v[1] + (o[1]-v[1])*t}
}

// ApproxEqual reports whether v and o differ by less than Epsilon in every
// component.
func (v Vec2) ApproxEqual(o Vec2) bool {
	return mgl32.Vec2(v).ApproxEqualThreshold(mgl32.Vec2(o), Epsilon)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v[0], v[1])
}

// X returns the first component.
func (v Vec3) X() float32 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float32 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float32 { return v[2] }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Add(mgl32.Vec3(o)))
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Sub(mgl32.Vec3(o)))
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3(mgl32.Vec3(v).Mul(s))
}

// Mul returns the component-wise product of v and o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

// Div returns the component-wise quotient of v and o.
func (v Vec3) Div(o Vec3) Vec3 {
	return Vec3{v[0] / o[0], v[1] / o[1], v[2] / o[2]}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return mgl32.Vec3(v).Dot(mgl32.Vec3(o))
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3(mgl32.Vec3(v).Cross(mgl32.Vec3(o)))
}

// Len returns the magnitude of v.
func (v Vec3) Len() float32 {
	return mgl32.Vec3(v).Len()
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged; callers that need a direction must
// guard against it.
func (v Vec3) Normalize() Vec3 {
	if l := v.Len(); l != 0 && !math.IsInf(float64(l), 0) {
		return v.Scale(1 / l)
	}
	return v
}

// Lerp interpolates between v and o.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
	}
}

// ApproxEqual reports whether v and o differ by less than Epsilon in every
// component.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return mgl32.Vec3(v).ApproxEqualThreshold(mgl32.Vec3(o), Epsilon)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}
