package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Quat is a rotation quaternion W + Xi + Yj + Zk.
//
// Quaternions used as rotations are expected to have unit length;
// Transform normalizes non-unit values when they are stored.
type Quat mgl32.Quat

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat(mgl32.QuatIdent())
}

// NewQuat returns the quaternion w + xi + yj + zk without normalizing it.
func NewQuat(w, x, y, z float32) Quat {
	return Quat{W: w, V: mgl32.Vec3{x, y, z}}
}

// QuatAxisAngle returns the rotation by angle radians about axis, following
// the right-hand rule. The axis does not need to be normalized.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	return Quat(mgl32.QuatRotate(angle, mgl32.Vec3(axis.Normalize())))
}

// Mul returns the Hamilton product q * o, the rotation that applies o first
// and then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat(mgl32.Quat(q).Mul(mgl32.Quat(o)))
}

// Conjugate returns (W, -X, -Y, -Z), the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat(mgl32.Quat(q).Conjugate())
}

// Len returns the magnitude of q.
func (q Quat) Len() float32 {
	return mgl32.Quat(q).Len()
}

// IsUnit reports whether q has unit length within Epsilon.
func (q Quat) IsUnit() bool {
	return math.Abs(float64(q.Len())-1) < Epsilon
}

// Normalize returns q scaled to unit length. A zero quaternion normalizes
// to the identity.
func (q Quat) Normalize() Quat {
	return Quat(mgl32.Quat(q).Normalize())
}

// Rotate returns v rotated by q, computed as the sandwich q * (0, v) * q⁻¹.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := mgl32.Quat{W: 0, V: mgl32.Vec3(v)}
	r := mgl32.Quat(q).Mul(p).Mul(mgl32.Quat(q).Conjugate())
	return Vec3(r.V)
}

// ApproxEqual reports whether q and o differ by less than Epsilon in every
// component.
func (q Quat) ApproxEqual(o Quat) bool {
	return mgl32.Quat(q).ApproxEqualThreshold(mgl32.Quat(o), Epsilon)
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %gi, %gj, %gk)", q.W, q.V[0], q.V[1], q.V[2])
}
