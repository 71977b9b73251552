package geom

// Ops is a set of transform fields that changed.
type Ops uint8

// Transform change flags.
const (
	OpLocation Ops = 1 << iota
	OpScale
	OpRotation

	OpAll = OpLocation | OpScale | OpRotation
)

// Has reports whether any flag of o is set in ops.
func (ops Ops) Has(o Ops) bool {
	return ops&o != 0
}

func (ops Ops) String() string {
	if ops == 0 {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		op   Ops
		name string
	}{{OpLocation, "location"}, {OpScale, "scale"}, {OpRotation, "rotation"}} {
		if ops.Has(f.op) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// Observer is notified after a Transform field changes.
type Observer func(t *Transform, ops Ops)

type observerEntry struct {
	id int
	fn Observer
}

// Transform is a location, a (possibly non-uniform) scale and a rotation.
//
// Every mutation notifies the registered observers synchronously, in
// registration order, after the field has been updated.
//
// A Transform is not safe for concurrent use.
type Transform struct {
	location Vec3
	scale    Vec3
	rotation Quat

	observers []observerEntry
	nextID    int
}

// NewTransform returns a transform at the origin with unit scale and no
// rotation.
func NewTransform() *Transform {
	return &Transform{
		scale:    One3,
		rotation: QuatIdent(),
	}
}

// NewTransformAt returns a transform at location with unit scale and no
// rotation.
func NewTransformAt(location Vec3) *Transform {
	t := NewTransform()
	t.location = location
	return t
}

// Location returns the translation.
func (t *Transform) Location() Vec3 { return t.location }

// Scale returns the per-axis scale.
func (t *Transform) Scale() Vec3 { return t.scale }

// Rotation returns the rotation.
func (t *Transform) Rotation() Quat { return t.rotation }

// SetLocation sets the translation and notifies with OpLocation.
func (t *Transform) SetLocation(v Vec3) {
	t.location = v
	t.notify(OpLocation)
}

// SetScale sets the per-axis scale and notifies with OpScale.
// A zero component flattens the shape onto a plane; world normals then
// point along the flattened axis.
func (t *Transform) SetScale(v Vec3) {
	t.scale = v
	t.notify(OpScale)
}

// SetRotation sets the rotation and notifies with OpRotation.
// A non-unit quaternion is normalized before it is stored.
func (t *Transform) SetRotation(q Quat) {
	if !q.IsUnit() {
		q = q.Normalize()
	}
	t.rotation = q
	t.notify(OpRotation)
}

// Translate moves the transform by d.
func (t *Transform) Translate(d Vec3) {
	t.SetLocation(t.location.Add(d))
}

// Rotate applies q after the current rotation.
func (t *Transform) Rotate(q Quat) {
	t.SetRotation(q.Mul(t.rotation))
}

// RotateAxis applies a rotation by angle radians about axis after the
// current rotation.
func (t *Transform) RotateAxis(axis Vec3, angle float32) {
	t.Rotate(QuatAxisAngle(axis, angle))
}

// Forward returns the rotated +Y axis.
func (t *Transform) Forward() Vec3 { return t.rotation.Rotate(UnitY) }

// Up returns the rotated +Z axis.
func (t *Transform) Up() Vec3 { return t.rotation.Rotate(UnitZ) }

// Right returns the rotated +X axis.
func (t *Transform) Right() Vec3 { return t.rotation.Rotate(UnitX) }

// Apply maps a local point into the space of t:
// rotate(p ⊙ scale) + location.
func (t *Transform) Apply(p Vec3) Vec3 {
	return t.rotation.Rotate(p.Mul(t.scale)).Add(t.location)
}

// Observe registers fn to be called after every change. The returned
// function unregisters it; calling it more than once is harmless.
// Cancelling from inside an observer takes effect from the next change.
func (t *Transform) Observe(fn Observer) (cancel func()) {
	id := t.nextID
	t.nextID++
	t.observers = append(t.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, o := range t.observers {
			if o.id == id {
				// A notify in progress still ranges over the old slice.
				next := make([]observerEntry, 0, len(t.observers)-1)
				next = append(next, t.observers[:i]...)
				t.observers = append(next, t.observers[i+1:]...)
				return
			}
		}
	}
}

func (t *Transform) notify(ops Ops) {
	for _, o := range t.observers {
		o.fn(t, ops)
	}
}
