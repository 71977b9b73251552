package mesh

import "github.com/gogpu/soft3d/geom"

// World is a per-object world-space copy of a Mesh.
//
// Refresh recomputes the cached arrays in place; they are never
// reallocated after construction.
type World struct {
	src         *Mesh
	vertices    []geom.Vec3
	normals     []geom.Vec3
	faceNormals []geom.Vec3
}

// NewWorld returns the world-space copy of m under t.
func NewWorld(m *Mesh, t *geom.Transform) *World {
	w := &World{
		src:         m,
		vertices:    make([]geom.Vec3, len(m.vertices)),
		normals:     make([]geom.Vec3, len(m.normals)),
		faceNormals: make([]geom.Vec3, len(m.faceNormals)),
	}
	w.Refresh(t, geom.OpAll)
	return w
}

// Refresh recomputes the world-space data after the changes in ops.
//
// Vertices are always recomputed as rotate(v ⊙ scale) + location.
// Vertex and face normals depend only on rotation and scale, so they are
// recomputed only when ops contains OpRotation or OpScale; a pure
// translation leaves them untouched.
func (w *World) Refresh(t *geom.Transform, ops geom.Ops) {
	for i, v := range w.src.vertices {
		w.vertices[i] = t.Apply(v)
	}
	if !ops.Has(geom.OpRotation | geom.OpScale) {
		return
	}

	rot, k := t.Rotation(), normalScale(t.Scale())
	for i, n := range w.src.normals {
		w.normals[i] = rot.Rotate(n.Mul(k)).Normalize()
	}
	FaceNormals(w.faceNormals, w.vertices, w.src.faces)
}

// normalScale returns the per-axis factor applied to normals under scale s.
// It is the cofactor of diag(s), parallel to 1/s when no component is zero
// and still finite when one is.
func normalScale(s geom.Vec3) geom.Vec3 {
	k := geom.V3(s[1]*s[2], s[0]*s[2], s[0]*s[1])
	if s[0]*s[1]*s[2] < 0 {
		return k.Neg()
	}
	return k
}

// Mesh returns the source mesh.
func (w *World) Mesh() *Mesh { return w.src }

// Vertices returns the world-space vertex positions.
func (w *World) Vertices() []geom.Vec3 { return w.vertices }

// Normals returns the world-space vertex normals.
func (w *World) Normals() []geom.Vec3 { return w.normals }

// FaceNormals returns the world-space face normals.
func (w *World) FaceNormals() []geom.Vec3 { return w.faceNormals }
