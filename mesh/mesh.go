// Package mesh holds immutable triangle geometry and its per-object
// world-space copy.
package mesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/soft3d/geom"
)

// ErrMalformed is returned by New when the geometry violates a mesh
// invariant.
var ErrMalformed = errors.New("mesh: malformed geometry")

// Face indexes one triangle: three vertex positions, three UVs and three
// vertex normals, in counter-clockwise order.
type Face struct {
	V  [3]int
	UV [3]int
	N  [3]int
}

// Data is the raw geometry New validates.
//
// UVs and Normals are optional. Without UVs a single zero coordinate is
// supplied and every UV index must be 0. Without Normals smooth vertex
// normals are derived from the faces and each face's N is set to its V.
type Data struct {
	Name     string
	Vertices []geom.Vec3
	Normals  []geom.Vec3
	UVs      []geom.Vec2
	Faces    []Face
}

// Mesh is validated, immutable triangle geometry.
//
// Slices returned by the accessors are shared with the mesh and must not be
// modified.
type Mesh struct {
	name        string
	vertices    []geom.Vec3
	normals     []geom.Vec3
	uvs         []geom.Vec2
	faces       []Face
	edges       [][2]int
	faceNormals []geom.Vec3
}

// New copies and validates d. Errors wrap ErrMalformed.
func New(d Data) (*Mesh, error) {
	if len(d.Vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrMalformed)
	}
	if len(d.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrMalformed)
	}

	m := &Mesh{
		name:     d.Name,
		vertices: append([]geom.Vec3(nil), d.Vertices...),
		normals:  append([]geom.Vec3(nil), d.Normals...),
		uvs:      append([]geom.Vec2(nil), d.UVs...),
		faces:    append([]Face(nil), d.Faces...),
	}
	if len(m.uvs) == 0 {
		m.uvs = []geom.Vec2{{0, 0}}
	}

	for i, f := range m.faces {
		for j := 0; j < 3; j++ {
			if f.V[j] < 0 || f.V[j] >= len(m.vertices) {
				return nil, fmt.Errorf("%w: face %d vertex index %d out of range [0,%d)",
					ErrMalformed, i, f.V[j], len(m.vertices))
			}
			if f.UV[j] < 0 || f.UV[j] >= len(m.uvs) {
				return nil, fmt.Errorf("%w: face %d uv index %d out of range [0,%d)",
					ErrMalformed, i, f.UV[j], len(m.uvs))
			}
			if len(m.normals) > 0 && (f.N[j] < 0 || f.N[j] >= len(m.normals)) {
				return nil, fmt.Errorf("%w: face %d normal index %d out of range [0,%d)",
					ErrMalformed, i, f.N[j], len(m.normals))
			}
		}
	}

	m.faceNormals = make([]geom.Vec3, len(m.faces))
	FaceNormals(m.faceNormals, m.vertices, m.faces)
	if len(m.normals) == 0 {
		m.smoothNormals()
	}
	m.edges = buildEdges(m.faces)
	return m, nil
}

// MustNew is like New but panics on error. It is intended for geometry
// that is known to be valid, such as generated primitives.
func MustNew(d Data) *Mesh {
	m, err := New(d)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the mesh name.
func (m *Mesh) Name() string { return m.name }

// Vertices returns the object-space vertex positions.
func (m *Mesh) Vertices() []geom.Vec3 { return m.vertices }

// Normals returns the object-space vertex normals.
func (m *Mesh) Normals() []geom.Vec3 { return m.normals }

// UVs returns the texture coordinates.
func (m *Mesh) UVs() []geom.Vec2 { return m.uvs }

// Faces returns the face table.
func (m *Mesh) Faces() []Face { return m.faces }

// Edges returns the unique undirected edges, each as a pair of vertex
// indices with the smaller index first.
func (m *Mesh) Edges() [][2]int { return m.edges }

// FaceNormals returns one unit normal per face.
func (m *Mesh) FaceNormals() []geom.Vec3 { return m.faceNormals }

func (m *Mesh) String() string {
	return fmt.Sprintf("mesh %q: %d vertices, %d faces", m.name, len(m.vertices), len(m.faces))
}

// FaceNormals writes the normal of every face into dst, assuming
// counter-clockwise winding: normalize((v1-v0) × (v2-v0)).
// A degenerate face gets the zero vector.
func FaceNormals(dst, vertices []geom.Vec3, faces []Face) {
	for i, f := range faces {
		v0 := vertices[f.V[0]]
		e1 := vertices[f.V[1]].Sub(v0)
		e2 := vertices[f.V[2]].Sub(v0)
		dst[i] = e1.Cross(e2).Normalize()
	}
}

func (m *Mesh) smoothNormals() {
	m.normals = make([]geom.Vec3, len(m.vertices))
	for i, f := range m.faces {
		for _, v := range f.V {
			m.normals[v] = m.normals[v].Add(m.faceNormals[i])
		}
		m.faces[i].N = f.V
	}
	for i, n := range m.normals {
		m.normals[i] = n.Normalize()
	}
}

func buildEdges(faces []Face) [][2]int {
	seen := make(map[[2]int]struct{}, len(faces)*3/2)
	edges := make([][2]int, 0, len(faces)*3/2)
	for _, f := range faces {
		for j := 0; j < 3; j++ {
			a, b := f.V[j], f.V[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			if a == b {
				continue
			}
			e := [2]int{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}
