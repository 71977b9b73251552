package meshgen

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

// DefaultCells is the marching cubes resolution used by Sphere and Box
// when cells is not positive.
const DefaultCells = 32

// ErrEmptySolid is returned when a solid produces no triangles.
var ErrEmptySolid = errors.New("meshgen: solid produced no triangles")

// FromSDF tessellates s with uniform marching cubes over cells cells along
// its longest axis. Vertices shared between triangles are merged so the
// mesh gets smooth normals and a connected edge list.
func FromSDF(s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	return fromSDF(s, cells, "sdf")
}

func fromSDF(s sdf.SDF3, cells int, name string) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	index := make(map[v3.Vec]int, len(triangles))
	d := mesh.Data{Name: name}
	vertex := func(p v3.Vec) int {
		if i, ok := index[p]; ok {
			return i
		}
		i := len(d.Vertices)
		index[p] = i
		d.Vertices = append(d.Vertices, geom.V3(float32(p.X), float32(p.Y), float32(p.Z)))
		return i
	}

	for _, tri := range triangles {
		f := mesh.Face{V: [3]int{vertex(tri[0]), vertex(tri[1]), vertex(tri[2])}}
		if f.V[0] == f.V[1] || f.V[1] == f.V[2] || f.V[0] == f.V[2] {
			continue
		}
		if inward(s, tri[0], tri[1], tri[2], tri.Normal()) {
			f.V[1], f.V[2] = f.V[2], f.V[1]
		}
		d.Faces = append(d.Faces, f)
	}
	if len(d.Faces) == 0 {
		return nil, ErrEmptySolid
	}
	return mesh.New(d)
}

// inward reports whether normal n of triangle abc points into the solid,
// judged by the field on either side of the centroid.
func inward(s sdf.SDF3, a, b, c, n v3.Vec) bool {
	bb := s.BoundingBox()
	h := 1e-3 * math.Max(bb.Max.X-bb.Min.X, math.Max(bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z))
	at := func(sign float64) float64 {
		return s.Evaluate(v3.Vec{
			X: (a.X+b.X+c.X)/3 + sign*h*n.X,
			Y: (a.Y+b.Y+c.Y)/3 + sign*h*n.Y,
			Z: (a.Z+b.Z+c.Z)/3 + sign*h*n.Z,
		})
	}
	return at(1) < at(-1)
}

// Sphere tessellates a sphere of radius r centered at the origin.
func Sphere(r float32, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(float64(r))
	if err != nil {
		return nil, fmt.Errorf("meshgen: sphere: %w", err)
	}
	return fromSDF(s, cells, "sphere")
}

// Box tessellates an axis-aligned box of the given size centered at the
// origin, with edges rounded by round.
func Box(size geom.Vec3, round float32, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: float64(size.X()), Y: float64(size.Y()), Z: float64(size.Z())}, float64(round))
	if err != nil {
		return nil, fmt.Errorf("meshgen: box: %w", err)
	}
	return fromSDF(s, cells, "box")
}
