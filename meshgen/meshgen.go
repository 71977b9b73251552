// Package meshgen builds procedural meshes.
//
// All generated faces wind counter-clockwise when seen from outside, so
// their face normals point outward. Axes follow the renderer: X right,
// Y forward, Z up.
package meshgen

import (
	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

// side is one quad of a box: normal n, spanned by half-axes u and v with
// u × v pointing along n.
type side struct {
	n, u, v geom.Vec3
}

var boxSides = [6]side{
	{geom.V3(1, 0, 0), geom.V3(0, 1, 0), geom.V3(0, 0, 1)},
	{geom.V3(-1, 0, 0), geom.V3(0, -1, 0), geom.V3(0, 0, 1)},
	{geom.V3(0, 1, 0), geom.V3(0, 0, 1), geom.V3(1, 0, 0)},
	{geom.V3(0, -1, 0), geom.V3(1, 0, 0), geom.V3(0, 0, 1)},
	{geom.V3(0, 0, 1), geom.V3(1, 0, 0), geom.V3(0, 1, 0)},
	{geom.V3(0, 0, -1), geom.V3(0, 1, 0), geom.V3(1, 0, 0)},
}

var quadUVs = []geom.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Cube returns an axis-aligned cube of edge length size centered at the
// origin. Each side has its own four vertices so normals stay flat.
func Cube(size float32) *mesh.Mesh {
	h := size / 2
	d := mesh.Data{Name: "cube", UVs: quadUVs}
	for _, s := range boxSides {
		addQuad(&d, s.n.Scale(h), s.u.Scale(h), s.v.Scale(h), s.n)
	}
	return mesh.MustNew(d)
}

// Plane returns a square of edge length size in the XY plane, facing +Z.
func Plane(size float32) *mesh.Mesh {
	h := size / 2
	d := mesh.Data{Name: "plane", UVs: quadUVs}
	addQuad(&d, geom.Vec3{}, geom.V3(h, 0, 0), geom.V3(0, h, 0), geom.V3(0, 0, 1))
	return mesh.MustNew(d)
}

// Triangle returns a single triangle of unit width in the XZ plane, facing
// -Y, which is toward a camera at the origin looking down +Y.
func Triangle() *mesh.Mesh {
	return mesh.MustNew(mesh.Data{
		Name: "triangle",
		Vertices: []geom.Vec3{
			geom.V3(-0.5, 0, -0.5),
			geom.V3(0.5, 0, -0.5),
			geom.V3(0, 0, 0.5),
		},
		Normals: []geom.Vec3{geom.V3(0, -1, 0)},
		UVs:     []geom.Vec2{{0, 0}, {1, 0}, {0.5, 1}},
		Faces: []mesh.Face{
			{V: [3]int{0, 1, 2}, UV: [3]int{0, 1, 2}},
		},
	})
}

// addQuad appends the quad c±u±v as two triangles sharing normal n. UV
// indices refer to quadUVs.
func addQuad(d *mesh.Data, c, u, v, n geom.Vec3) {
	base := len(d.Vertices)
	nb := len(d.Normals)
	d.Vertices = append(d.Vertices,
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
	)
	d.Normals = append(d.Normals, n)
	d.Faces = append(d.Faces,
		mesh.Face{
			V:  [3]int{base, base + 1, base + 2},
			UV: [3]int{0, 1, 2},
			N:  [3]int{nb, nb, nb},
		},
		mesh.Face{
			V:  [3]int{base, base + 2, base + 3},
			UV: [3]int{0, 2, 3},
			N:  [3]int{nb, nb, nb},
		},
	)
}
