package soft3d

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/internal/clip"
	"github.com/gogpu/soft3d/internal/raster"
)

// Render draws every visible drawable in c's queue into dst, using f for
// scratch state.
//
// For each face Render culls by facing, runs the vertex shader, moves the
// vertices to camera space, clips against the near and far planes,
// projects, clips against the screen, fan-triangulates the result and
// scans each triangle with a per-pixel depth test. The fragment shader
// colors each pixel that passes.
//
// Render fails only on misuse: ErrNilArgument when an argument is nil and
// ErrTargetSize when dst does not match the camera resolution. It never
// fails part way through a frame.
func Render(f *Frame, c *Camera, dst Surface) error {
	if f == nil || c == nil || dst == nil {
		return ErrNilArgument
	}
	if dst.Width() != c.width || dst.Height() != c.height {
		return fmt.Errorf("%w: surface %dx%d, camera %dx%d",
			ErrTargetSize, dst.Width(), dst.Height(), c.width, c.height)
	}

	f.begin(c)
	if c.background != nil {
		fill(dst, c.background.ARGB())
	}
	for _, d := range c.queue {
		if d.Hidden {
			continue
		}
		if d.mesh == nil {
			Logger().Warn("soft3d: drawable without mesh skipped")
			continue
		}
		f.stats.Drawables++
		switch d.Mode {
		case ModeWireframe:
			f.drawEdges(c, d, dst)
		default:
			f.drawFaces(c, d, dst)
		}
	}

	Logger().Debug("soft3d: frame rendered", "stats", f.stats)
	return nil
}

func fill(dst Surface, v uint32) {
	if t, ok := dst.(*Target); ok {
		t.Clear(ColorFromARGB(v))
		return
	}
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.SetARGB(x, y, v)
		}
	}
}

// culled reports whether a face with normal n is skipped under mode m
// for a camera looking along forward.
func culled(m gputypes.CullMode, n, forward geom.Vec3) bool {
	facing := n.Dot(forward.Neg())
	switch m {
	case gputypes.CullModeBack:
		return facing < 0
	case gputypes.CullModeFront:
		return facing > 0
	default:
		return false
	}
}

// shade runs the vertex shader for one face vertex and returns the
// camera-space clip vertex.
func (f *Frame) shade(c *Camera, d *Drawable, vi, ni, ti int) clip.Vertex {
	m, w := d.mesh, d.world
	v := &f.vertex
	*v = Vertex{
		Local:    m.Vertices()[vi],
		Position: w.Vertices()[vi],
		Normal:   w.Normals()[ni],
		UV:       m.UVs()[ti],
		Index:    vi,
		Object:   d,
		Camera:   c,
	}
	if d.VertexShader != nil {
		d.VertexShader(v)
	}
	return clip.Vertex{Pos: c.ToCamera(v.Position), UV: v.UV, N: v.Normal}
}

func (f *Frame) drawFaces(c *Camera, d *Drawable, dst Surface) {
	shader := d.FragmentShader
	if shader == nil {
		shader = FlatShader
	}
	forward := c.transform.Forward()
	faceNormals := d.world.FaceNormals()

	var faceNormal geom.Vec3
	emit := func(rf *raster.Fragment) {
		fr := &f.frag
		*fr = Fragment{
			X:          rf.X,
			Y:          rf.Y,
			Depth:      rf.Depth,
			UV:         rf.UV,
			Normal:     rf.N,
			FaceNormal: faceNormal,
			Albedo:     d.Albedo,
			Color:      d.Albedo,
			Object:     d,
			Camera:     c,
		}
		shader(fr)
		dst.SetARGB(fr.X, fr.Y, fr.Color.ARGB())
	}

	for i, face := range d.mesh.Faces() {
		f.stats.Faces++
		faceNormal = faceNormals[i]
		if culled(c.cull, faceNormal, forward) {
			f.stats.Culled++
			continue
		}

		for j := 0; j < 3; j++ {
			f.tri[j] = f.shade(c, d, face.V[j], face.N[j], face.UV[j])
		}

		poly := f.clipper.ClipDepth(f.tri[:], c.near, c.far)
		for k := range poly {
			poly[k].Pos = c.Project(poly[k].Pos)
		}
		poly = f.clipper.ClipScreen(poly)
		if len(poly) == 0 {
			f.stats.Clipped++
			continue
		}

		f.fan = clip.Triangulate(f.fan[:0], len(poly))
		for _, idx := range f.fan {
			t := &f.screen
			for k, vi := range idx {
				p := poly[vi]
				t.P[k] = c.ToPixel(p.Pos.X(), p.Pos.Z())
				t.Z[k] = p.Pos.Y()
				t.UV[k] = p.UV
				t.N[k] = p.N
			}
			if t.Area() == 0 {
				f.stats.Degenerate++
				continue
			}
			f.stats.Triangles++
			covered, passed := f.raster.Fill(t, f.depth, emit)
			f.stats.Fragments += covered
			f.stats.Pixels += passed
		}
	}
}

// drawEdges draws the mesh edge list as depth-tested lines in the
// drawable's albedo. Fragment shaders do not run for lines.
func (f *Frame) drawEdges(c *Camera, d *Drawable, dst Surface) {
	argb := d.Albedo.ARGB()
	plot := func(x, y int, _ float32) {
		dst.SetARGB(x, y, argb)
	}

	normals := len(d.world.Normals())
	for _, e := range d.mesh.Edges() {
		// Edges carry no UV or normal index; use the vertex's own slots
		// when the mesh has per-vertex normals.
		ni0, ni1 := 0, 0
		if normals > max(e[0], e[1]) {
			ni0, ni1 = e[0], e[1]
		}
		s := clip.NewSegment(f.shade(c, d, e[0], ni0, 0), f.shade(c, d, e[1], ni1, 0))
		if !s.ClipDepth(c.near, c.far) {
			continue
		}
		s.P[0].Pos = c.Project(s.P[0].Pos)
		s.P[1].Pos = c.Project(s.P[1].Pos)
		if !s.ClipScreen() {
			continue
		}

		a, b := s.P[0].Pos, s.P[1].Pos
		f.stats.Lines++
		f.stats.Pixels += f.raster.Line(
			c.ToPixel(a.X(), a.Z()), c.ToPixel(b.X(), b.Z()),
			a.Y(), b.Y(), f.depth, plot)
	}
}
