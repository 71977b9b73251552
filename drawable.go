package soft3d

import (
	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

// Mode selects how a Drawable is rasterized.
type Mode uint8

const (
	// ModeFill rasterizes filled triangles.
	ModeFill Mode = iota
	// ModeWireframe draws the mesh edges as depth-tested lines.
	ModeWireframe
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFill:
		return "fill"
	case ModeWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

// Drawable is a mesh placed in the world by a transform, with the shading
// configuration used to render it.
//
// The world-space copy of the mesh is refreshed whenever the transform
// changes; Close detaches the drawable from its transform.
type Drawable struct {
	// Albedo is the base color passed to the fragment shader.
	Albedo Color
	// VertexShader runs once per face vertex; nil leaves vertices as is.
	VertexShader VertexShader
	// FragmentShader colors every visible pixel; nil selects FlatShader.
	FragmentShader FragmentShader
	Mode           Mode
	// Hidden drawables are skipped by Render.
	Hidden bool

	mesh      *mesh.Mesh
	transform *geom.Transform
	world     *mesh.World
	cancel    func()
}

// NewDrawable places m under t. A nil t places the mesh at the origin
// with a fresh transform.
func NewDrawable(m *mesh.Mesh, t *geom.Transform, opts ...DrawableOption) *Drawable {
	if t == nil {
		t = geom.NewTransform()
	}
	d := &Drawable{
		Albedo:    White,
		mesh:      m,
		transform: t,
		world:     mesh.NewWorld(m, t),
	}
	d.cancel = t.Observe(func(t *geom.Transform, ops geom.Ops) {
		d.world.Refresh(t, ops)
	})
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mesh returns the source mesh.
func (d *Drawable) Mesh() *mesh.Mesh { return d.mesh }

// Transform returns the drawable's transform.
func (d *Drawable) Transform() *geom.Transform { return d.transform }

// World returns the world-space copy of the mesh.
func (d *Drawable) World() *mesh.World { return d.world }

// Close stops tracking the transform. The world-space copy keeps its last
// state. Close is idempotent.
func (d *Drawable) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
