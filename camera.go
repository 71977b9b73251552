package soft3d

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/soft3d/geom"
)

// Camera is a perspective viewpoint together with the queue of drawables
// it renders.
//
// In camera space X points right, Y forward (depth) and Z up. A point at
// camera-space (x, y, z) projects to normalized screen coordinates
//
//	sx = (d*x/y) * coeffX,  sz = (d*z/y) * coeffZ
//
// with coeffX = 1/(d*tan(fov)) and coeffZ = 1/(d*tan(fov/aspect)), where d
// is the projection distance and aspect is width/height. The visible
// screen is the square |sx| <= 1, |sz| <= 1.
//
// A Camera is not safe for concurrent mutation.
type Camera struct {
	width, height int
	fov           float32
	near, far     float32
	dist          float32

	vfov           float32
	coeffX, coeffZ float32

	transform  *geom.Transform
	queue      []*Drawable
	cull       gputypes.CullMode
	compare    gputypes.CompareFunction
	background *Color
}

// NewCamera creates a camera rendering width x height pixels.
// Invalid parameters are reported as ErrInvalidConfiguration.
func NewCamera(width, height int, opts ...CameraOption) (*Camera, error) {
	o := defaultCameraOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(width, height, o.fov, o.near, o.far, o.dist); err != nil {
		return nil, err
	}

	c := &Camera{
		width:      width,
		height:     height,
		fov:        o.fov,
		near:       o.near,
		far:        o.far,
		dist:       o.dist,
		transform:  o.transform,
		cull:       o.cull,
		compare:    o.compare,
		background: o.background,
	}
	if c.transform == nil {
		c.transform = geom.NewTransform()
	}
	c.update()
	return c, nil
}

func validate(width, height int, fov, near, far, dist float32) error {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfiguration, width, height)
	case !(fov > 0 && fov < math.Pi/2):
		return fmt.Errorf("%w: fov %v outside (0, π/2)", ErrInvalidConfiguration, fov)
	case !(fov*float32(height)/float32(width) < math.Pi/2):
		return fmt.Errorf("%w: vertical fov %v outside (0, π/2) at %dx%d",
			ErrInvalidConfiguration, fov*float32(height)/float32(width), width, height)
	case !(near > 0):
		return fmt.Errorf("%w: near clip %v must be positive", ErrInvalidConfiguration, near)
	case !(far > near):
		return fmt.Errorf("%w: far clip %v must exceed near clip %v", ErrInvalidConfiguration, far, near)
	case !(dist > 0):
		return fmt.Errorf("%w: projection distance %v must be positive", ErrInvalidConfiguration, dist)
	}
	return nil
}

// update recomputes the derived projection parameters.
func (c *Camera) update() {
	aspect := float32(c.width) / float32(c.height)
	c.vfov = c.fov / aspect
	c.coeffX = 1 / (c.dist * float32(math.Tan(float64(c.fov))))
	c.coeffZ = 1 / (c.dist * float32(math.Tan(float64(c.vfov))))
	Logger().Debug("soft3d: camera configured",
		"width", c.width, "height", c.height,
		"fov", c.fov, "vfov", c.vfov,
		"near", c.near, "far", c.far)
}

// Width returns the horizontal resolution.
func (c *Camera) Width() int { return c.width }

// Height returns the vertical resolution.
func (c *Camera) Height() int { return c.height }

// FOV returns the horizontal field of view.
func (c *Camera) FOV() float32 { return c.fov }

// VerticalFOV returns the derived vertical field of view.
func (c *Camera) VerticalFOV() float32 { return c.vfov }

// Near returns the near clip distance.
func (c *Camera) Near() float32 { return c.near }

// Far returns the far clip distance.
func (c *Camera) Far() float32 { return c.far }

// ProjectionDistance returns the view plane distance.
func (c *Camera) ProjectionDistance() float32 { return c.dist }

// Transform returns the camera pose. Changes take effect on the next
// render.
func (c *Camera) Transform() *geom.Transform { return c.transform }

// CullMode returns the face culling mode.
func (c *Camera) CullMode() gputypes.CullMode { return c.cull }

// SetCullMode sets the face culling mode.
func (c *Camera) SetCullMode(m gputypes.CullMode) { c.cull = m }

// DepthCompare returns the depth test function.
func (c *Camera) DepthCompare() gputypes.CompareFunction { return c.compare }

// SetDepthCompare sets the depth test function.
func (c *Camera) SetDepthCompare(f gputypes.CompareFunction) { c.compare = f }

// SetResolution changes the output size. The vertical FOV follows the new
// aspect ratio.
func (c *Camera) SetResolution(width, height int) error {
	if err := validate(width, height, c.fov, c.near, c.far, c.dist); err != nil {
		return err
	}
	c.width, c.height = width, height
	c.update()
	return nil
}

// SetFOV changes the horizontal field of view.
func (c *Camera) SetFOV(fov float32) error {
	if err := validate(c.width, c.height, fov, c.near, c.far, c.dist); err != nil {
		return err
	}
	c.fov = fov
	c.update()
	return nil
}

// SetClip changes the near and far clip distances.
func (c *Camera) SetClip(near, far float32) error {
	if err := validate(c.width, c.height, c.fov, near, far, c.dist); err != nil {
		return err
	}
	c.near, c.far = near, far
	c.update()
	return nil
}

// SetProjectionDistance changes the view plane distance.
func (c *Camera) SetProjectionDistance(d float32) error {
	if err := validate(c.width, c.height, c.fov, c.near, c.far, d); err != nil {
		return err
	}
	c.dist = d
	c.update()
	return nil
}

// Add appends d to the render queue. Adding a drawable twice is a no-op.
func (c *Camera) Add(d *Drawable) {
	if d == nil || slices.Contains(c.queue, d) {
		return
	}
	c.queue = append(c.queue, d)
}

// Remove deletes d from the render queue and reports whether it was there.
func (c *Camera) Remove(d *Drawable) bool {
	i := slices.Index(c.queue, d)
	if i < 0 {
		return false
	}
	c.queue = slices.Delete(c.queue, i, i+1)
	return true
}

// Queue returns the drawables in render order. The slice is shared with
// the camera.
func (c *Camera) Queue() []*Drawable { return c.queue }

// ToCamera converts a world-space point to camera space.
func (c *Camera) ToCamera(p geom.Vec3) geom.Vec3 {
	return c.transform.Rotation().Conjugate().Rotate(p.Sub(c.transform.Location()))
}

// Project maps a camera-space point with positive depth to normalized
// screen space. The depth is carried in Y.
func (c *Camera) Project(p geom.Vec3) geom.Vec3 {
	y := p.Y()
	return geom.V3(
		c.dist*p.X()/y*c.coeffX,
		y,
		c.dist*p.Z()/y*c.coeffZ,
	)
}

// ToPixel maps normalized screen coordinates to pixel coordinates with
// the origin at the top-left corner.
func (c *Camera) ToPixel(sx, sz float32) geom.Vec2 {
	w, h := float32(c.width), float32(c.height)
	return geom.V2(w/2+sx*w/2, h/2-sz*h/2)
}
