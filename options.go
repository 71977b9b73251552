package soft3d

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/soft3d/geom"
)

// Default camera configuration.
const (
	DefaultFOV                = 0.7853
	DefaultNearClip           = 0.1
	DefaultFarClip            = 100
	DefaultProjectionDistance = 1
)

// CameraOption configures a Camera during creation.
//
// Example:
//
//	cam, err := soft3d.NewCamera(640, 480,
//	    soft3d.WithFOV(1.0),
//	    soft3d.WithClip(0.5, 250),
//	)
type CameraOption func(*cameraOptions)

type cameraOptions struct {
	fov        float32
	near, far  float32
	dist       float32
	transform  *geom.Transform
	cull       gputypes.CullMode
	compare    gputypes.CompareFunction
	background *Color
}

func defaultCameraOptions() cameraOptions {
	return cameraOptions{
		fov:     DefaultFOV,
		near:    DefaultNearClip,
		far:     DefaultFarClip,
		dist:    DefaultProjectionDistance,
		cull:    gputypes.CullModeBack,
		compare: gputypes.CompareFunctionLess,
	}
}

// WithFOV sets the horizontal field of view in radians. The vertical FOV
// is derived from it and the aspect ratio.
func WithFOV(fov float32) CameraOption {
	return func(o *cameraOptions) {
		o.fov = fov
	}
}

// WithClip sets the near and far clip distances.
func WithClip(near, far float32) CameraOption {
	return func(o *cameraOptions) {
		o.near, o.far = near, far
	}
}

// WithProjectionDistance sets the distance of the view plane.
func WithProjectionDistance(d float32) CameraOption {
	return func(o *cameraOptions) {
		o.dist = d
	}
}

// WithTransform places the camera with an existing transform instead of
// a fresh one at the origin.
func WithTransform(t *geom.Transform) CameraOption {
	return func(o *cameraOptions) {
		o.transform = t
	}
}

// WithCullMode selects which faces are skipped. The default is
// gputypes.CullModeBack.
func WithCullMode(m gputypes.CullMode) CameraOption {
	return func(o *cameraOptions) {
		o.cull = m
	}
}

// WithDepthCompare selects the depth test. The default is
// gputypes.CompareFunctionLess.
func WithDepthCompare(f gputypes.CompareFunction) CameraOption {
	return func(o *cameraOptions) {
		o.compare = f
	}
}

// WithBackground makes Render fill the surface with c before drawing.
// Without it Render leaves untouched pixels as they were.
func WithBackground(c Color) CameraOption {
	return func(o *cameraOptions) {
		o.background = &c
	}
}

// DrawableOption configures a Drawable during creation.
type DrawableOption func(*Drawable)

// WithAlbedo sets the base color handed to the fragment shader.
func WithAlbedo(c Color) DrawableOption {
	return func(d *Drawable) {
		d.Albedo = c
	}
}

// WithVertexShader sets the vertex shader. Nil leaves positions unchanged.
func WithVertexShader(fn VertexShader) DrawableOption {
	return func(d *Drawable) {
		d.VertexShader = fn
	}
}

// WithFragmentShader sets the fragment shader. Nil selects FlatShader.
func WithFragmentShader(fn FragmentShader) DrawableOption {
	return func(d *Drawable) {
		d.FragmentShader = fn
	}
}

// WithMode sets how the drawable is rasterized.
func WithMode(m Mode) DrawableOption {
	return func(d *Drawable) {
		d.Mode = m
	}
}
