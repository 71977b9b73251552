// Package demo holds the scene setup shared by the soft3d commands.
package demo

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg" // texture decoders
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
	"github.com/gogpu/soft3d/meshgen"
	"github.com/gogpu/soft3d/obj"
)

// ErrUnknown is returned for an unrecognized mesh or shader name.
var ErrUnknown = errors.New("demo: unknown name")

// Shapes lists the built-in mesh names accepted by Config.Mesh.
var Shapes = []string{"cube", "plane", "triangle", "sphere", "box"}

// Shaders lists the fragment shader names accepted by Config.Shader.
var Shaders = []string{"flat", "smooth", "uv", "depth", "texture"}

// Config is the scene description shared by all commands.
type Config struct {
	Mesh      string
	Texture   string
	Shader    string
	Width     int
	Height    int
	FOV       float64
	Distance  float64
	Cells     int
	Tilt      float64
	Wireframe bool
	NoCull    bool
	Verbose   bool
}

// RegisterFlags binds the config to fs with defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Mesh, "mesh", "cube", "built-in shape ("+strings.Join(Shapes, ", ")+") or path to an .obj file")
	fs.StringVar(&c.Texture, "texture", "", "image used by the texture shader")
	fs.StringVar(&c.Shader, "shader", "smooth", "fragment shader ("+strings.Join(Shaders, ", ")+")")
	fs.IntVar(&c.Width, "width", 320, "render width")
	fs.IntVar(&c.Height, "height", 240, "render height")
	fs.Float64Var(&c.FOV, "fov", float64(soft3d.DefaultFOV), "horizontal field of view in radians")
	fs.Float64Var(&c.Distance, "distance", 3, "camera distance from the origin")
	fs.IntVar(&c.Cells, "cells", meshgen.DefaultCells, "marching cubes resolution for sphere and box")
	fs.Float64Var(&c.Tilt, "tilt", 25, "object tilt toward the camera in degrees")
	fs.BoolVar(&c.Wireframe, "wireframe", false, "draw edges only")
	fs.BoolVar(&c.NoCull, "nocull", false, "draw back faces")
	fs.BoolVar(&c.Verbose, "v", false, "log render statistics")
}

// SetupLogging routes soft3d logs to stderr when verbose is set.
func SetupLogging(verbose bool) {
	if !verbose {
		return
	}
	soft3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

var solids = meshgen.NewCache(8)

// LoadMesh returns a built-in shape or reads an OBJ file. Tessellated
// solids are cached.
func LoadMesh(name string, cells int) (*mesh.Mesh, error) {
	switch name {
	case "cube":
		return meshgen.Cube(1), nil
	case "plane":
		return meshgen.Plane(1.5), nil
	case "triangle":
		return meshgen.Triangle(), nil
	case "sphere":
		return solids.Sphere(0.7, cells)
	case "box":
		return solids.Box(geom.V3(1.2, 0.8, 0.8), 0.1, cells)
	}
	if strings.HasSuffix(strings.ToLower(name), ".obj") {
		return obj.Load(name)
	}
	return nil, fmt.Errorf("%w: mesh %q", ErrUnknown, name)
}

// LoadTexture decodes an image file.
func LoadTexture(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("demo: decode %s: %w", path, err)
	}
	return img, nil
}

// Shader returns the named fragment shader. The texture shader needs tex.
func Shader(name string, tex image.Image) (soft3d.FragmentShader, error) {
	switch name {
	case "flat":
		return soft3d.FlatShader, nil
	case "smooth":
		return soft3d.SmoothShader, nil
	case "uv":
		return soft3d.UVShader, nil
	case "depth":
		return soft3d.DepthShader, nil
	case "texture":
		if tex == nil {
			return nil, errors.New("demo: texture shader needs -texture")
		}
		return soft3d.TextureShader(tex), nil
	}
	return nil, fmt.Errorf("%w: shader %q", ErrUnknown, name)
}

// Scene is a camera looking at one drawable.
type Scene struct {
	Camera   *soft3d.Camera
	Drawable *soft3d.Drawable
	Frame    *soft3d.Frame
	Target   *soft3d.Target

	tilt  geom.Quat
	angle float32
}

// Build loads the mesh and shaders and places the camera on -Y looking at
// the origin.
func (c *Config) Build() (*Scene, error) {
	m, err := LoadMesh(c.Mesh, c.Cells)
	if err != nil {
		return nil, err
	}
	var tex image.Image
	if c.Texture != "" {
		if tex, err = LoadTexture(c.Texture); err != nil {
			return nil, err
		}
	}
	shader, err := Shader(c.Shader, tex)
	if err != nil {
		return nil, err
	}

	cull := gputypes.CullModeBack
	if c.NoCull {
		cull = gputypes.CullModeNone
	}
	cam, err := soft3d.NewCamera(c.Width, c.Height,
		soft3d.WithFOV(float32(c.FOV)),
		soft3d.WithTransform(geom.NewTransformAt(geom.V3(0, -float32(c.Distance), 0))),
		soft3d.WithCullMode(cull),
		soft3d.WithBackground(soft3d.RGB(0.08, 0.09, 0.12)),
	)
	if err != nil {
		return nil, err
	}

	mode := soft3d.ModeFill
	if c.Wireframe {
		mode = soft3d.ModeWireframe
	}
	d := soft3d.NewDrawable(m, nil,
		soft3d.WithAlbedo(soft3d.RGB(0.9, 0.75, 0.4)),
		soft3d.WithFragmentShader(shader),
		soft3d.WithMode(mode),
	)
	cam.Add(d)

	s := &Scene{
		Camera:   cam,
		Drawable: d,
		Frame:    soft3d.NewFrame(),
		Target:   soft3d.NewTarget(c.Width, c.Height),
		tilt:     geom.QuatAxisAngle(geom.UnitX, float32(c.Tilt*math.Pi/180)),
	}
	s.Spin(0)
	return s, nil
}

// Spin turns the drawable by angle radians about its own Z axis, keeping
// the tilt toward the camera.
func (s *Scene) Spin(angle float32) {
	s.angle += angle
	s.Drawable.Transform().SetRotation(s.tilt.Mul(geom.QuatAxisAngle(geom.UnitZ, s.angle)))
}

// Angle returns the accumulated spin.
func (s *Scene) Angle() float32 { return s.angle }

// Render draws the scene into its target.
func (s *Scene) Render() error {
	return soft3d.Render(s.Frame, s.Camera, s.Target)
}
