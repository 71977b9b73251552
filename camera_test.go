package soft3d

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/soft3d/geom"
)

func TestNewCamera_Defaults(t *testing.T) {
	c, err := NewCamera(320, 240)
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}
	if c.FOV() != DefaultFOV {
		t.Errorf("FOV() = %v, want %v", c.FOV(), DefaultFOV)
	}
	if c.Near() != DefaultNearClip || c.Far() != DefaultFarClip {
		t.Errorf("clip = [%v, %v], want [%v, %v]", c.Near(), c.Far(), DefaultNearClip, DefaultFarClip)
	}
	if c.ProjectionDistance() != DefaultProjectionDistance {
		t.Errorf("ProjectionDistance() = %v, want %v", c.ProjectionDistance(), DefaultProjectionDistance)
	}
	if want := float32(DefaultFOV) / (320.0 / 240.0); math.Abs(float64(c.VerticalFOV()-want)) > 1e-6 {
		t.Errorf("VerticalFOV() = %v, want %v", c.VerticalFOV(), want)
	}
	if c.CullMode() != gputypes.CullModeBack {
		t.Errorf("CullMode() = %v, want Back", c.CullMode())
	}
	if c.DepthCompare() != gputypes.CompareFunctionLess {
		t.Errorf("DepthCompare() = %v, want Less", c.DepthCompare())
	}
	if c.Transform() == nil {
		t.Error("Transform() = nil")
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		opts []CameraOption
	}{
		{"zero width", 0, 10, nil},
		{"negative height", 10, -1, nil},
		{"zero near", 10, 10, []CameraOption{WithClip(0, 10)}},
		{"negative near", 10, 10, []CameraOption{WithClip(-1, 10)}},
		{"far equals near", 10, 10, []CameraOption{WithClip(5, 5)}},
		{"far below near", 10, 10, []CameraOption{WithClip(5, 1)}},
		{"zero fov", 10, 10, []CameraOption{WithFOV(0)}},
		{"right angle fov", 10, 10, []CameraOption{WithFOV(math.Pi / 2)}},
		{"nan fov", 10, 10, []CameraOption{WithFOV(float32(math.NaN()))}},
		{"zero distance", 10, 10, []CameraOption{WithProjectionDistance(0)}},
		{"portrait vertical fov", 100, 200, []CameraOption{WithFOV(1.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCamera(tt.w, tt.h, tt.opts...)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("NewCamera() error = %v, want ErrInvalidConfiguration", err)
			}
			if c != nil {
				t.Error("NewCamera() returned a camera with an error")
			}
		})
	}
}

func TestCamera_SettersKeepStateOnError(t *testing.T) {
	c, err := NewCamera(100, 100)
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}

	if err := c.SetClip(1, 0.5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetClip() error = %v, want ErrInvalidConfiguration", err)
	}
	if err := c.SetFOV(2); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetFOV() error = %v, want ErrInvalidConfiguration", err)
	}
	if err := c.SetProjectionDistance(-1); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetProjectionDistance() error = %v, want ErrInvalidConfiguration", err)
	}
	if err := c.SetResolution(0, 5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetResolution() error = %v, want ErrInvalidConfiguration", err)
	}
	if err := c.SetResolution(100, 1000); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SetResolution(portrait) error = %v, want ErrInvalidConfiguration", err)
	}

	if c.Near() != DefaultNearClip || c.FOV() != DefaultFOV || c.Width() != 100 {
		t.Errorf("failed setters changed state: near %v fov %v width %d", c.Near(), c.FOV(), c.Width())
	}
}

func TestCamera_SetResolutionUpdatesVerticalFOV(t *testing.T) {
	c, err := NewCamera(100, 100)
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}
	if err := c.SetResolution(200, 100); err != nil {
		t.Fatalf("SetResolution() error = %v", err)
	}
	if want := c.FOV() / 2; c.VerticalFOV() != want {
		t.Errorf("VerticalFOV() = %v, want %v", c.VerticalFOV(), want)
	}
}

func TestCamera_Project(t *testing.T) {
	c, err := NewCamera(100, 100, WithFOV(math.Pi/4), WithProjectionDistance(2))
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}
	// tan(π/4) = 1: a point at x = y sits on the right screen edge.
	p := c.Project(geom.V3(7, 7, -7))
	if math.Abs(float64(p.X()-1)) > 1e-5 || math.Abs(float64(p.Z()+1)) > 1e-5 {
		t.Errorf("Project() = %v, want (1, 7, -1)", p)
	}
	if p.Y() != 7 {
		t.Errorf("Project() depth = %v, want 7", p.Y())
	}

	px := c.ToPixel(p.X(), p.Z())
	if !px.ApproxEqual(geom.V2(100, 100)) {
		t.Errorf("ToPixel() = %v, want (100, 100)", px)
	}
	if got := c.ToPixel(0, 0); got != geom.V2(50, 50) {
		t.Errorf("ToPixel(0, 0) = %v, want (50, 50)", got)
	}
}

func TestCamera_ToCamera(t *testing.T) {
	tr := geom.NewTransformAt(geom.V3(1, 2, 3))
	// Turn left by 90 degrees: the camera now looks along -X.
	tr.SetRotation(geom.QuatAxisAngle(geom.UnitZ, math.Pi/2))
	c, err := NewCamera(10, 10, WithTransform(tr))
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}

	got := c.ToCamera(geom.V3(-4, 2, 3))
	if !got.ApproxEqual(geom.V3(0, 5, 0)) {
		t.Errorf("ToCamera() = %v, want (0, 5, 0)", got)
	}
}

func TestCamera_Queue(t *testing.T) {
	c, err := NewCamera(10, 10)
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}
	m := testQuad(t)
	a := NewDrawable(m, nil)
	b := NewDrawable(m, nil)

	c.Add(a)
	c.Add(b)
	c.Add(a)
	c.Add(nil)
	if got := len(c.Queue()); got != 2 {
		t.Fatalf("len(Queue()) = %d, want 2", got)
	}
	if !c.Remove(a) {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove(a) {
		t.Error("second Remove(a) = true, want false")
	}
	if q := c.Queue(); len(q) != 1 || q[0] != b {
		t.Errorf("Queue() = %v, want [b]", q)
	}
}
