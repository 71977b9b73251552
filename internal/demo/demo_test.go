package demo

import (
	"errors"
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/soft3d"
)

func TestRegisterFlags(t *testing.T) {
	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-mesh", "sphere", "-width", "64", "-wireframe"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Mesh != "sphere" || c.Width != 64 || c.Height != 240 || !c.Wireframe || c.Shader != "smooth" {
		t.Errorf("Config = %+v", c)
	}
}

func TestLoadMesh(t *testing.T) {
	for _, name := range []string{"cube", "plane", "triangle"} {
		m, err := LoadMesh(name, 8)
		if err != nil {
			t.Errorf("LoadMesh(%q) error = %v", name, err)
			continue
		}
		if m.Name() != name {
			t.Errorf("LoadMesh(%q).Name() = %q", name, m.Name())
		}
	}
	if _, err := LoadMesh("teapot", 8); !errors.Is(err, ErrUnknown) {
		t.Errorf("LoadMesh(teapot) error = %v, want ErrUnknown", err)
	}

	path := filepath.Join(t.TempDir(), "t.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 2 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMesh(path, 8); err != nil {
		t.Errorf("LoadMesh(obj) error = %v", err)
	}
}

func TestShader(t *testing.T) {
	for _, name := range []string{"flat", "smooth", "uv", "depth"} {
		if fn, err := Shader(name, nil); err != nil || fn == nil {
			t.Errorf("Shader(%q) = %v, %v", name, fn != nil, err)
		}
	}
	if _, err := Shader("texture", nil); err == nil {
		t.Error("Shader(texture, nil) error = nil, want error")
	}
	if fn, err := Shader("texture", image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil || fn == nil {
		t.Errorf("Shader(texture) error = %v", err)
	}
	if _, err := Shader("toon", nil); !errors.Is(err, ErrUnknown) {
		t.Errorf("Shader(toon) error = %v, want ErrUnknown", err)
	}
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("Bounds() = %v", img.Bounds())
	}
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("LoadTexture(missing) error = nil")
	}
}

func TestSceneRender(t *testing.T) {
	c := Config{Mesh: "cube", Shader: "flat", Width: 80, Height: 60, FOV: float64(soft3d.DefaultFOV), Distance: 3, Tilt: 25}
	s, err := c.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := s.Frame.Stats().Pixels; got == 0 {
		t.Error("Stats().Pixels = 0, want the cube drawn")
	}
	if s.Target.ARGB(40, 30) == s.Target.ARGB(0, 0) {
		t.Error("center pixel matches the background")
	}

	s.Spin(0.5)
	s.Spin(0.25)
	if s.Angle() != 0.75 {
		t.Errorf("Angle() = %v, want 0.75", s.Angle())
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render() after Spin error = %v", err)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []Config{
		{Mesh: "nope", Shader: "flat", Width: 10, Height: 10, FOV: 0.7, Distance: 3},
		{Mesh: "cube", Shader: "nope", Width: 10, Height: 10, FOV: 0.7, Distance: 3},
		{Mesh: "cube", Shader: "flat", Width: 0, Height: 10, FOV: 0.7, Distance: 3},
		{Mesh: "cube", Shader: "texture", Texture: "/nonexistent.png", Width: 10, Height: 10, FOV: 0.7, Distance: 3},
	}
	for i, c := range tests {
		if _, err := c.Build(); err == nil {
			t.Errorf("case %d: Build() error = nil, want error", i)
		}
	}
}
