package soft3d

import (
	"testing"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

func testQuad(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(mesh.Data{
		Name: "quad",
		Vertices: []geom.Vec3{
			geom.V3(0, 0, 0),
			geom.V3(0, 0, 1),
			geom.V3(1, 0, 1),
			geom.V3(1, 0, 0),
		},
		Faces: []mesh.Face{
			{V: [3]int{0, 2, 1}},
			{V: [3]int{0, 3, 2}},
		},
	})
	if err != nil {
		t.Fatalf("mesh.New() error = %v", err)
	}
	return m
}

func TestNewDrawable_Defaults(t *testing.T) {
	d := NewDrawable(testQuad(t), nil)
	if d.Transform() == nil {
		t.Fatal("Transform() = nil")
	}
	if d.Albedo != White {
		t.Errorf("Albedo = %v, want White", d.Albedo)
	}
	if d.Mode != ModeFill {
		t.Errorf("Mode = %v, want fill", d.Mode)
	}
	if d.World().Mesh() != d.Mesh() {
		t.Error("World().Mesh() differs from Mesh()")
	}
}

func TestDrawable_TracksTransform(t *testing.T) {
	tr := geom.NewTransform()
	d := NewDrawable(testQuad(t), tr)

	tr.SetLocation(geom.V3(0, 4, 0))
	if got := d.World().Vertices()[2]; !got.ApproxEqual(geom.V3(1, 4, 1)) {
		t.Errorf("after SetLocation Vertices()[2] = %v, want (1, 4, 1)", got)
	}

	tr.SetScale(geom.V3(3, 3, 3))
	if got := d.World().Vertices()[2]; !got.ApproxEqual(geom.V3(3, 4, 3)) {
		t.Errorf("after SetScale Vertices()[2] = %v, want (3, 4, 3)", got)
	}
}

func TestDrawable_Close(t *testing.T) {
	tr := geom.NewTransform()
	d := NewDrawable(testQuad(t), tr)
	d.Close()
	d.Close()

	tr.SetLocation(geom.V3(9, 9, 9))
	if got := d.World().Vertices()[0]; got != geom.Zero3 {
		t.Errorf("closed drawable followed its transform: %v", got)
	}
}

func TestDrawable_Options(t *testing.T) {
	d := NewDrawable(testQuad(t), nil,
		WithAlbedo(Red),
		WithMode(ModeWireframe),
		WithFragmentShader(UVShader),
		WithVertexShader(func(*Vertex) {}),
	)
	if d.Albedo != Red {
		t.Errorf("Albedo = %v, want Red", d.Albedo)
	}
	if d.Mode != ModeWireframe {
		t.Errorf("Mode = %v, want wireframe", d.Mode)
	}
	if d.FragmentShader == nil || d.VertexShader == nil {
		t.Error("shader options not applied")
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{ModeFill, "fill"},
		{ModeWireframe, "wireframe"},
		{Mode(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}
