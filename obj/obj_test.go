package obj

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

const quad = `# unit quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 -1 0
g front
s off
usemtl none
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestRead_Quad(t *testing.T) {
	m, err := Read(strings.NewReader(quad))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if m.Name() != "Quad" {
		t.Errorf("Name() = %q, want Quad", m.Name())
	}
	if got := len(m.Vertices()); got != 4 {
		t.Errorf("len(Vertices()) = %d, want 4", got)
	}
	if got := len(m.UVs()); got != 4 {
		t.Errorf("len(UVs()) = %d, want 4", got)
	}
	want := []mesh.Face{
		{V: [3]int{0, 1, 2}, UV: [3]int{0, 1, 2}, N: [3]int{0, 0, 0}},
		{V: [3]int{0, 2, 3}, UV: [3]int{0, 2, 3}, N: [3]int{0, 0, 0}},
	}
	faces := m.Faces()
	if len(faces) != len(want) {
		t.Fatalf("len(Faces()) = %d, want %d", len(faces), len(want))
	}
	for i := range want {
		if faces[i] != want[i] {
			t.Errorf("Faces()[%d] = %+v, want %+v", i, faces[i], want[i])
		}
	}
	if n := m.Normals()[0]; n != geom.V3(0, -1, 0) {
		t.Errorf("Normals()[0] = %v, want (0, -1, 0)", n)
	}
}

func TestRead_FaceForms(t *testing.T) {
	tests := []struct {
		name string
		face string
		want mesh.Face
	}{
		{"positions", "f 1 2 3", mesh.Face{V: [3]int{0, 1, 2}, N: [3]int{0, 1, 2}}},
		{"uvs", "f 1/2 2/2 3/1", mesh.Face{V: [3]int{0, 1, 2}, UV: [3]int{1, 1, 0}, N: [3]int{0, 1, 2}}},
		{"normals", "f 1//1 2//1 3//1", mesh.Face{V: [3]int{0, 1, 2}, N: [3]int{0, 0, 0}}},
		{"relative", "f -3/-2/-1 -2/-1/-1 -1/-1/-1", mesh.Face{V: [3]int{0, 1, 2}, UV: [3]int{0, 1, 1}, N: [3]int{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "v 0 0 0\nv 1 0 0\nv 0 0 1\nvt 0 0\nvt 1 1\nvn 0 -1 0\n" + tt.face + "\n"
			m, err := Read(strings.NewReader(src))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got := m.Faces()[0]; got != tt.want {
				t.Errorf("Faces()[0] = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRead_MissingNormalsDerived(t *testing.T) {
	// One face references a normal, one does not: normals are recomputed.
	src := "v 0 0 0\nv 1 0 0\nv 0 0 1\nv 1 0 1\nvn 0 1 0\nf 1//1 2//1 3//1\nf 2 4 3\n"
	m, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := len(m.Normals()); got != 4 {
		t.Fatalf("len(Normals()) = %d, want 4", got)
	}
	for i, n := range m.Normals() {
		if !n.ApproxEqual(geom.V3(0, -1, 0)) {
			t.Errorf("Normals()[%d] = %v, want (0, -1, 0)", i, n)
		}
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		syntax bool
		line   string
	}{
		{"short vertex", "v 1 2\n", true, "line 1"},
		{"bad number", "v 1 x 2\n", true, "line 1"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", true, "line 3"},
		{"zero index", "v 0 0 0\nf 0 1 1\n", true, "line 2"},
		{"relative out of range", "v 0 0 0\nf -2 1 1\n", true, "line 2"},
		{"bad index", "v 0 0 0\nf a 1 1\n", true, "line 2"},
		{"too many slashes", "v 0 0 0\nf 1/1/1/1 1 1\n", true, "line 2"},
		{"forward index", "v 0 0 0\nf 1 2 3\n", false, ""},
		{"empty", "# nothing\n", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Read() error = nil, want error")
			}
			if got := errors.Is(err, ErrSyntax); got != tt.syntax {
				t.Errorf("errors.Is(err, ErrSyntax) = %v, want %v (err = %v)", got, tt.syntax, err)
			}
			if !tt.syntax && !errors.Is(err, mesh.ErrMalformed) {
				t.Errorf("errors.Is(err, mesh.ErrMalformed) = false (err = %v)", err)
			}
			if tt.line != "" && !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not name %q", err, tt.line)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 0 1\nf 1 2 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name() != "tri" {
		t.Errorf("Name() = %q, want tri", m.Name())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}
