// Package obj reads Wavefront OBJ geometry into meshes.
//
// Supported statements are v, vt, vn, f and o. Faces may reference
// vertices as v, v/vt, v//vn or v/vt/vn, with 1-based or negative
// (relative) indices; polygons with more than three vertices are
// fan-triangulated. Other statements, such as g, s, usemtl and mtllib, are
// ignored.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

// ErrSyntax is returned for a malformed statement. The wrapping error
// names the line.
var ErrSyntax = errors.New("obj: syntax error")

// Load reads the OBJ file at path. The mesh is named after the file unless
// the file names an object.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return read(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// Read parses OBJ data from r.
func Read(r io.Reader) (*mesh.Mesh, error) {
	return read(r, "")
}

// corner is one face vertex; uv and n are -1 when absent.
type corner struct {
	v, uv, n int
}

type parser struct {
	data    mesh.Data
	line    int
	corners []corner
	// missingNormal is set when some face vertex has no normal index.
	missingNormal bool
}

func read(r io.Reader, name string) (*mesh.Mesh, error) {
	p := &parser{data: mesh.Data{Name: name}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.statement(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}

	if p.missingNormal {
		p.data.Normals = nil
	}
	return mesh.New(p.data)
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) statement(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := p.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.data.Vertices = append(p.data.Vertices, geom.V3(v[0], v[1], v[2]))
	case "vn":
		v, err := p.floats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.data.Normals = append(p.data.Normals, geom.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := p.floats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.data.UVs = append(p.data.UVs, geom.V2(v[0], v[1]))
	case "f":
		return p.face(fields[1:])
	case "o":
		if len(fields) > 1 {
			p.data.Name = strings.Join(fields[1:], " ")
		}
	}
	return nil
}

// floats parses at least n numbers; extra components (w) are ignored.
func (p *parser) floats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, p.errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, p.errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *parser) face(fields []string) error {
	if len(fields) < 3 {
		return p.errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	p.corners = p.corners[:0]
	for _, f := range fields {
		c, err := p.corner(f)
		if err != nil {
			return err
		}
		p.corners = append(p.corners, c)
	}

	for i := 1; i+1 < len(p.corners); i++ {
		a, b, c := p.corners[0], p.corners[i], p.corners[i+1]
		face := mesh.Face{
			V: [3]int{a.v, b.v, c.v},
		}
		for j, k := range [3]corner{a, b, c} {
			if k.uv >= 0 {
				face.UV[j] = k.uv
			}
			if k.n >= 0 {
				face.N[j] = k.n
			} else {
				p.missingNormal = true
			}
		}
		p.data.Faces = append(p.data.Faces, face)
	}
	return nil
}

func (p *parser) corner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, p.errorf("bad face vertex %q", s)
	}
	c := corner{v: -1, uv: -1, n: -1}

	var err error
	if c.v, err = p.index(parts[0], len(p.data.Vertices)); err != nil {
		return corner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.uv, err = p.index(parts[1], len(p.data.UVs)); err != nil {
			return corner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.n, err = p.index(parts[2], len(p.data.Normals)); err != nil {
			return corner{}, err
		}
	}
	return c, nil
}

// index converts a 1-based or negative OBJ index to a 0-based one, given
// the number of elements defined so far.
func (p *parser) index(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("bad index %q", s)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0 && count+i >= 0:
		return count + i, nil
	default:
		return 0, p.errorf("index %d out of range", i)
	}
}
