package clip

import "github.com/gogpu/soft3d/geom"

// Clipper clips convex polygons edge by edge.
//
// Each stage walks the polygon's edges pairwise (v0v1, v1v2, ..., vn-1v0)
// and clips every edge independently. For each surviving edge it emits the
// start point (moved or not) and, only if it was moved, the end point. An
// unmoved vertex is therefore emitted exactly once, as the start of the
// edge leaving it.
//
// The slices returned by a Clipper alias its internal buffers and are
// valid until the next call. A Clipper is not safe for concurrent use.
type Clipper struct {
	depth  []Vertex
	screen []Vertex
	out    []Vertex
	exits  []bool
}

// ClipDepth clips poly against near <= y <= far. A triangle yields an empty
// result or a polygon of 3 to 5 vertices.
func (c *Clipper) ClipDepth(poly []Vertex, near, far float32) []Vertex {
	c.depth = c.depth[:0]
	n := len(poly)
	for i := 0; i < n; i++ {
		s := NewSegment(poly[i], poly[(i+1)%n])
		if !s.ClipDepth(near, far) {
			continue
		}
		c.depth = append(c.depth, s.P[0])
		if s.Moved[1] {
			c.depth = append(c.depth, s.P[1])
		}
	}
	if len(c.depth) < 3 {
		return c.depth[:0]
	}
	return c.depth
}

// ClipScreen clips a projected convex polygon against the screen square.
//
// Where the polygon leaves the square on one edge and re-enters it on
// another, the square's corners swept in between (following the polygon's
// winding) are inserted. A polygon that encloses the whole square yields the
// four corners.
func (c *Clipper) ClipScreen(poly []Vertex) []Vertex {
	c.screen = c.screen[:0]
	c.exits = c.exits[:0]
	n := len(poly)
	if n < 3 {
		return c.screen
	}

	for i := 0; i < n; i++ {
		s := NewSegment(poly[i], poly[(i+1)%n])
		if !s.ClipScreen() {
			continue
		}
		c.screen = append(c.screen, s.P[0])
		c.exits = append(c.exits, false)
		if s.Moved[1] {
			c.screen = append(c.screen, s.P[1])
			c.exits = append(c.exits, true)
		}
	}

	ccw := signedArea(poly) >= 0
	if len(c.screen) == 0 {
		if !contains(poly, geom.V2(0, 0)) {
			return c.screen
		}
		for _, s := range cornerOrder(ccw) {
			c.screen = append(c.screen, cornerVertex(poly, s))
		}
		return c.screen
	}

	c.out = c.out[:0]
	m := len(c.screen)
	for i := 0; i < m; i++ {
		c.out = append(c.out, c.screen[i])
		if !c.exits[i] {
			continue
		}
		next := c.screen[(i+1)%m]
		from, ok1 := perimeter(c.screen[i].Pos)
		to, ok2 := perimeter(next.Pos)
		if !ok1 || !ok2 {
			continue
		}
		for _, s := range sweptCorners(from, to, ccw) {
			c.out = append(c.out, cornerVertex(poly, s))
		}
	}
	if len(c.out) < 3 {
		return c.out[:0]
	}
	return c.out
}

// Triangulate appends the fan triangulation of an n-vertex convex polygon
// to dst: (0, i, i+1) for i in 1..n-2.
func Triangulate(dst [][3]int, n int) [][3]int {
	for i := 1; i+1 < n; i++ {
		dst = append(dst, [3]int{0, i, i + 1})
	}
	return dst
}

// Perimeter parameterization of the screen square, counter-clockwise in
// (x, z) starting at the bottom-left corner: bottom [0,2), right [2,4),
// top [4,6), left [6,8).
const perimeterLen = 8

var corners = [4]struct {
	s    float32
	x, z float32
}{
	{0, -1, -1},
	{2, 1, -1},
	{4, 1, 1},
	{6, -1, 1},
}

const boundaryTolerance = 1e-5

func perimeter(p geom.Vec3) (float32, bool) {
	x, z := p[axisX], p[axisZ]
	switch {
	case near(z, -1):
		return x + 1, true
	case near(x, 1):
		return 2 + (z + 1), true
	case near(z, 1):
		return 4 + (1 - x), true
	case near(x, -1):
		return 6 + (1 - z), true
	}
	return 0, false
}

func near(a, b float32) bool {
	d := a - b
	return d > -boundaryTolerance && d < boundaryTolerance
}

func wrap(d float32) float32 {
	for d < 0 {
		d += perimeterLen
	}
	for d >= perimeterLen {
		d -= perimeterLen
	}
	return d
}

// sweptCorners returns the perimeter positions of the corners strictly
// between from and to, walking counter-clockwise when ccw is set and
// clockwise otherwise, in walking order.
func sweptCorners(from, to float32, ccw bool) []float32 {
	dist := func(s float32) float32 {
		if ccw {
			return wrap(s - from)
		}
		return wrap(from - s)
	}
	span := dist(to)
	if span == 0 {
		return nil
	}

	var out []float32
	for _, c := range corners {
		if d := dist(c.s); d > 0 && d < span {
			out = append(out, c.s)
		}
	}
	// At most four entries; insertion sort by distance along the walk.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && dist(out[j]) < dist(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func cornerOrder(ccw bool) []float32 {
	if ccw {
		return []float32{0, 2, 4, 6}
	}
	return []float32{6, 4, 2, 0}
}

// cornerVertex builds the vertex at the screen corner with perimeter
// position s, interpolating depth and attributes over the fan triangle of
// poly that contains it.
func cornerVertex(poly []Vertex, s float32) Vertex {
	var x, z float32
	for _, c := range corners {
		if c.s == s {
			x, z = c.x, c.z
		}
	}
	p := geom.V2(x, z)

	best := -1
	var bestW [3]float32
	bestMin := float32(-1e30)
	for i := 1; i+1 < len(poly); i++ {
		w, ok := barycentric(poly[0].Pos, poly[i].Pos, poly[i+1].Pos, p)
		if !ok {
			continue
		}
		m := min(w[0], w[1], w[2])
		if m > bestMin {
			best, bestW, bestMin = i, w, m
		}
	}

	var v Vertex
	if best < 0 {
		v = poly[0]
	} else {
		a, b, c := poly[0], poly[best], poly[best+1]
		v = Vertex{
			Pos: a.Pos.Scale(bestW[0]).Add(b.Pos.Scale(bestW[1])).Add(c.Pos.Scale(bestW[2])),
			UV:  a.UV.Scale(bestW[0]).Add(b.UV.Scale(bestW[1])).Add(c.UV.Scale(bestW[2])),
			N:   a.N.Scale(bestW[0]).Add(b.N.Scale(bestW[1])).Add(c.N.Scale(bestW[2])),
		}
	}
	v.Pos[axisX] = x
	v.Pos[axisZ] = z
	return v
}

// barycentric returns the weights of p in the (x, z) triangle abc.
func barycentric(a, b, c geom.Vec3, p geom.Vec2) ([3]float32, bool) {
	pa := geom.V2(a[axisX], a[axisZ])
	pb := geom.V2(b[axisX], b[axisZ])
	pc := geom.V2(c[axisX], c[axisZ])
	area := pb.Sub(pa).Cross(pc.Sub(pa))
	if area == 0 {
		return [3]float32{}, false
	}
	w0 := pc.Sub(pb).Cross(p.Sub(pb)) / area
	w1 := pa.Sub(pc).Cross(p.Sub(pc)) / area
	return [3]float32{w0, w1, 1 - w0 - w1}, true
}

func contains(poly []Vertex, p geom.Vec2) bool {
	for i := 1; i+1 < len(poly); i++ {
		w, ok := barycentric(poly[0].Pos, poly[i].Pos, poly[i+1].Pos, p)
		if ok && w[0] >= 0 && w[1] >= 0 && w[2] >= 0 {
			return true
		}
	}
	return false
}

// signedArea returns twice the signed (x, z) area of poly; positive for
// counter-clockwise winding.
func signedArea(poly []Vertex) float32 {
	var a float32
	for i := range poly {
		p := poly[i].Pos
		q := poly[(i+1)%len(poly)].Pos
		a += p[axisX]*q[axisZ] - q[axisX]*p[axisZ]
	}
	return a
}
