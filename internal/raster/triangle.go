// Package raster rasterizes screen-space triangles and lines into a
// depth-tested pixel grid.
//
// Coordinates are pixels with the origin at the top-left corner. Samples
// are taken at pixel centers. Depth and attributes are interpolated
// linearly in screen space.
package raster

import "github.com/gogpu/soft3d/geom"

// Triangle is a screen-space triangle with per-vertex depth and
// attributes. Either winding is accepted.
type Triangle struct {
	P  [3]geom.Vec2
	Z  [3]float32
	UV [3]geom.Vec2
	N  [3]geom.Vec3
}

// Fragment is one covered sample of a Triangle.
type Fragment struct {
	X, Y  int
	Depth float32
	UV    geom.Vec2
	N     geom.Vec3

	// W holds the barycentric weights of the sample.
	W [3]float32
}

// edge is the edge function of p relative to the directed edge a->b:
// twice the signed area of the triangle (a, b, p).
func edge(a, b, p geom.Vec2) float32 {
	return b.Sub(a).Cross(p.Sub(a))
}

// Area returns twice the signed area of t. It is positive for
// counter-clockwise vertices in a y-up frame.
func (t *Triangle) Area() float32 {
	return edge(t.P[0], t.P[1], t.P[2])
}

// Barycentric returns the weights of p with respect to t, normalized by
// the triangle's area so they sum to one. p is inside when all three
// weights are non-negative, which holds for either winding. A degenerate
// triangle has no interior.
func (t *Triangle) Barycentric(p geom.Vec2) (w [3]float32, inside bool) {
	area := t.Area()
	if area == 0 {
		return w, false
	}
	w[0] = edge(t.P[1], t.P[2], p) / area
	w[1] = edge(t.P[2], t.P[0], p) / area
	w[2] = edge(t.P[0], t.P[1], p) / area
	return w, w[0] >= 0 && w[1] >= 0 && w[2] >= 0
}

// interpolate fills the depth and attributes of f from weights w.
func (t *Triangle) interpolate(f *Fragment, w [3]float32) {
	f.W = w
	f.Depth = w[0]*t.Z[0] + w[1]*t.Z[1] + w[2]*t.Z[2]
	f.UV = t.UV[0].Scale(w[0]).Add(t.UV[1].Scale(w[1])).Add(t.UV[2].Scale(w[2]))
	f.N = t.N[0].Scale(w[0]).Add(t.N[1].Scale(w[1])).Add(t.N[2].Scale(w[2]))
}
