// Package clip clips line segments and convex polygons against the camera's
// depth range and the normalized screen square.
//
// Positions use the camera convention: X right, Y depth, Z up. Before
// projection a position is in camera space; after projection X and Z are
// normalized screen coordinates in [-1, 1] and Y still carries the camera
// depth.
package clip

import "github.com/gogpu/soft3d/geom"

// Vertex is a clip-space vertex. UV and N ride along with the position and
// are interpolated with the same parameter whenever the vertex is moved.
type Vertex struct {
	Pos geom.Vec3
	UV  geom.Vec2
	N   geom.Vec3
}

// Lerp interpolates every field of v towards o.
func (v Vertex) Lerp(o Vertex, t float32) Vertex {
	return Vertex{
		Pos: v.Pos.Lerp(o.Pos, t),
		UV:  v.UV.Lerp(o.UV, t),
		N:   v.N.Lerp(o.N, t),
	}
}

// Segment is a pair of endpoints being clipped in place.
// Moved records which endpoints were replaced by a boundary intersection;
// the flags accumulate across clip calls.
type Segment struct {
	P     [2]Vertex
	Moved [2]bool
}

// NewSegment returns the unclipped segment a-b.
func NewSegment(a, b Vertex) Segment {
	return Segment{P: [2]Vertex{a, b}}
}

const (
	axisX = 0
	axisY = 1
	axisZ = 2
)

// ClipDepth clips s against the planes y = near and y = far.
//
// It reports false, leaving s untouched, when both endpoints are beyond far
// or both are nearer than near. Otherwise every endpoint outside the range
// is moved to the plane it crosses.
func (s *Segment) ClipDepth(near, far float32) bool {
	y0, y1 := s.P[0].Pos[axisY], s.P[1].Pos[axisY]
	if (y0 > far && y1 > far) || (y0 < near && y1 < near) {
		return false
	}
	s.clipAxis(axisY, far, true)
	s.clipAxis(axisY, near, false)
	return true
}

// Outcode bits for the screen square, as in Cohen-Sutherland.
const (
	outcodeInside = 0
	outcodeLeft   = 1
	outcodeRight  = 2
	outcodeBottom = 4
	outcodeTop    = 8
)

func outcode(p geom.Vec3) int {
	code := outcodeInside
	if p[axisX] < -1 {
		code |= outcodeLeft
	} else if p[axisX] > 1 {
		code |= outcodeRight
	}
	if p[axisZ] < -1 {
		code |= outcodeBottom
	} else if p[axisZ] > 1 {
		code |= outcodeTop
	}
	return code
}

// ClipScreen clips s against the normalized screen square |x| <= 1,
// |z| <= 1.
//
// It reports false when the segment lies entirely outside one side of the
// square. The x bounds are clipped first, then the z bounds; depth and
// attributes are interpolated linearly in screen space.
func (s *Segment) ClipScreen() bool {
	code0 := outcode(s.P[0].Pos)
	code1 := outcode(s.P[1].Pos)
	if code0|code1 == 0 {
		return true
	}
	if code0&code1 != 0 {
		return false
	}

	s.clipAxis(axisX, 1, true)
	s.clipAxis(axisX, -1, false)

	// Clipping x may have revealed that both points are above or below.
	code0 = outcode(s.P[0].Pos)
	code1 = outcode(s.P[1].Pos)
	if code0&code1 != 0 {
		return false
	}

	s.clipAxis(axisZ, 1, true)
	s.clipAxis(axisZ, -1, false)
	return true
}

// clipAxis moves the endpoint lying beyond bound on the given axis onto it.
// With above set, "beyond" means greater than bound; otherwise less.
// Nothing happens unless exactly one endpoint is beyond.
func (s *Segment) clipAxis(axis int, bound float32, above bool) {
	a, b := s.P[0], s.P[1]
	aOut := beyond(a.Pos[axis], bound, above)
	bOut := beyond(b.Pos[axis], bound, above)
	if aOut == bOut {
		return
	}

	t := (bound - a.Pos[axis]) / (b.Pos[axis] - a.Pos[axis])
	p := a.Lerp(b, t)
	p.Pos[axis] = bound
	if aOut {
		s.P[0] = p
		s.Moved[0] = true
	} else {
		s.P[1] = p
		s.Moved[1] = true
	}
}

func beyond(v, bound float32, above bool) bool {
	if above {
		return v > bound
	}
	return v < bound
}
