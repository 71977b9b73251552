// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/soft3d/geom"
)

// BBoxPadding is the number of pixels the scan box of a triangle is grown
// by on every side before clamping to the target.
const BBoxPadding = 5

// Rasterizer scans triangles and lines over a width x height pixel grid.
type Rasterizer struct {
	width  int
	height int
	frag   Fragment
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{width: width, height: height}
}

// Resize changes the pixel grid.
func (r *Rasterizer) Resize(width, height int) {
	r.width, r.height = width, height
}

// Width returns the grid width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the grid height.
func (r *Rasterizer) Height() int { return r.height }

// Fill scans t and calls fn for every covered pixel center that passes
// the depth test. A nil depth buffer disables the test.
//
// The Fragment passed to fn is reused between calls.
// Fill returns the number of covered samples and the number that passed
// the depth test. Degenerate triangles cover nothing.
func (r *Rasterizer) Fill(t *Triangle, depth *DepthBuffer, fn func(f *Fragment)) (covered, passed int) {
	if t.Area() == 0 {
		return 0, 0
	}
	x0, y0, x1, y1, ok := r.bounds(t)
	if !ok {
		return 0, 0
	}

	f := &r.frag
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			w, inside := t.Barycentric(geom.V2(float32(x)+0.5, float32(y)+0.5))
			if !inside {
				continue
			}
			covered++
			t.interpolate(f, w)
			if depth != nil && !depth.Test(x, y, f.Depth) {
				continue
			}
			passed++
			f.X, f.Y = x, y
			fn(f)
		}
	}
	return covered, passed
}

// bounds returns the padded, clamped pixel box of t.
func (r *Rasterizer) bounds(t *Triangle) (x0, y0, x1, y1 int, ok bool) {
	minX := min(t.P[0].X(), t.P[1].X(), t.P[2].X())
	maxX := max(t.P[0].X(), t.P[1].X(), t.P[2].X())
	minY := min(t.P[0].Y(), t.P[1].Y(), t.P[2].Y())
	maxY := max(t.P[0].Y(), t.P[1].Y(), t.P[2].Y())

	x0 = clampInt(int(math.Floor(float64(minX)))-BBoxPadding, 0, r.width-1)
	x1 = clampInt(int(math.Ceil(float64(maxX)))+BBoxPadding, 0, r.width-1)
	y0 = clampInt(int(math.Floor(float64(minY)))-BBoxPadding, 0, r.height-1)
	y1 = clampInt(int(math.Ceil(float64(maxY)))+BBoxPadding, 0, r.height-1)
	return x0, y0, x1, y1, r.width > 0 && r.height > 0 && x0 <= x1 && y0 <= y1
}

// Line walks the segment a-b with a DDA, one sample per step along the
// major axis, and calls fn for every in-bounds sample passing the depth
// test. Depth is interpolated linearly from za to zb. It returns the number
// of samples passed to fn.
func (r *Rasterizer) Line(a, b geom.Vec2, za, zb float32, depth *DepthBuffer, fn func(x, y int, z float32)) int {
	d := b.Sub(a)
	steps := int(math.Ceil(float64(max(abs32(d.X()), abs32(d.Y())))))
	if steps == 0 {
		steps = 1
	}

	n := 0
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		p := a.Lerp(b, t)
		x := int(math.Floor(float64(p.X())))
		y := int(math.Floor(float64(p.Y())))
		if x < 0 || x >= r.width || y < 0 || y >= r.height {
			continue
		}
		z := za + (zb-za)*t
		if depth != nil && !depth.Test(x, y, z) {
			continue
		}
		n++
		fn(x, y, z)
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
