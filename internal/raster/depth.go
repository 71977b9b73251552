// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/gputypes"
)

// DepthBuffer stores one camera-space depth per pixel, row-major.
//
// A cleared buffer holds +Inf everywhere, so the first fragment at each
// pixel passes a Less test.
type DepthBuffer struct {
	width   int
	height  int
	data    []float32
	compare gputypes.CompareFunction
}

// NewDepthBuffer returns a cleared width x height buffer using
// CompareFunctionLess.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{compare: gputypes.CompareFunctionLess}
	d.Reset(width, height)
	return d
}

// Reset resizes the buffer and clears it. Storage is reused when the
// size is unchanged.
func (d *DepthBuffer) Reset(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := width * height
	if cap(d.data) < n {
		d.data = make([]float32, n)
	}
	d.data = d.data[:n]
	d.width, d.height = width, height
	d.Clear()
}

// Clear fills the buffer with +Inf using copy doubling.
func (d *DepthBuffer) Clear() {
	n := len(d.data)
	if n == 0 {
		return
	}
	d.data[0] = float32(math.Inf(1))
	for i := 1; i < n; i *= 2 {
		copy(d.data[i:], d.data[:i])
	}
}

// Width returns the buffer width in pixels.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height in pixels.
func (d *DepthBuffer) Height() int { return d.height }

// Compare returns the depth comparison in use.
func (d *DepthBuffer) Compare() gputypes.CompareFunction { return d.compare }

// SetCompare sets the depth comparison. CompareFunctionUndefined selects
// CompareFunctionLess.
func (d *DepthBuffer) SetCompare(f gputypes.CompareFunction) {
	if f == gputypes.CompareFunctionUndefined {
		f = gputypes.CompareFunctionLess
	}
	d.compare = f
}

// At returns the stored depth at (x, y), or +Inf outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return float32(math.Inf(1))
	}
	return d.data[y*d.width+x]
}

// Test compares z against the stored depth at (x, y) and stores z when
// the comparison passes. Pixels outside the buffer always fail.
func (d *DepthBuffer) Test(x, y int, z float32) bool {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return false
	}
	i := y*d.width + x
	if !compare(d.compare, z, d.data[i]) {
		return false
	}
	d.data[i] = z
	return true
}

func compare(f gputypes.CompareFunction, src, dst float32) bool {
	switch f {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionEqual:
		return src == dst
	case gputypes.CompareFunctionLessEqual:
		return src <= dst
	case gputypes.CompareFunctionGreater:
		return src > dst
	case gputypes.CompareFunctionNotEqual:
		return src != dst
	case gputypes.CompareFunctionGreaterEqual:
		return src >= dst
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return src < dst
	}
}
