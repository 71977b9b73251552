package soft3d

import (
	"log/slog"

	"github.com/gogpu/soft3d/internal/clip"
	"github.com/gogpu/soft3d/internal/raster"
)

// Stats counts the work done by one Render call.
type Stats struct {
	// Drawables is the number of visible drawables rendered.
	Drawables int
	// Faces is the number of mesh faces considered.
	Faces int
	// Culled faces were skipped by the cull mode.
	Culled int
	// Clipped faces were entirely outside the depth range or the screen.
	Clipped int
	// Triangles is the number of screen triangles scanned after clipping.
	Triangles int
	// Degenerate screen triangles had zero area and were skipped.
	Degenerate int
	// Fragments is the number of covered pixel samples.
	Fragments int
	// Pixels is the number of samples that passed the depth test and were
	// written.
	Pixels int
	// Lines is the number of wireframe edges drawn.
	Lines int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("drawables", s.Drawables),
		slog.Int("faces", s.Faces),
		slog.Int("culled", s.Culled),
		slog.Int("clipped", s.Clipped),
		slog.Int("triangles", s.Triangles),
		slog.Int("degenerate", s.Degenerate),
		slog.Int("fragments", s.Fragments),
		slog.Int("pixels", s.Pixels),
		slog.Int("lines", s.Lines),
	)
}

// Frame is the scratch state of a render: the depth buffer, clipping
// buffers and statistics. Reusing a Frame across renders avoids
// per-frame allocation; the depth buffer is reallocated only when the
// resolution changes.
//
// A Frame is not safe for concurrent use. Renders that run in parallel
// need a Frame each.
type Frame struct {
	depth   *raster.DepthBuffer
	raster  *raster.Rasterizer
	clipper clip.Clipper
	tri     [3]clip.Vertex
	fan     [][3]int
	screen  raster.Triangle
	vertex  Vertex
	frag    Fragment
	stats   Stats
}

// NewFrame returns an empty frame. Buffers are sized by the first render.
func NewFrame() *Frame {
	return &Frame{
		depth:  raster.NewDepthBuffer(0, 0),
		raster: raster.NewRasterizer(0, 0),
	}
}

// Stats returns the statistics of the last render.
func (f *Frame) Stats() Stats { return f.stats }

// Depth returns the depth stored at (x, y) by the last render, or +Inf
// where nothing was drawn.
func (f *Frame) Depth(x, y int) float32 { return f.depth.At(x, y) }

// begin prepares the frame for rendering through c.
func (f *Frame) begin(c *Camera) {
	if f.depth.Width() != c.width || f.depth.Height() != c.height {
		Logger().Debug("soft3d: depth buffer resized",
			"width", c.width, "height", c.height)
		f.raster.Resize(c.width, c.height)
	}
	f.depth.Reset(c.width, c.height)
	f.depth.SetCompare(c.compare)
	f.stats = Stats{}
}
