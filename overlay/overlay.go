// Package overlay draws short text lines, such as frame statistics, over a
// rendered image. Text is shaped with HarfBuzz and set in Go Regular.
package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/soft3d"
)

// Margin is the gap in pixels between the image edge, the backdrop and
// the text.
const Margin = 4

// Size is the text size in pixels per em.
const Size = 12

var (
	// Foreground is the text color.
	Foreground color.Color = color.White
	// Backdrop is drawn under the text to keep it readable.
	Backdrop color.Color = color.NRGBA{A: 160}
)

// textShaper shapes single lines of Go Regular. The parsed font is shared;
// faces and HarfBuzz shapers are not safe for concurrent use, so each call
// gets its own face and a pooled shaper.
type textShaper struct {
	font *font.Font
	pool sync.Pool
}

var loadShaper = sync.OnceValues(func() (*textShaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &textShaper{
		font: face.Font,
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
})

func (s *textShaper) shape(line string) shaping.Output {
	runes := []rune(line)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(s.font),
		Size:      fixed.I(Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)
	return out
}

// metrics returns the ascent and line height in whole pixels.
func (s *textShaper) metrics() (ascent, lineHeight int) {
	scale := float32(Size) / float32(s.font.Upem())
	ext, ok := font.NewFace(s.font).FontHExtents()
	if !ok {
		return Size, Size + Size/4
	}
	ascent = ceil(ext.Ascender * scale)
	lineHeight = ceil((ext.Ascender - ext.Descender + ext.LineGap) * scale)
	return ascent, lineHeight
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// Draw writes lines into the top-left corner of dst over a translucent
// backdrop. Lines that do not fit are clipped by dst's bounds.
func Draw(dst draw.Image, lines ...string) {
	if len(lines) == 0 {
		return
	}
	s, err := loadShaper()
	if err != nil {
		soft3d.Logger().Warn("overlay: font unavailable", "err", err)
		return
	}
	ascent, lineHeight := s.metrics()

	runs := make([]shaping.Output, len(lines))
	width := 0
	for i, l := range lines {
		if l == "" {
			continue
		}
		runs[i] = s.shape(l)
		if w := runs[i].Advance.Ceil(); w > width {
			width = w
		}
	}

	origin := dst.Bounds().Min.Add(image.Pt(Margin, Margin))
	box := image.Rectangle{
		Min: origin,
		Max: origin.Add(image.Pt(width+2*Margin, len(lines)*lineHeight+2*Margin)),
	}
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	draw.Draw(dst, clip, image.NewUniform(Backdrop), image.Point{}, draw.Over)

	// Rasterizer coordinates are relative to clip.Min, which equals origin.
	z := vector.NewRasterizer(clip.Dx(), clip.Dy())
	for i := range runs {
		if runs[i].Face == nil {
			continue
		}
		baseline := float32(Margin + i*lineHeight + ascent)
		fillRun(z, &runs[i], Margin, baseline)
	}
	z.Draw(dst, clip, image.NewUniform(Foreground), image.Point{})
}

// fillRun adds the outlines of the glyphs in out to z, starting at the pen
// position (x, baseline). Glyphs without outlines are skipped.
func fillRun(z *vector.Rasterizer, out *shaping.Output, x, baseline float32) {
	scale := float32(out.Size) / 64 / float32(out.Face.Upem())
	pen := x
	for _, g := range out.Glyphs {
		outline, ok := out.Face.GlyphData(g.GlyphID).(font.GlyphOutline)
		if ok {
			gx := pen + fixedToFloat(g.XOffset)
			gy := baseline - fixedToFloat(g.YOffset)
			fillOutline(z, outline, gx, gy, scale)
		}
		pen += fixedToFloat(g.Advance)
	}
}

func fillOutline(z *vector.Rasterizer, o font.GlyphOutline, x, y, scale float32) {
	pt := func(p font.SegmentPoint) (float32, float32) {
		return x + p.X*scale, y - p.Y*scale
	}
	open := false
	for _, seg := range o.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			z.LineTo(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

func ceil(v float32) int {
	i := int(v)
	if float32(i) < v {
		i++
	}
	return i
}
