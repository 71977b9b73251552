package soft3d

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gputypes"
)

// Surface is the destination of a render: a width x height grid of
// 0xAARRGGBB pixels. Render writes only inside [0,Width) x [0,Height).
type Surface interface {
	Width() int
	Height() int
	SetARGB(x, y int, c uint32)
}

// Target is a CPU-backed Surface storing one 0xAARRGGBB word per pixel,
// row-major. It implements image.Image and draw.Image.
type Target struct {
	width  int
	height int
	pix    []uint32
}

var (
	_ Surface     = (*Target)(nil)
	_ image.Image = (*Target)(nil)
)

// NewTarget creates a transparent black target.
func NewTarget(width, height int) *Target {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Target{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Format reports the in-memory byte order of a pixel: a little-endian
// 0xAARRGGBB word is laid out B, G, R, A.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Pix returns the pixel words. The slice is shared with the target.
func (t *Target) Pix() []uint32 { return t.pix }

// SetARGB stores a packed pixel. Out-of-range writes are ignored.
func (t *Target) SetARGB(x, y int, c uint32) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.pix[y*t.width+x] = c
}

// ARGB returns the packed pixel at (x, y), or 0 outside the target.
func (t *Target) ARGB(x, y int) uint32 {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return 0
	}
	return t.pix[y*t.width+x]
}

// Clear fills the whole target with c.
func (t *Target) Clear(c Color) {
	v := c.ARGB()
	if len(t.pix) == 0 {
		return
	}
	t.pix[0] = v
	for i := 1; i < len(t.pix); i *= 2 {
		copy(t.pix[i:], t.pix[:i])
	}
}

// CopyFrom copies the pixels of a target of the same size.
func (t *Target) CopyFrom(src *Target) {
	copy(t.pix, src.pix)
}

// ColorModel implements image.Image.
func (t *Target) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (t *Target) Bounds() image.Rectangle { return image.Rect(0, 0, t.width, t.height) }

// At implements image.Image.
func (t *Target) At(x, y int) color.Color {
	v := t.ARGB(x, y)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// Set implements draw.Image.
func (t *Target) Set(x, y int, c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	t.SetARGB(x, y, uint32(nc.A)<<24|uint32(nc.R)<<16|uint32(nc.G)<<8|uint32(nc.B))
}

// CopyRGBA writes the pixels to dst as non-premultiplied R, G, B, A bytes.
// dst must hold at least 4*Width*Height bytes.
func (t *Target) CopyRGBA(dst []byte) {
	for i, v := range t.pix {
		j := i * 4
		dst[j+0] = uint8(v >> 16)
		dst[j+1] = uint8(v >> 8)
		dst[j+2] = uint8(v)
		dst[j+3] = uint8(v >> 24)
	}
}

// ToImage converts the target to an image.NRGBA.
func (t *Target) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	t.CopyRGBA(img.Pix)
	return img
}

// EncodePNG writes the target as a PNG image.
func (t *Target) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.ToImage())
}

// SavePNG saves the target to a PNG file.
func (t *Target) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := t.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
