package overlay

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/soft3d"
)

func TestStatsLines(t *testing.T) {
	lines := StatsLines(soft3d.Stats{Faces: 12345, Culled: 2, Fragments: 1000000, Pixels: 999}, 20*time.Millisecond)
	want := []string{
		"frame 20.0 ms (50 fps)",
		"faces 12,345 culled 2 clipped 0",
		"triangles 0 lines 0",
		"fragments 1,000,000 pixels 999",
	}
	if len(lines) != len(want) {
		t.Fatalf("len(StatsLines()) = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("StatsLines()[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestStatsLinesZeroElapsed(t *testing.T) {
	if got := StatsLines(soft3d.Stats{}, 0)[0]; got != "frame 0.0 ms (0 fps)" {
		t.Errorf("StatsLines()[0] = %q", got)
	}
}

func TestDraw(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 40))
	Draw(img, "hello")

	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("margin pixel = %v, want untouched", got)
	}
	if got := img.NRGBAAt(Margin, Margin); got.A == 0 {
		t.Error("backdrop not drawn")
	}

	// The backdrop is black; antialiased glyph coverage lightens it.
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if c := img.NRGBAAt(x, y); c.R > 128 && c.R == c.G && c.G == c.B {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no text pixels drawn")
	}
	if got := img.NRGBAAt(119, 39); got != (color.NRGBA{}) {
		t.Errorf("pixel outside backdrop = %v, want untouched", got)
	}
}

// backdropWidth returns the number of backdrop pixels on row Margin.
func backdropWidth(img *image.NRGBA) int {
	n := 0
	for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
		if img.NRGBAAt(x, Margin).A != 0 {
			n++
		}
	}
	return n
}

func TestDrawBackdropFollowsShapedWidth(t *testing.T) {
	tests := []struct {
		short, long string
	}{
		{"i", "iiii"},
		{"hi", "hello world"},
		{"", "x"},
	}
	for _, tt := range tests {
		a := image.NewNRGBA(image.Rect(0, 0, 200, 40))
		b := image.NewNRGBA(image.Rect(0, 0, 200, 40))
		Draw(a, tt.short)
		Draw(b, tt.long)
		if wa, wb := backdropWidth(a), backdropWidth(b); wa >= wb {
			t.Errorf("backdrop width %q = %d, %q = %d, want the second wider", tt.short, wa, tt.long, wb)
		}
	}
}

func TestDrawLineSpacing(t *testing.T) {
	one := image.NewNRGBA(image.Rect(0, 0, 60, 100))
	two := image.NewNRGBA(image.Rect(0, 0, 60, 100))
	Draw(one, "x")
	Draw(two, "x", "x")

	height := func(img *image.NRGBA) int {
		n := 0
		for y := 0; y < 100; y++ {
			if img.NRGBAAt(Margin, y).A != 0 {
				n++
			}
		}
		return n
	}
	h1, h2 := height(one), height(two)
	if lh := h2 - h1; lh < Size || lh > 2*Size {
		t.Errorf("line height = %d, want within [%d, %d]", lh, Size, 2*Size)
	}
}

func TestDrawOnTarget(t *testing.T) {
	tg := soft3d.NewTarget(64, 32)
	Draw(tg, "x")
	if tg.ARGB(Margin, Margin) == 0 {
		t.Error("Draw() did not reach the target")
	}
}

func TestDrawNoLines(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	Draw(img)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, v)
		}
	}
}
