package overlay

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/soft3d"
)

var printer = message.NewPrinter(language.English)

// StatsLines formats render statistics and the frame time for Draw.
// Counts use digit grouping.
func StatsLines(s soft3d.Stats, elapsed time.Duration) []string {
	fps := 0.0
	if elapsed > 0 {
		fps = float64(time.Second) / float64(elapsed)
	}
	return []string{
		printer.Sprintf("frame %.1f ms (%.0f fps)", float64(elapsed)/float64(time.Millisecond), fps),
		printer.Sprintf("faces %d culled %d clipped %d", s.Faces, s.Culled, s.Clipped),
		printer.Sprintf("triangles %d lines %d", s.Triangles, s.Lines),
		printer.Sprintf("fragments %d pixels %d", s.Fragments, s.Pixels),
	}
}
