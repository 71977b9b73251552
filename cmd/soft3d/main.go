// Command soft3d renders a mesh to a PNG file.
//
//	soft3d -mesh sphere -shader smooth -o sphere.png
//	soft3d -mesh model.obj -wireframe -scale 2 -stats
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/soft3d/internal/demo"
	"github.com/gogpu/soft3d/overlay"
)

func main() {
	var cfg demo.Config
	cfg.RegisterFlags(flag.CommandLine)
	var (
		output = flag.String("o", "soft3d.png", "output file")
		scale  = flag.Int("scale", 1, "integer upscale factor for the saved image")
		angle  = flag.Float64("angle", 30, "spin about the object's Z axis in degrees")
		stats  = flag.Bool("stats", false, "draw render statistics onto the image")
	)
	flag.Parse()
	demo.SetupLogging(cfg.Verbose)

	scene, err := cfg.Build()
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	scene.Spin(float32(*angle * math.Pi / 180))

	start := time.Now()
	if err := scene.Render(); err != nil {
		log.Fatalf("render: %v", err)
	}
	elapsed := time.Since(start)

	var img xdraw.Image = scene.Target
	if *scale > 1 {
		b := scene.Target.Bounds()
		up := image.NewNRGBA(image.Rect(0, 0, b.Dx()**scale, b.Dy()**scale))
		xdraw.NearestNeighbor.Scale(up, up.Bounds(), scene.Target, b, xdraw.Src, nil)
		img = up
	}
	if *stats {
		overlay.Draw(img, overlay.StatsLines(scene.Frame.Stats(), elapsed)...)
	}

	if err := save(*output, img); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("rendered %s (%dx%d) in %v", *output, img.Bounds().Dx(), img.Bounds().Dy(), elapsed)
}

func save(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
