// Command soft3d-view shows a spinning mesh in a window.
//
// Rendering runs on its own goroutine into a back buffer that is swapped
// with the displayed one when complete. Keys: W toggles wireframe, Space
// pauses the spin, S toggles statistics, Escape quits.
package main

import (
	"context"
	"flag"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/soft3d"
	"github.com/gogpu/soft3d/internal/demo"
	"github.com/gogpu/soft3d/overlay"
)

func main() {
	var cfg demo.Config
	cfg.RegisterFlags(flag.CommandLine)
	var (
		zoom  = flag.Int("zoom", 2, "window size as a multiple of the render size")
		speed = flag.Float64("speed", 1, "spin speed in radians per second")
	)
	flag.Parse()
	demo.SetupLogging(cfg.Verbose)

	scene, err := cfg.Build()
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	v := newViewer(scene, float32(*speed))
	v.wireframe.Store(cfg.Wireframe)
	v.stats.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		v.renderLoop(ctx)
	}()

	ebiten.SetWindowTitle("soft3d - " + cfg.Mesh)
	ebiten.SetWindowSize(cfg.Width**zoom, cfg.Height**zoom)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err = ebiten.RunGame(v)
	cancel()
	<-done
	if err != nil {
		log.Fatal(err)
	}
}

// viewer is the ebiten game. The render goroutine owns scene and back;
// front is shared under mu.
type viewer struct {
	scene *demo.Scene
	speed float32

	mu    sync.Mutex
	front *soft3d.Target
	fresh bool

	wireframe atomic.Bool
	paused    atomic.Bool
	stats     atomic.Bool

	pix []byte
	img *ebiten.Image
}

func newViewer(s *demo.Scene, speed float32) *viewer {
	w, h := s.Camera.Width(), s.Camera.Height()
	return &viewer{
		scene: s,
		speed: speed,
		front: soft3d.NewTarget(w, h),
		pix:   make([]byte, 4*w*h),
	}
}

func (v *viewer) renderLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := time.Now()
	for {
		var now time.Time
		select {
		case <-ctx.Done():
			return
		case now = <-ticker.C:
		}
		dt := float32(now.Sub(last).Seconds())
		last = now

		if !v.paused.Load() {
			v.scene.Spin(v.speed * dt)
		}
		if v.wireframe.Load() {
			v.scene.Drawable.Mode = soft3d.ModeWireframe
		} else {
			v.scene.Drawable.Mode = soft3d.ModeFill
		}

		start := time.Now()
		if err := v.scene.Render(); err != nil {
			soft3d.Logger().Error("render failed", "err", err)
			return
		}
		if v.stats.Load() {
			overlay.Draw(v.scene.Target, overlay.StatsLines(v.scene.Frame.Stats(), time.Since(start))...)
		}

		v.mu.Lock()
		v.front, v.scene.Target = v.scene.Target, v.front
		v.fresh = true
		v.mu.Unlock()
	}
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		v.wireframe.Store(!v.wireframe.Load())
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused.Store(!v.paused.Load())
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.stats.Store(!v.stats.Load())
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.img == nil {
		v.img = ebiten.NewImage(v.scene.Camera.Width(), v.scene.Camera.Height())
	}

	v.mu.Lock()
	if v.fresh {
		v.front.CopyRGBA(v.pix)
		v.fresh = false
		v.mu.Unlock()
		v.img.WritePixels(v.pix)
	} else {
		v.mu.Unlock()
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.scene.Camera.Width(), v.scene.Camera.Height()
}
