// Command soft3d-serve renders a spinning mesh and streams the frames to
// browsers over a websocket.
//
//	soft3d-serve -addr :8080 -mesh sphere -fps 15
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/soft3d/internal/demo"
	"github.com/gogpu/soft3d/overlay"
	"github.com/gogpu/soft3d/stream"
)

func main() {
	var cfg demo.Config
	cfg.RegisterFlags(flag.CommandLine)
	var (
		addr  = flag.String("addr", ":8080", "listen address")
		fps   = flag.Int("fps", 15, "frames per second")
		speed = flag.Float64("speed", 1, "spin speed in radians per second")
		stats = flag.Bool("stats", true, "draw render statistics onto frames")
	)
	flag.Parse()
	demo.SetupLogging(cfg.Verbose)
	if *fps <= 0 {
		log.Fatalf("fps must be positive, got %d", *fps)
	}

	scene, err := cfg.Build()
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	hub := stream.NewHub()
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.Handle("/ws", hub)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go publish(ctx, scene, hub, time.Second/time.Duration(*fps), float32(*speed), *stats)

	go func() {
		<-ctx.Done()
		_ = hub.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Printf("serving %s on http://localhost%s", cfg.Mesh, *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// publish renders a frame every interval and hands it to the hub.
func publish(ctx context.Context, scene *demo.Scene, hub *stream.Hub, interval time.Duration, speed float32, stats bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		scene.Spin(speed * float32(interval.Seconds()))
		start := time.Now()
		if err := scene.Render(); err != nil {
			log.Printf("render: %v", err)
			return
		}
		if stats {
			overlay.Draw(scene.Target, overlay.StatsLines(scene.Frame.Stats(), time.Since(start))...)
		}
		if hub.Clients() == 0 {
			continue
		}
		if err := hub.Publish(scene.Target); err != nil {
			if !errors.Is(err, stream.ErrClosed) {
				log.Printf("publish: %v", err)
			}
			return
		}
	}
}

const index = `<!DOCTYPE html>
<html>
<head><title>soft3d</title></head>
<body style="margin:0;background:#14171f">
<img id="frame" style="image-rendering:pixelated;width:100vmin">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body>
</html>
`

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(index))
}
