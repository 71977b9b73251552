// Package stream broadcasts rendered frames to websocket clients.
//
// Each frame is sent as one binary message holding a PNG image. A client
// that connects receives the most recent frame right away.
package stream

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/soft3d"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("stream: hub closed")

// WriteTimeout bounds a single frame write to one client.
const WriteTimeout = 5 * time.Second

// Hub is an http.Handler that upgrades requests to websocket connections
// and fans published frames out to all of them.
type Hub struct {
	upgrader websocket.Upgrader
	encoder  png.Encoder

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	last    []byte
	closed  bool
}

// client is a connection and the mutex serializing writes to it.
type client struct {
	conn *websocket.Conn
	mu   *sync.Mutex
}

// NewHub returns a hub with no clients. Any origin may connect.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		soft3d.Logger().Warn("stream: upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	connMu := &sync.Mutex{}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.clients[conn] = connMu
	last := h.last
	h.mu.Unlock()
	defer h.remove(conn)

	soft3d.Logger().Debug("stream: client connected", "remote", r.RemoteAddr)
	if last != nil {
		connMu.Lock()
		err := write(conn, last)
		connMu.Unlock()
		if err != nil {
			return
		}
	}

	// Incoming messages are ignored; reading drives ping and close handling.
	for {
		if _, _, err := conn.NextReader(); err != nil {
			soft3d.Logger().Debug("stream: client gone", "remote", r.RemoteAddr, "err", err)
			return
		}
	}
}

// Publish encodes img as PNG and sends it to every client. Clients whose
// write fails are dropped.
func (h *Hub) Publish(img image.Image) error {
	var buf bytes.Buffer
	if err := h.encoder.Encode(&buf, img); err != nil {
		return err
	}
	frame := buf.Bytes()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.last = frame
	targets := make([]client, 0, len(h.clients))
	for conn, connMu := range h.clients {
		targets = append(targets, client{conn: conn, mu: connMu})
	}
	h.mu.Unlock()

	// Writes happen outside h.mu so a slow client cannot stall registration.
	var failed []*websocket.Conn
	for _, c := range targets {
		c.mu.Lock()
		err := write(c.conn, frame)
		c.mu.Unlock()
		if err != nil {
			soft3d.Logger().Debug("stream: write failed", "remote", c.conn.RemoteAddr(), "err", err)
			failed = append(failed, c.conn)
		}
	}

	for _, conn := range failed {
		_ = conn.Close()
		h.remove(conn)
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients. Later Publish calls return ErrClosed.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	clients := h.clients
	h.clients = make(map[*websocket.Conn]*sync.Mutex)
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "hub closed")
	for conn, connMu := range clients {
		connMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
		connMu.Unlock()
	}
	return nil
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func write(conn *websocket.Conn, frame []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}
