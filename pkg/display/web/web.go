// Package web provides a display driver that streams frames to a
// browser over a websocket. Frames are brotli-compressed before
// broadcast, and a small hash-keyed cache suppresses resending
// frames the clients have already seen.
package web

import (
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/eastgate/dotmatrix/pkg/display"
	"github.com/eastgate/dotmatrix/pkg/log"
)

func init() {
	w := &Web{
		Log:     log.New("info"),
		clients: make(map[*client]bool),
	}
	display.Install("web", w, []display.DriverOption{
		{Name: "addr", Default: ":8090", Value: &w.addr, Description: "address to serve the player on"},
		{Name: "compression", Default: 4, Value: &w.compressionLevel, Description: "brotli compression level (0-11)"},
	})
}

// message kinds of the wire protocol. Every websocket message leads
// with one of these bytes.
const (
	// msgFrame carries a brotli-compressed RGBA frame.
	msgFrame = 0x01
	// msgFrameCached tells the client to redraw a frame it has
	// already decoded, identified by its hash.
	msgFrameCached = 0x02
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Web is the web display driver.
type Web struct {
	Log log.Logger

	addr             string
	compressionLevel int

	mu      sync.Mutex
	clients map[*client]bool

	// seen holds the hashes of recently broadcast frames. A frame
	// whose hash is present is resent as a cache reference only.
	seen [16]uint64
	idx  int

	stop chan struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Start serves the player page and broadcasts frames until the
// channel closes or Stop is called.
func (w *Web) Start(frames <-chan []byte) error {
	w.stop = make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/", w.servePlayer)
	mux.HandleFunc("/ws", w.serveWS)

	server := &http.Server{Addr: w.addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			w.Log.Errorf("web: serving: %v", err)
		}
	}()
	defer server.Close()

	w.Log.Infof("web: serving player on %s", w.addr)

	for {
		select {
		case <-w.stop:
			return nil
		case fb, ok := <-frames:
			if !ok {
				return nil
			}
			w.broadcast(fb)
		}
	}
}

// Stop stops the driver.
func (w *Web) Stop() error {
	if w.stop != nil {
		close(w.stop)
	}
	return nil
}

// broadcast sends one frame to every connected client.
func (w *Web) broadcast(fb []byte) {
	hash := xxhash.Sum64(fb)

	var payload []byte
	if w.hasSeen(hash) {
		payload = append([]byte{msgFrameCached}, hashBytes(hash)...)
	} else {
		w.remember(hash)
		compressed, err := cbrotli.Encode(fb, cbrotli.WriterOptions{Quality: w.compressionLevel})
		if err != nil {
			w.Log.Errorf("web: compressing frame: %v", err)
			return
		}
		payload = append([]byte{msgFrame}, hashBytes(hash)...)
		payload = append(payload, compressed...)
	}

	w.mu.Lock()
	for c := range w.clients {
		select {
		case c.send <- payload:
		default:
			// the client is behind; drop the frame
		}
	}
	w.mu.Unlock()
}

func (w *Web) hasSeen(hash uint64) bool {
	for _, h := range w.seen {
		if h == hash {
			return true
		}
	}
	return false
}

func (w *Web) remember(hash uint64) {
	w.seen[w.idx] = hash
	w.idx = (w.idx + 1) % len(w.seen)
}

func hashBytes(hash uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(hash >> (i * 8))
	}
	return b
}

// serveWS upgrades the connection and spawns the client's write
// pump.
func (w *Web) serveWS(wr http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(wr, r, nil)
	if err != nil {
		w.Log.Errorf("web: upgrading connection: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}

	w.mu.Lock()
	w.clients[c] = true
	w.mu.Unlock()

	w.Log.Infof("web: client connected from %s", r.RemoteAddr)

	go func() {
		defer func() {
			w.mu.Lock()
			delete(w.clients, c)
			w.mu.Unlock()
			conn.Close()
		}()

		for payload := range c.send {
			if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
				return
			}
		}
	}()
}

func (w *Web) servePlayer(wr http.ResponseWriter, r *http.Request) {
	wr.Header().Set("Content-Type", "text/html")
	wr.Write([]byte(playerHTML))
}
