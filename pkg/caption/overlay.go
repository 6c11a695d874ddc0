package caption

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

//go:embed overlay.html
var overlayPage []byte

// Command is one caption instruction pushed to presentation surfaces.
type Command struct {
	// Op is "set" or "clear".
	Op string `json:"op"`

	// Text is the caption line for a set command.
	Text string `json:"text,omitempty"`

	// Style is the merged presentation style for a set command.
	Style *Style `json:"style,omitempty"`
}

// OverlaySink pushes caption commands over websockets to any connected
// presentation surface, and serves a built-in browser overlay page.
//
// The sink is deliberately decoupled from the turn pipeline: Set and Clear
// enqueue a command and return; a slow or absent client never stalls a turn.
type OverlaySink struct {
	addr string

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Command
	last    *Command // replayed to newly connected clients
}

// NewOverlaySink creates an overlay sink listening on 127.0.0.1:port.
func NewOverlaySink(port int) *OverlaySink {
	return &OverlaySink{
		addr:    fmt.Sprintf("127.0.0.1:%d", port),
		clients: make(map[*websocket.Conn]chan Command),
	}
}

// handler returns the HTTP mux serving the overlay page and websocket.
func (s *OverlaySink) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start serves the overlay page and websocket endpoint in a goroutine.
func (s *OverlaySink) Start() {
	mux := s.handler()

	go func() {
		slog.Info("caption overlay listening", "addr", s.addr, "url", "http://"+s.addr+"/")
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			slog.Error("caption overlay server error", "error", err)
		}
	}()
}

// Set implements Sink.
func (s *OverlaySink) Set(text string, style Style) {
	merged := style.merged()
	s.broadcast(Command{Op: "set", Text: text, Style: &merged})
}

// Clear implements Sink.
func (s *OverlaySink) Clear() {
	s.broadcast(Command{Op: "clear"})
}

func (s *OverlaySink) broadcast(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &cmd
	for conn, ch := range s.clients {
		select {
		case ch <- cmd:
		default:
			// Slow client: drop the command rather than block a turn.
			slog.Warn("caption overlay client lagging, dropping command",
				"client", conn.RemoteAddr())
		}
	}
}

func (s *OverlaySink) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(overlayPage)
}

var upgrader = websocket.Upgrader{
	// The server binds to localhost only; any local page may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *OverlaySink) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("caption overlay upgrade failed", "error", err)
		return
	}

	ch := make(chan Command, 16)
	s.mu.Lock()
	s.clients[conn] = ch
	if s.last != nil {
		ch <- *s.last
	}
	s.mu.Unlock()

	slog.Info("caption overlay client connected", "client", conn.RemoteAddr())

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for cmd := range ch {
			if err := conn.WriteJSON(cmd); err != nil {
				slog.Info("caption overlay client gone", "client", conn.RemoteAddr())
				return
			}
		}
	}()

	// Drain (and ignore) client messages to observe disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				if ch, ok := s.clients[conn]; ok {
					delete(s.clients, conn)
					close(ch)
				}
				s.mu.Unlock()
				return
			}
		}
	}()
}
