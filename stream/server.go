// Package stream sends frames of a running creature to browsers over a
// websocket, and takes targets back from them.
package stream

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adammck/critter/control"
	"github.com/adammck/critter/render"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "stream",
})

const (
	// Frames buffered per client. When a client falls this far behind, new
	// frames are dropped until it catches up.
	clientBuffer = 4

	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

//go:embed index.html
var index []byte

type frameMsg struct {
	Type string `json:"type"`
	render.Frame
}

type targetMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type Server struct {
	pointer  *control.Pointer
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]chan []byte

	nextID  atomic.Uint64
	dropped atomic.Uint64
}

// NewServer returns a server which sets targets received from clients on the
// given pointer. It may be nil, to ignore them.
func NewServer(p *control.Pointer) *Server {
	return &Server{
		pointer: p,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		clients: map[uint64]chan []byte{},
	}
}

// Publish sends a frame to every connected client. It never blocks.
func (s *Server) Publish(f render.Frame) error {
	b, err := json.Marshal(frameMsg{Type: "FRAME", Frame: f})
	if err != nil {
		return fmt.Errorf("error encoding frame %d: %w", f.Tick, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.clients {
		select {
		case ch <- b:
		default:
			s.dropped.Add(1)
		}
	}

	return nil
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped returns the number of frames which were not sent to some client
// because it was too slow.
func (s *Server) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Server) join() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, clientBuffer)

	s.mu.Lock()
	s.clients[id] = ch
	s.mu.Unlock()

	log.WithField("client", id).Info("joined")
	return id, ch
}

func (s *Server) leave(id uint64) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()

	log.WithField("client", id).Info("left")
}

// Handler upgrades the request to a websocket, then streams frames to it until
// either side hangs up.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Warnf("error upgrading %s: %s", r.RemoteAddr, err)
			return
		}
		defer conn.Close()

		id, frames := s.join()
		defer s.leave(id)

		done := make(chan struct{})
		defer close(done)

		// Writer
		go func() {
			for {
				select {
				case <-done:
					return

				case b := <-frames:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						log.WithField("client", id).Debugf("error writing: %s", err)
						return
					}
				}
			}
		}()

		// Reader
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}

			s.handle(id, msg)
		}
	}
}

func (s *Server) handle(id uint64, msg []byte) {
	var m targetMsg
	if err := json.Unmarshal(msg, &m); err != nil {
		log.WithField("client", id).Debugf("bad message: %s", err)
		return
	}

	if m.Type != "TARGET" {
		log.WithField("client", id).Debugf("unknown message type: %q", m.Type)
		return
	}

	if s.pointer != nil {
		s.pointer.Set(m.X, m.Y)
	}
}

// IndexHandler serves a page which connects to the websocket at /ws and
// draws whatever it receives.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = rw.Write(index)
	}
}

// Mux returns a handler serving the page at / and the websocket at /ws.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", s.IndexHandler())
	mux.Handle("/ws", s.Handler())
	return mux
}
