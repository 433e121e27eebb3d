// Package hub fans published snapshots out to Server-Sent Events clients.
package hub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"svw.info/isopuzzle/internal/codec"
	"svw.info/isopuzzle/internal/domain"
)

const keepAlive = 30 * time.Second

type client struct {
	id     string
	events chan []byte
}

// Hub implements ports.Publisher. Slow clients miss frames rather than
// stalling the game loop.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan domain.Snapshot
	codec      codec.Codec
	log        *slog.Logger
	done       chan struct{}
}

func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan domain.Snapshot, 256),
		codec:      codec.JSON{},
		log:        logger,
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.events)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("sse client connected", "client", c.id, "total", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.events)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("sse client disconnected", "client", c.id, "total", n)

		case snap := <-h.broadcast:
			data, err := h.codec.Encode(snap)
			if err != nil {
				h.log.Error("encode snapshot", "err", err)
				continue
			}
			msg := []byte(fmt.Sprintf("event: snapshot\ndata: %s\n\n", data))

			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.events <- msg:
				default:
					h.log.Debug("sse client slow, frame skipped", "client", c.id)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues a snapshot for every client. It never blocks.
func (h *Hub) Publish(s domain.Snapshot) {
	select {
	case h.broadcast <- s:
	default:
		h.log.Debug("broadcast queue full, frame dropped", "level", s.Level)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{id: uuid.NewString(), events: make(chan []byte, 64)}
	select {
	case h.register <- c:
	case <-h.done:
		http.Error(w, "hub stopped", http.StatusServiceUnavailable)
		return
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.events:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
