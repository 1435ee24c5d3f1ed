package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/user"
)

// Observer is told about connection churn.
type Observer interface {
	ClientConnected()
	ClientDisconnected()
}

// Hub fans dashboard events out to the connected clients allowed to see them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan event.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
	observer   Observer
}

func NewHub(logger *log.Logger, observer Observer) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan event.Event, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
		observer:   observer,
	}
}

var _ event.Publisher = (*Hub)(nil)

// Run serves the hub until ctx is done, then closes every client.
// Register and Unregister stop blocking once Run has returned.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			close(h.done)
			h.drainPending()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.observer != nil {
				h.observer.ClientConnected()
			}
			h.logf("WS connected | user=%s role=%s total_clients=%d", client.userID, client.role, total)

		case client := <-h.unregister:
			h.drop(client)

		case ev := <-h.broadcast:
			msg, err := json.Marshal(ev)
			if err != nil {
				h.logf("WS encode error | kind=%s error=%v", ev.Kind, err)
				continue
			}

			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if c.wants(ev) {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg:
				default:
					h.drop(client)
				}
			}
			h.logf("WS broadcast | kind=%s clients=%d", ev.Kind, len(targets))
		}
	}
}

func (h *Hub) drop(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	if !ok {
		return
	}
	if h.observer != nil {
		h.observer.ClientDisconnected()
	}
	h.logf("WS disconnected | user=%s total_clients=%d", client.userID, total)
}

// Register adds client to the hub. After shutdown the client's send
// channel is closed instead so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// drainPending closes clients whose registration was queued but never served.
func (h *Hub) drainPending() {
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		case <-h.unregister:
		default:
			return
		}
	}
}

// Publish queues ev without blocking the caller.
func (h *Hub) Publish(ev event.Event) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- ev:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full kind=%s", ev.Kind)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// HR sees every change; everyone else only what names them.
func (c *Client) wants(ev event.Event) bool {
	return c.role == user.RoleHR || ev.Concerns(c.userID)
}
