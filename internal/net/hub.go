// Package net shares a drawing session on the local network: one
// editor drives the session over a websocket, any number of read-only
// viewers receive document updates, and the share endpoint is
// advertised over mDNS.
package net

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the active websocket connections. All writes go through
// the hub so a connection is never written from two goroutines at once.
type Hub struct {
	conns map[*websocket.Conn]bool
	mu    sync.Mutex
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	log.Printf("[net] client connected: %s", conn.RemoteAddr())
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	log.Printf("[net] client disconnected: %s", conn.RemoteAddr())
}

// Broadcast sends msg to every connection. Write failures are logged
// and the connection dropped from the hub.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[net] send to %s failed: %v", conn.RemoteAddr(), err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// SendTo sends msg to a single connection.
func (h *Hub) SendTo(conn *websocket.Conn, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[net] send to %s failed: %v", conn.RemoteAddr(), err)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
