// Package ws implements WebSocket hub and client management for live
// dashboard streaming.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cephas20k/secops/internal/metrics"
)

const (
	broadcastBuffer = 256
	registerBuffer  = 64

	// maxClients caps concurrent dashboard connections.
	maxClients = 100

	// maxBroadcastPayload is the maximum allowed event payload size (16 KB).
	maxBroadcastPayload = 16384

	// drainTimeout is how long the hub waits for clients to flush on shutdown.
	drainTimeout = 3 * time.Second
)

// Hub manages active WebSocket clients and broadcasts engine events to them.
// All client map mutations happen exclusively in the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	shutdown   chan struct{} // signals Run to begin graceful drain
	done       chan struct{} // closed when Run has finished draining
	count      atomic.Int64
	log        *logrus.Logger
	seq        *EventSequence
	buffer     *EventBuffer
}

// NewHub creates a new Hub instance.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, registerBuffer),
		unregister: make(chan *Client, registerBuffer),
		broadcast:  make(chan []byte, broadcastBuffer),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
		seq:        NewEventSequence(),
		buffer:     NewEventBuffer(defaultBufferMaxLen, defaultBufferMaxAge),
	}
}

// Run starts the hub event loop. It should be run as a goroutine.
// It exits when Shutdown is called or the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.drainClients()

			return
		case <-h.shutdown:
			h.drainClients()

			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

// addClient admits a client unless the connection cap is reached.
// Only the Run goroutine calls this.
func (h *Hub) addClient(client *Client) {
	if len(h.clients) >= maxClients {
		h.log.Warn("connection limit reached, dropping client")
		client.closeSend()

		return
	}

	h.clients[client] = true
	h.syncCount()
	h.log.WithField("total", len(h.clients)).Info("client registered")
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	h.syncCount()
	h.log.WithField("total", len(h.clients)).Info("client unregistered")
}

// fanOut delivers msg to every client, evicting any whose send buffer is full.
func (h *Hub) fanOut(msg []byte) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			client.closeSend()
			delete(h.clients, client)
		}
	}
	h.syncCount()
}

func (h *Hub) syncCount() {
	n := len(h.clients)
	h.count.Store(int64(n))
	metrics.WSConnections.Set(float64(n))
}

// Broadcast sends a message to every connected client. Payloads exceeding the
// size cap are dropped with a warning log. The actual send is performed by
// the Run goroutine via a channel.
func (h *Hub) Broadcast(msg []byte) {
	if len(msg) > maxBroadcastPayload {
		h.log.WithFields(logrus.Fields{
			"payload_size": len(msg),
			"max_size":     maxBroadcastPayload,
		}).Warn("dropping oversized broadcast payload")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("broadcast channel full, dropping message")
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	default:
		h.log.Warn("register channel full, dropping client")
		c.closeSend()
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	default:
		// Run loop already exited; client cleanup happened in Run shutdown.
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish implements the engine's event sink: it marshals the payload and
// broadcasts it as a typed event.
func (h *Hub) Publish(eventType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		h.log.WithError(err).WithField("event", eventType).Error("failed to marshal event payload")
		return
	}
	h.BroadcastEvent(eventType, raw)
}

// BroadcastEvent assigns a sequence ID, stores the event in the replay
// buffer, and broadcasts it to all clients.
func (h *Hub) BroadcastEvent(eventType string, data json.RawMessage) {
	evt := Event{
		Type: eventType,
		ID:   h.seq.Next(),
		Data: data,
		Time: time.Now(),
	}

	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal event")
		return
	}

	h.buffer.Append(&evt)
	h.Broadcast(msg)
}

// Shutdown initiates a graceful drain and blocks until Run has finished.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}

// drainClients notifies every client of the shutdown, waits for send buffers
// to flush (bounded by drainTimeout), then closes all connections.
func (h *Hub) drainClients() {
	if len(h.clients) == 0 {
		return
	}

	h.log.WithField("clients", len(h.clients)).Info("draining WebSocket clients")

	shutdownMsg := []byte(`{"type":"shutdown","message":"server shutting down"}`)
	for client := range h.clients {
		select {
		case client.send <- shutdownMsg:
		default:
		}
	}

	h.waitForFlush()

	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}
	h.syncCount()
}

func (h *Hub) waitForFlush() {
	deadline := time.After(drainTimeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		pending := false
		for client := range h.clients {
			if len(client.send) > 0 {
				pending = true

				break
			}
		}
		if !pending {
			return
		}

		select {
		case <-deadline:
			h.log.Warn("WebSocket drain timeout, closing remaining clients")

			return
		case <-ticker.C:
		}
	}
}

// ReplayEvents sends buffered events since lastEventID to the client.
// Returns false if the requested ID has already aged out of the buffer.
func (h *Hub) ReplayEvents(client *Client, lastEventID uint64) bool {
	oldest := h.buffer.OldestID()
	if oldest > 0 && lastEventID > 0 && lastEventID < oldest {
		return false
	}

	for _, evt := range h.buffer.Since(lastEventID) {
		msg, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		select {
		case client.send <- msg:
		default:
			return true // channel full, stop replay
		}
	}
	return true
}
