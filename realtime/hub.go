// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livetally/aggregator"
	"github.com/danielhkuo/livetally/cliparse"
	"github.com/danielhkuo/livetally/identity"
	"github.com/danielhkuo/livetally/models"
)

// Hub owns websocket group membership: which connections are
// subscribed to which poll. Delivery is best-effort; a client that
// cannot keep up is dropped rather than allowed to stall fan-out to
// the rest of its group.
type Hub struct {
	agg *aggregator.Aggregator
	cfg cliparse.Config

	upgrader websocket.Upgrader

	mu     sync.Mutex
	groups map[string]map[*Client]struct{}
}

func NewHub(agg *aggregator.Aggregator, cfg cliparse.Config) *Hub {
	h := &Hub{
		agg:    agg,
		cfg:    cfg,
		groups: make(map[string]map[*Client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if h.cfg.AllowedOrigin == "*" {
				return true
			}
			origin := r.Header.Get("Origin")
			// Non-browser clients send no Origin header.
			return origin == "" || origin == h.cfg.AllowedOrigin
		},
	}
	return h
}

// ServeWS handles GET /ws: upgrades the connection, derives the voter
// identity from the network origin, and starts the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	connID, err := identity.GenerateID(8)
	if err != nil {
		slog.Error("failed to generate connection ID", "error", err)
		conn.Close()
		return
	}

	client := newClient(connID, h, conn, identity.FromRequest(r, h.cfg.VoterHashSalt))

	slog.Info("user connected", "conn_id", connID, "remote", r.RemoteAddr)

	go client.writePump()
	go client.readPump()
}

// Join subscribes a client to a poll's broadcast group. A client may
// watch any number of polls at once; joining twice is a no-op.
func (h *Hub) Join(pollID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group, ok := h.groups[pollID]
	if !ok {
		group = make(map[*Client]struct{})
		h.groups[pollID] = group
	}
	group[c] = struct{}{}
}

// Remove drops a client from every group it belongs to. Called on
// disconnect and when a client's send buffer overflows.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	for pollID, group := range h.groups {
		delete(group, c)
		if len(group) == 0 {
			delete(h.groups, pollID)
		}
	}
}

// Broadcast fans a poll snapshot out to every member of the poll's
// group. Order of delivery is unspecified. Members whose buffers are
// full are dropped; the remaining members are unaffected.
func (h *Hub) Broadcast(pollID string, poll *models.Poll) {
	event := models.ServerEvent{Type: models.EventPollUpdated, Poll: poll}

	// Copy members under lock to avoid map iteration races.
	h.mu.Lock()
	members := make([]*Client, 0, len(h.groups[pollID]))
	for c := range h.groups[pollID] {
		members = append(members, c)
	}
	h.mu.Unlock()

	for _, c := range members {
		if !c.trySend(event) {
			slog.Warn("dropping slow subscriber", "conn_id", c.id, "poll_id", pollID)
			h.Remove(c)
			c.stop()
		}
	}
}

// MemberCount returns the current size of a poll's broadcast group.
func (h *Hub) MemberCount(pollID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[pollID])
}

// Close stops every connected client. Used on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make(map[*Client]struct{})
	for _, group := range h.groups {
		for c := range group {
			clients[c] = struct{}{}
		}
	}
	h.groups = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.stop()
	}
}
