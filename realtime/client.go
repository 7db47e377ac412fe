// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livetally/aggregator"
	"github.com/danielhkuo/livetally/models"
	"github.com/danielhkuo/livetally/store"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

// Client is one websocket connection. Outbound events go through a
// buffered send channel drained by writePump, so one stalled peer
// never blocks the hub or other subscribers.
type Client struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	identity string

	mu     sync.Mutex
	send   chan models.ServerEvent
	closed bool
}

func newClient(id string, hub *Hub, conn *websocket.Conn, voterIdentity string) *Client {
	return &Client{
		id:       id,
		hub:      hub,
		conn:     conn,
		identity: voterIdentity,
		send:     make(chan models.ServerEvent, sendBufferSize),
	}
}

// trySend queues an event without blocking. Reports false when the
// client's buffer is full or the client has stopped.
func (c *Client) trySend(event models.ServerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

// stop closes the send channel exactly once and tears the connection
// down. Safe to call from any goroutine.
func (c *Client) stop() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	c.conn.Close()
}

// readPump consumes inbound events until the connection dies, then
// removes the client from every broadcast group.
func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		c.stop()
		slog.Info("user disconnected", "conn_id", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "conn_id", c.id, "error", err)
			}
			return
		}

		var event models.ClientEvent
		if err := json.Unmarshal(data, &event); err != nil {
			slog.Warn("malformed client event", "conn_id", c.id, "error", err)
			c.trySend(models.ServerEvent{Type: models.EventError, Message: "malformed event"})
			continue
		}

		switch event.Type {
		case models.EventJoinPoll:
			if event.PollID == "" {
				continue
			}
			c.hub.Join(event.PollID, c)
			slog.Info("joined poll group", "conn_id", c.id, "poll_id", event.PollID)
		case models.EventVote:
			c.handleVote(event)
		default:
			slog.Warn("unknown event type", "conn_id", c.id, "type", event.Type)
		}
	}
}

// handleVote runs a vote intent through the aggregator. Accepted votes
// broadcast the new snapshot to the poll's group; rejections go only
// to this connection; no-ops stay silent.
func (c *Client) handleVote(event models.ClientEvent) {
	poll, err := c.hub.agg.CastVote(context.Background(), event.PollID, c.identity, event.Indices)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Vote against a poll that does not exist: silently dropped.
			slog.Info("vote for unknown poll", "conn_id", c.id, "poll_id", event.PollID)
		case errors.Is(err, aggregator.ErrNoSelection):
			slog.Info("vote with no valid selection", "conn_id", c.id, "poll_id", event.PollID)
		case errors.Is(err, store.ErrAlreadyVoted):
			c.trySend(models.ServerEvent{Type: models.EventError, Message: "You have already voted on this poll."})
		case errors.Is(err, aggregator.ErrMultiNotAllowed):
			c.trySend(models.ServerEvent{Type: models.EventError, Message: "This poll allows selecting only one option."})
		default:
			slog.Error("vote failed", "conn_id", c.id, "poll_id", event.PollID, "error", err)
			c.trySend(models.ServerEvent{Type: models.EventError, Message: "An error occurred while processing your vote."})
		}
		return
	}

	slog.Info("vote accepted", "conn_id", c.id, "poll_id", event.PollID)
	c.hub.Broadcast(event.PollID, poll)
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
