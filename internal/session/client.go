package session

import (
	"sync"

	"github.com/gorilla/websocket"

	"collabhub/internal/utils"
)

// sendBufferSize bounds the per-connection outbound queue. A peer that falls
// further behind than this starts losing frames instead of stalling the
// session.
const sendBufferSize = 64

// Client owns the outbound path to one connected peer. Frames are enqueued
// without blocking and drained onto the websocket by WritePump, so one slow
// or broken peer never holds up a broadcast to the rest of the session.
type Client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan any
	hook   func(any)
	closed bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn, send: make(chan any, sendBufferSize)}
}

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(any)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Send enqueues a frame for delivery. It never blocks; it reports false when
// the frame was dropped because the queue is full or the client is closed.
func (c *Client) Send(v any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(v)
		return true
	}
	if c.closed {
		return false
	}
	select {
	case c.send <- v:
		return true
	default:
		return false
	}
}

// WritePump drains the outbound queue onto the connection until Close. After
// the first write failure the remaining frames are discarded; the peer's own
// read loop notices the broken connection and runs its cleanup.
func (c *Client) WritePump(log *utils.Logger) {
	broken := false
	for v := range c.send {
		if broken || c.conn == nil {
			continue
		}
		if err := c.conn.WriteJSON(v); err != nil {
			log.Warn("peer write failed, discarding remaining frames", "error", err.Error())
			broken = true
		}
	}
}

// Close shuts the outbound queue. Safe to call more than once; Send after
// Close reports a drop.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
