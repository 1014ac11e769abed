// Package server manages individual WebSocket connections: the read
// and write pumps, deadlines, and keepalive pings.
package server

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
)

// Client is one WebSocket connection known to the hub. The transport
// layer owns the underlying conn; the hub references the client and
// evicts it when the conn goes away. displayName and closed are owned
// by the hub loop and never touched by the pumps.
type Client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
	addr string

	displayName string
	closed      bool
}

// newClient wraps an upgraded connection. A nil conn is allowed; the
// hub then skips the pump goroutines, which keeps the registry logic
// exercisable without a live socket.
func newClient(conn *websocket.Conn, hub *Hub, addr string, maxMessageSize int64) *Client {
	if conn != nil {
		conn.SetReadLimit(maxMessageSize)
	}
	return &Client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		hub:  hub,
		addr: addr,
	}
}

func (c *Client) setupReadDeadlines() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.hub.logger.Warn("setting read deadline", "client_id", c.id, "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// readPump forwards inbound frames to the hub loop until the
// connection dies, then notifies the hub so the leave handler runs.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			c.hub.logger.Warn("closing connection after read loop",
				"client_id", c.id, "error", err)
		}
	}()

	c.setupReadDeadlines()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadExit(err)
			return
		}

		select {
		case c.hub.inbound <- inboundFrame{client: c, payload: raw}:
		case <-c.hub.ctx.Done():
			return
		}
	}
}

func (c *Client) logReadExit(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.hub.logger.Warn("message exceeded maximum size",
			"client_id", c.id, "addr", c.addr)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		c.hub.logger.Info("client disconnecting",
			"client_id", c.id, "addr", c.addr, "reason", err)
	case errors.Is(err, io.EOF), isExpectedCloseError(err):
		c.hub.logger.Info("connection closed",
			"client_id", c.id, "addr", c.addr)
	default:
		c.hub.logger.Warn("websocket read error",
			"client_id", c.id, "addr", c.addr, "error", err)
	}
}

// writePump serializes all writes to the connection: outbound
// payloads from the hub and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			c.hub.logger.Warn("closing connection after write loop",
				"client_id", c.id, "error", err)
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if !isExpectedCloseError(err) {
					c.hub.logger.Warn("websocket write error",
						"client_id", c.id, "error", err)
				}
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.hub.ctx.Done():
			return
		}
	}
}

// isExpectedCloseError reports whether an error is routine connection
// teardown noise rather than something worth logging loudly.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
