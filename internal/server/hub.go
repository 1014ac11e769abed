// Package server coordinates connection registration, action dispatch,
// and broadcast fanout for the chat relay via the Hub type.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// inboundFrame carries one raw message from a pump goroutine to the
// hub loop.
type inboundFrame struct {
	client  *Client
	payload []byte
}

// actionFunc handles one parsed envelope for one connection. Handlers
// only ever run on the hub loop.
type actionFunc func(h *Hub, c *Client, env *Envelope)

// Hub owns all shared chat state: the set of open connections, the
// registry of joined members, and the action table. Every mutation
// happens on the Run loop; pump goroutines talk to it exclusively
// through the register, unregister, and inbound channels, so handler
// logic never runs concurrently with itself and the registry needs no
// locking.
type Hub struct {
	conns   map[*Client]struct{} // every open connection
	members map[*Client]struct{} // connections that completed joinChat
	actions map[string]actionFunc

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame

	logger *slog.Logger
	clock  clockwork.Clock

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Hub at construction time.
type Option func(*Hub)

// WithLogger sets the logger used for connection lifecycle and
// diagnostic messages.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

// WithClock sets the clock used to timestamp chat messages.
func WithClock(clock clockwork.Clock) Option {
	return func(h *Hub) { h.clock = clock }
}

// NewHub creates a Hub ready to manage connections. The action table
// is built here and never mutated afterward.
func NewHub(opts ...Option) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		conns:      make(map[*Client]struct{}),
		members:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 64),
		logger:     slog.Default(),
		clock:      clockwork.NewRealClock(),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.actions = map[string]actionFunc{
		actionJoinChat:       (*Hub).joinChat,
		actionLeaveChat:      (*Hub).leaveChat,
		actionSendChat:       (*Hub).sendChat,
		actionChangeNickname: (*Hub).changeNickname,
	}
	return h
}

// Run is the hub's event loop. It must run in its own goroutine and
// is the only place hub state is touched.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllConns()
			return

		case c := <-h.register:
			h.addConn(c)

		case c := <-h.unregister:
			h.dropConn(c)

		case frame := <-h.inbound:
			h.dispatch(frame.client, frame.payload)
		}
	}
}

func (h *Hub) addConn(c *Client) {
	if c == nil {
		h.logger.Warn("ignoring nil client registration")
		return
	}

	h.conns[c] = struct{}{}
	h.logger.Info("client connected",
		"client_id", c.id, "addr", c.addr, "connections", len(h.conns))

	if c.conn == nil {
		return
	}

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
	}()
}

// dropConn handles a transport close. The leave handler always runs
// (it is idempotent), then the connection is torn down. Safe to call
// twice for the same connection.
func (h *Hub) dropConn(c *Client) {
	if _, ok := h.conns[c]; !ok {
		return
	}

	delete(h.conns, c)
	h.leave(c)
	c.closed = true
	close(c.send)

	h.logger.Info("client disconnected",
		"client_id", c.id, "addr", c.addr, "connections", len(h.conns))
}

// broadcast fans evt out to every member of the registry. The payload
// is encoded per recipient, so the origin flag on chat messages never
// leaks between copies. Members whose channel is no longer open are
// evicted during the same pass; deleting the current key while
// ranging a map is well defined in Go.
func (h *Hub) broadcast(evt event, origin *Client) {
	for member := range h.members {
		payload, err := evt.encode(member == origin)
		if err != nil {
			h.logger.Error("encoding broadcast payload", "error", err)
			return
		}
		if !h.deliver(member, payload) {
			delete(h.members, member)
			h.logger.Info("evicted stale connection during broadcast",
				"client_id", member.id, "addr", member.addr, "members", len(h.members))
		}
	}
}

// deliver places a payload on the client's outbound channel without
// blocking. A closed connection or a full send buffer both count as
// not open.
func (h *Hub) deliver(c *Client, payload []byte) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (h *Hub) closeAllConns() {
	h.logger.Info("closing all client connections", "connections", len(h.conns))

	for c := range h.conns {
		if c.conn == nil {
			continue
		}
		if err := c.conn.Close(); err != nil && !isExpectedCloseError(err) {
			h.logger.Warn("closing client connection",
				"client_id", c.id, "addr", c.addr, "error", err)
		}
	}
}

// Shutdown stops the event loop, closes every connection, and waits
// for the pump goroutines to finish or the timeout to elapse.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.logger.Info("shutting down hub")

	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		h.logger.Info("hub shutdown complete")
		return nil
	case <-time.After(timeout):
		h.logger.Warn("hub shutdown timed out")
		return context.DeadlineExceeded
	}
}
