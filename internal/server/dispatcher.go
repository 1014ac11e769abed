package server

import "encoding/json"

// dispatch parses one inbound frame and routes it through the action
// table. Every failure becomes a direct error reply to the offending
// connection; nothing a client sends can terminate the connection or
// the process.
func (h *Hub) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Debug("rejecting malformed payload",
			"client_id", c.id, "error", err)
		h.sendError(c, errInvalidJSON)
		return
	}

	if env.Action == nil {
		h.sendError(c, errActionMissing)
		return
	}

	handler, ok := h.actions[*env.Action]
	if !ok {
		h.logger.Debug("rejecting unknown action",
			"client_id", c.id, "action", *env.Action)
		h.sendError(c, errNoSuchAction)
		return
	}

	handler(h, c, &env)
}

// sendError replies with an error envelope to a single connection.
func (h *Hub) sendError(c *Client, text string) {
	h.reply(c, errorReply{Error: text})
}

// reply sends a direct (non-broadcast) message to one connection.
func (h *Hub) reply(c *Client, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encoding reply", "client_id", c.id, "error", err)
		return
	}
	if !h.deliver(c, payload) {
		h.logger.Debug("dropping reply to closed connection", "client_id", c.id)
	}
}
