// Package server implements the chat action handlers: join, leave,
// rename, and send. All of them run on the hub loop.
package server

// joinChat admits a connection to the member registry. The join is
// announced to existing members before the new member is added, so
// the joiner never receives its own announcement; the welcome reply
// goes out after admission so it is consistent with registry state.
func (h *Hub) joinChat(c *Client, env *Envelope) {
	if _, ok := h.members[c]; ok {
		h.sendError(c, errAlreadyJoined)
		return
	}
	if env.Nickname == nil {
		h.sendError(c, errNicknameMissing)
		return
	}
	nickname := *env.Nickname

	h.broadcast(clientJoinEvent{Action: actionClientJoin, Nickname: nickname}, nil)

	c.displayName = nickname
	h.members[c] = struct{}{}

	h.reply(c, welcomeReply{
		Action:   actionWelcomeClient,
		Nickname: nickname,
		Message:  "Welcome to the chat, " + nickname + "!",
	})

	h.logger.Info("client joined",
		"client_id", c.id, "nickname", nickname, "members", len(h.members))
}

func (h *Hub) leaveChat(c *Client, _ *Envelope) {
	h.leave(c)
}

// leave removes a connection from the member registry and announces
// the departure. It is a no-op for non-members, which makes it safe
// to invoke from the explicit leaveChat action, from transport close,
// and after a broadcast-path eviction without double-removal.
func (h *Hub) leave(c *Client) {
	if _, ok := h.members[c]; !ok {
		return
	}

	nickname := c.displayName
	delete(h.members, c)

	// Removal happens first: the leaver never sees its own departure.
	h.broadcast(clientLeaveEvent{Action: actionClientLeave, Nickname: nickname}, nil)

	h.logger.Info("client left",
		"client_id", c.id, "nickname", nickname, "members", len(h.members))
}

// changeNickname updates the display name and announces the change.
// Unlike join and leave, the renaming connection receives its own
// nicknameChange event.
func (h *Hub) changeNickname(c *Client, env *Envelope) {
	if env.Nickname == nil {
		h.sendError(c, errNicknameMissing)
		return
	}

	oldNickname := c.displayName
	c.displayName = *env.Nickname

	h.broadcast(nicknameChangeEvent{
		Action:      actionNicknameChange,
		OldNickname: oldNickname,
		NewNickname: *env.Nickname,
	}, nil)
}

// sendChat broadcasts a chat message to every member. The fanout
// marks the copy delivered to the originating connection with
// data.me = true.
func (h *Hub) sendChat(c *Client, env *Envelope) {
	if env.Message == nil {
		h.sendError(c, errMessageMissing)
		return
	}

	h.broadcast(incomingChatEvent{
		Action: actionIncomingChat,
		Data: chatPayload{
			Time:    h.clock.Now().UnixMilli(),
			Name:    c.displayName,
			Content: *env.Message,
		},
	}, c)
}
