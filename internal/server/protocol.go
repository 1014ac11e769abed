// Package server defines the wire protocol types exchanged between
// clients and the hub: the inbound action envelope, direct replies,
// and the broadcast event payloads.
package server

import "encoding/json"

// Action names accepted from clients.
const (
	actionJoinChat       = "joinChat"
	actionLeaveChat      = "leaveChat"
	actionSendChat       = "sendChat"
	actionChangeNickname = "changeNickname"
)

// Action names emitted to clients.
const (
	actionWelcomeClient  = "welcomeClient"
	actionClientJoin     = "clientJoin"
	actionClientLeave    = "clientLeave"
	actionNicknameChange = "nicknameChange"
	actionIncomingChat   = "incomingChat"
)

// Error reply texts sent back to the offending connection.
const (
	errInvalidJSON     = "Invalid JSON format"
	errActionMissing   = "action is missing"
	errNoSuchAction    = "No such action"
	errAlreadyJoined   = "Client already joined"
	errNicknameMissing = "nickname is missing"
	errMessageMissing  = "message is missing"
)

// Envelope is the inbound message format. Pointer fields distinguish
// an absent or null field from an empty one.
type Envelope struct {
	Action   *string `json:"action"`
	Nickname *string `json:"nickname"`
	Message  *string `json:"message"`
}

type errorReply struct {
	Error string `json:"error"`
}

type welcomeReply struct {
	Action   string `json:"action"`
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

// event is a broadcastable outbound message. encode builds a fresh
// wire payload for a single recipient; origin-flag adaptation happens
// inside encode so no shared template is ever mutated.
type event interface {
	encode(recipientIsOrigin bool) ([]byte, error)
}

type clientJoinEvent struct {
	Action   string `json:"action"`
	Nickname string `json:"nickname"`
}

func (e clientJoinEvent) encode(bool) ([]byte, error) {
	return json.Marshal(e)
}

type clientLeaveEvent struct {
	Action   string `json:"action"`
	Nickname string `json:"nickname"`
}

func (e clientLeaveEvent) encode(bool) ([]byte, error) {
	return json.Marshal(e)
}

type nicknameChangeEvent struct {
	Action      string `json:"action"`
	OldNickname string `json:"oldNickname"`
	NewNickname string `json:"newNickname"`
}

func (e nicknameChangeEvent) encode(bool) ([]byte, error) {
	return json.Marshal(e)
}

type chatPayload struct {
	Time    int64  `json:"time"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Me      bool   `json:"me,omitempty"`
}

type incomingChatEvent struct {
	Action string      `json:"action"`
	Data   chatPayload `json:"data"`
}

func (e incomingChatEvent) encode(recipientIsOrigin bool) ([]byte, error) {
	out := e
	out.Data.Me = recipientIsOrigin
	return json.Marshal(out)
}
