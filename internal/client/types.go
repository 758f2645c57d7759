// Package client provides WebSocket and HTTP clients for the Ripple chat
// backend. Types mirror the backend wire protocol without importing backend
// packages.
package client

import (
	"encoding/json"
	"time"

	"github.com/ripple-chat/tui/internal/reconcile"
)

// MessageType identifies the kind of WebSocket message.
type MessageType string

const (
	MsgSnapshot       MessageType = "snapshot"
	MsgMessageAdded   MessageType = "message_added"
	MsgMessageRemoved MessageType = "message_removed"
	MsgMemberUpdate   MessageType = "member_update"
	MsgError          MessageType = "error"
)

// WSMessage is the envelope for all WebSocket messages.
type WSMessage struct {
	Type    MessageType     `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

// Message is one chat message as delivered by the backend. An edit arrives
// as a new snapshot of the same ID with a later EditedAt.
type Message struct {
	MsgID      string     `json:"id"`
	Sender     string     `json:"senderId"`
	SenderName string     `json:"senderName,omitempty"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"createdAt"`
	EditedAt   *time.Time `json:"editedAt,omitempty"`
	Deleted    bool       `json:"deleted,omitempty"`
}

// ID implements reconcile.Item.
func (m *Message) ID() string { return m.MsgID }

// SenderID implements reconcile.Item.
func (m *Message) SenderID() string { return m.Sender }

// Equal implements reconcile.Item: two snapshots of the same message are
// equal when their visible content matches.
func (m *Message) Equal(other reconcile.Item) bool {
	o, ok := other.(*Message)
	if !ok {
		return false
	}
	return m.MsgID == o.MsgID &&
		m.Body == o.Body &&
		m.Deleted == o.Deleted &&
		equalTime(m.EditedAt, o.EditedAt)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Member is a participant in the room.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// --- WebSocket payload types ---

// SnapshotPayload is sent on initial connection and after a resync; it
// carries the full message list, oldest first.
type SnapshotPayload struct {
	Room     string     `json:"room"`
	Messages []*Message `json:"messages"`
	Members  []Member   `json:"members,omitempty"`
}

// MessageAddedPayload delivers one inserted message with its chronological
// index. Index and Message are producer guarantees, never absent.
type MessageAddedPayload struct {
	Index   int      `json:"index"`
	Message *Message `json:"message"`
}

// MessageRemovedPayload delivers one removed message with the index it held.
type MessageRemovedPayload struct {
	Index   int      `json:"index"`
	Message *Message `json:"message"`
}

// MemberUpdatePayload reports a roster change.
type MemberUpdatePayload struct {
	Member Member `json:"member"`
}

// --- HTTP types ---

// SendRequest is the body of POST /api/rooms/{room}/messages.
type SendRequest struct {
	Body string `json:"body"`
}

// HistoryPage is returned by GET /api/rooms/{room}/history.
type HistoryPage struct {
	Messages []*Message `json:"messages"`
	HasMore  bool       `json:"hasMore"`
}
