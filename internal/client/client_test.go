package client

import (
	"encoding/json"
	"testing"
	"time"
)

func msg(id, sender, body string) *Message {
	return &Message{MsgID: id, Sender: sender, Body: body, CreatedAt: time.Unix(0, 0)}
}

func TestMessageEqual(t *testing.T) {
	edited := time.Unix(100, 0)
	editedSame := time.Unix(100, 0)
	editedLater := time.Unix(200, 0)

	tests := []struct {
		name string
		a, b *Message
		want bool
	}{
		{"same content", msg("1", "u", "hi"), msg("1", "u", "hi"), true},
		{"different body", msg("1", "u", "hi"), msg("1", "u", "bye"), false},
		{"edit timestamp differs", &Message{MsgID: "1", EditedAt: &edited}, &Message{MsgID: "1", EditedAt: &editedLater}, false},
		{"equal edit timestamps", &Message{MsgID: "1", EditedAt: &edited}, &Message{MsgID: "1", EditedAt: &editedSame}, true},
		{"edited vs never edited", &Message{MsgID: "1", EditedAt: &edited}, &Message{MsgID: "1"}, false},
		{"tombstone differs", &Message{MsgID: "1", Body: "x"}, &Message{MsgID: "1", Body: "x", Deleted: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeedMutations(t *testing.T) {
	f := NewFeed()
	f.ReplaceAll([]*Message{msg("a", "u", ""), msg("c", "u", "")})

	f.Insert(1, msg("b", "u", ""))
	if f.Len() != 3 || f.At(1).MsgID != "b" {
		t.Fatalf("after insert: len=%d, at(1)=%v", f.Len(), f.At(1))
	}

	removed := f.Remove(0)
	if removed == nil || removed.MsgID != "a" {
		t.Fatalf("Remove(0) = %v, want message a", removed)
	}
	if f.Remove(10) != nil {
		t.Error("Remove out of range should return nil")
	}

	f.Prepend([]*Message{msg("x", "u", ""), msg("y", "u", "")})
	want := []string{"x", "y", "b", "c"}
	if f.Len() != len(want) {
		t.Fatalf("len = %d, want %d", f.Len(), len(want))
	}
	for i, id := range want {
		if f.At(i).MsgID != id {
			t.Errorf("At(%d) = %q, want %q", i, f.At(i).MsgID, id)
		}
	}

	items := f.Items()
	if len(items) != f.Len() {
		t.Fatalf("Items() len = %d, want %d", len(items), f.Len())
	}
	if items[0].ID() != "x" || items[0].SenderID() != "u" {
		t.Errorf("Items()[0] = %q/%q, want x/u", items[0].ID(), items[0].SenderID())
	}
}

func TestDispatch(t *testing.T) {
	c := NewWSClient("ws://x", "", "general")

	tests := []struct {
		name    string
		raw     string
		check   func(t *testing.T, got interface{})
		dropped bool
	}{
		{
			name: "message added",
			raw:  `{"type":"message_added","seq":7,"payload":{"index":2,"message":{"id":"m1","senderId":"u1","body":"hello"}}}`,
			check: func(t *testing.T, got interface{}) {
				m, ok := got.(WSMessageAddedMsg)
				if !ok {
					t.Fatalf("got %T", got)
				}
				if m.Payload.Index != 2 || m.Payload.Message.MsgID != "m1" {
					t.Errorf("payload = %+v", m.Payload)
				}
			},
		},
		{
			name: "message removed",
			raw:  `{"type":"message_removed","payload":{"index":0,"message":{"id":"m0"}}}`,
			check: func(t *testing.T, got interface{}) {
				m, ok := got.(WSMessageRemovedMsg)
				if !ok {
					t.Fatalf("got %T", got)
				}
				if m.Payload.Message.MsgID != "m0" {
					t.Errorf("payload = %+v", m.Payload)
				}
			},
		},
		{
			name: "snapshot",
			raw:  `{"type":"snapshot","payload":{"room":"general","messages":[{"id":"a"},{"id":"b"}]}}`,
			check: func(t *testing.T, got interface{}) {
				m, ok := got.(WSSnapshotMsg)
				if !ok {
					t.Fatalf("got %T", got)
				}
				if m.Payload.Room != "general" || len(m.Payload.Messages) != 2 {
					t.Errorf("payload = %+v", m.Payload)
				}
			},
		},
		{
			name: "member update",
			raw:  `{"type":"member_update","payload":{"member":{"id":"u2","name":"kim","online":true}}}`,
			check: func(t *testing.T, got interface{}) {
				m, ok := got.(WSMemberUpdateMsg)
				if !ok {
					t.Fatalf("got %T", got)
				}
				if m.Payload.Member.ID != "u2" || !m.Payload.Member.Online {
					t.Errorf("payload = %+v", m.Payload)
				}
			},
		},
		{
			name: "error",
			raw:  `{"type":"error","payload":{"message":"boom"}}`,
			check: func(t *testing.T, got interface{}) {
				if _, ok := got.(WSErrorMsg); !ok {
					t.Fatalf("got %T", got)
				}
			},
		},
		{
			name:    "unknown type is dropped",
			raw:     `{"type":"mystery","payload":{}}`,
			dropped: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env WSMessage
			if err := json.Unmarshal([]byte(tt.raw), &env); err != nil {
				t.Fatalf("unmarshal envelope: %v", err)
			}
			got := c.dispatch(env)
			if tt.dropped {
				if got != nil {
					t.Errorf("dispatch = %v, want nil", got)
				}
				return
			}
			tt.check(t, got)
		})
	}
}
