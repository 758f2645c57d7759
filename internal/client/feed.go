package client

import "github.com/ripple-chat/tui/internal/reconcile"

// Feed is the authoritative ordered message list for one room, oldest
// first. It is mutated only from the bubbletea update loop, which
// serializes change events; the reconcile driver reads it through the
// Controller interface and never mutates it.
type Feed struct {
	msgs []*Message
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Items implements reconcile.Controller.
func (f *Feed) Items() []reconcile.Item {
	out := make([]reconcile.Item, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m
	}
	return out
}

// Len returns the number of messages.
func (f *Feed) Len() int { return len(f.msgs) }

// At returns the message at chronological index i, or nil out of range.
func (f *Feed) At(i int) *Message {
	if i < 0 || i >= len(f.msgs) {
		return nil
	}
	return f.msgs[i]
}

// Insert places m at chronological index i, clamping i into [0, Len].
func (f *Feed) Insert(i int, m *Message) {
	if i < 0 {
		i = 0
	}
	if i > len(f.msgs) {
		i = len(f.msgs)
	}
	f.msgs = append(f.msgs[:i], append([]*Message{m}, f.msgs[i:]...)...)
}

// Remove drops the message at chronological index i and returns it, or nil
// if i is out of range.
func (f *Feed) Remove(i int) *Message {
	if i < 0 || i >= len(f.msgs) {
		return nil
	}
	m := f.msgs[i]
	f.msgs = append(f.msgs[:i], f.msgs[i+1:]...)
	return m
}

// ReplaceAll swaps in a whole new list, oldest first.
func (f *Feed) ReplaceAll(msgs []*Message) {
	f.msgs = make([]*Message, len(msgs))
	copy(f.msgs, msgs)
}

// Prepend splices an older history page in front of the list.
func (f *Feed) Prepend(msgs []*Message) {
	merged := make([]*Message, 0, len(msgs)+len(f.msgs))
	merged = append(merged, msgs...)
	merged = append(merged, f.msgs...)
	f.msgs = merged
}
