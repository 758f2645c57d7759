package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/reconcile"
)

func mkMsg(id, sender, body string) *client.Message {
	return &client.Message{
		MsgID:     id,
		Sender:    sender,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(nil, nil, Options{Room: "general", LocalUser: "me"})
	return resized(t, m)
}

func resized(t *testing.T, m Model) Model {
	t.Helper()
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return asModel(t, tm)
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	m, ok := tm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want app.Model", tm)
	}
	return m
}

func snapshotted(t *testing.T, m Model, msgs ...*client.Message) Model {
	t.Helper()
	tm, _ := m.Update(client.WSSnapshotMsg{Payload: client.SnapshotPayload{
		Room:     "general",
		Messages: msgs,
	}})
	return asModel(t, tm)
}

func TestSnapshotPopulatesFeed(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "hi"), mkMsg("b", "u2", "hey"))

	if m.feed.Len() != 2 {
		t.Fatalf("feed length = %d, want 2", m.feed.Len())
	}
	if got := len(m.driver.Snapshot()); got != 2 {
		t.Errorf("driver snapshot length = %d, want 2", got)
	}
	if m.list.LiveCount() != 2 {
		t.Errorf("live slots = %d, want 2", m.list.LiveCount())
	}
}

func TestMessageAddedFlowsThroughDriver(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "hi"), mkMsg("b", "u2", "hey"))

	tm, _ := m.Update(client.WSMessageAddedMsg{Payload: client.MessageAddedPayload{
		Index:   2,
		Message: mkMsg("c", "u1", "newest"),
	}})
	m = asModel(t, tm)

	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if m.feed.Len() != 3 {
		t.Fatalf("feed length = %d, want 3", m.feed.Len())
	}
	if m.list.LiveCount() != 3 {
		t.Errorf("live slots = %d, want 3", m.list.LiveCount())
	}
}

func TestMessageRemovedFlowsThroughDriver(t *testing.T) {
	m := newTestModel(t)
	a, b := mkMsg("a", "u1", "hi"), mkMsg("b", "u2", "hey")
	m = snapshotted(t, m, a, b)

	tm, _ := m.Update(client.WSMessageRemovedMsg{Payload: client.MessageRemovedPayload{
		Index:   0,
		Message: a,
	}})
	m = asModel(t, tm)

	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if m.feed.Len() != 1 {
		t.Fatalf("feed length = %d, want 1", m.feed.Len())
	}
	if m.list.LiveCount() != 1 {
		t.Errorf("live slots = %d, want 1", m.list.LiveCount())
	}
}

func TestRemoveIdentityMismatchIsFatal(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "hi"), mkMsg("b", "u2", "hey"))

	tm, _ := m.Update(client.WSMessageRemovedMsg{Payload: client.MessageRemovedPayload{
		Index:   0,
		Message: mkMsg("zzz", "u9", "never existed"),
	}})
	m = asModel(t, tm)

	if !errors.Is(m.Err(), reconcile.ErrContract) {
		t.Fatalf("error = %v, want ErrContract", m.Err())
	}
}

func TestSelectionFollowsMessageAcrossInserts(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "1"), mkMsg("b", "u2", "2"), mkMsg("c", "u1", "3"))

	m.moveSelection(-1) // newest
	if m.selected != 2 || m.renderer.selected != "c" {
		t.Fatalf("selected = %d (%q), want 2 (c)", m.selected, m.renderer.selected)
	}

	tm, _ := m.Update(client.WSMessageAddedMsg{Payload: client.MessageAddedPayload{
		Index:   0,
		Message: mkMsg("z", "u2", "older, late arrival"),
	}})
	m = asModel(t, tm)

	if m.selected != 3 || m.renderer.selected != "c" {
		t.Errorf("selected = %d (%q), want 3 (c)", m.selected, m.renderer.selected)
	}
}

func TestSelectionDropsWithRemovedMessage(t *testing.T) {
	m := newTestModel(t)
	a, b := mkMsg("a", "u1", "1"), mkMsg("b", "u2", "2")
	m = snapshotted(t, m, a, b)

	m.setSelection(0)
	tm, _ := m.Update(client.WSMessageRemovedMsg{Payload: client.MessageRemovedPayload{
		Index:   0,
		Message: a,
	}})
	m = asModel(t, tm)

	if m.selected != -1 {
		t.Errorf("selected = %d, want -1 after removal", m.selected)
	}
}

func TestMoveSelectionBounds(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "1"), mkMsg("b", "u2", "2"))

	m.moveSelection(-1)
	m.moveSelection(-1)
	m.moveSelection(-1) // clamps at oldest
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}

	m.moveSelection(+1)
	m.moveSelection(+1) // past newest deselects
	if m.selected != -1 {
		t.Errorf("selected = %d, want -1", m.selected)
	}
}

func TestViewShowsStatusAndHelp(t *testing.T) {
	m := newTestModel(t)
	m = snapshotted(t, m, mkMsg("a", "u1", "hello there"))

	v := m.View()
	if !strings.Contains(v, "#general") {
		t.Error("view should contain the room name")
	}
	if !strings.Contains(v, "q:quit") {
		t.Error("view should contain the help line")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(nil, nil, Options{Room: "general"})
	if v := m.View(); !strings.Contains(v, "Connecting") {
		t.Errorf("zero-size view = %q, want connecting placeholder", v)
	}
}
