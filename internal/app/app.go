package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/reconcile"
	"github.com/ripple-chat/tui/internal/theme"
	"github.com/ripple-chat/tui/internal/views/composer"
	"github.com/ripple-chat/tui/internal/views/debug"
	"github.com/ripple-chat/tui/internal/views/detail"
	"github.com/ripple-chat/tui/internal/views/messages"
	"github.com/ripple-chat/tui/internal/views/roster"
	"github.com/ripple-chat/tui/internal/views/status"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDetail
	OverlayRoster
	OverlayDebug
)

// Options configures the root model.
type Options struct {
	Room      string
	LocalUser string
	Markdown  bool

	InsertDuration time.Duration
	RemoveDuration time.Duration
}

// historyLoadedMsg carries the result of an older-history fetch.
type historyLoadedMsg struct {
	Page *client.HistoryPage
	Err  error
}

// viewportSurface adapts a bubbles viewport to the scroll surface the
// reconciler's intent tracker reads. Offset at MaxExtent means the newest
// message is in view.
type viewportSurface struct {
	vp *viewport.Model
}

func (s viewportSurface) Offset() int { return s.vp.YOffset }

func (s viewportSurface) MaxExtent() int {
	ext := s.vp.TotalLineCount() - s.vp.Height
	if ext < 0 {
		ext = 0
	}
	return ext
}

// Model is the root Bubble Tea model.
type Model struct {
	ws     *client.WSClient
	http   *client.HTTPClient
	ctx    context.Context
	cancel context.CancelFunc

	opts   Options
	keys   KeyMap
	width  int
	height int

	feed     *client.Feed
	driver   *reconcile.Driver
	list     *messages.Model
	renderer *msgRenderer
	vp       *viewport.Model

	// Navigation.
	selected int // logical index, -1 when nothing selected
	overlay  Overlay

	// Sub-views.
	statusBar status.Model
	debugLog  *debug.Model
	roster    roster.Model
	composer  composer.Model
	detailMsg *client.Message

	members   map[string]client.Member
	connected bool
	loading   bool // history fetch in flight
	err       error
}

// New creates the root model.
func New(ws *client.WSClient, http *client.HTTPClient, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	feed := client.NewFeed()
	renderer := newMsgRenderer(opts.LocalUser, opts.Markdown)

	source := func(visual int) reconcile.Item {
		logical := feed.Len() - 1 - visual
		if msg := feed.At(logical); msg != nil {
			return msg
		}
		return nil
	}
	list := messages.New(source, renderer.Render)

	vp := viewport.New(80, 24)
	dbg := debug.New()

	m := Model{
		ws:        ws,
		http:      http,
		ctx:       ctx,
		cancel:    cancel,
		opts:      opts,
		keys:      DefaultKeyMap(),
		feed:      feed,
		list:      list,
		renderer:  renderer,
		vp:        &vp,
		selected:  -1,
		statusBar: status.New(opts.Room),
		debugLog:  &dbg,
		roster:    roster.New(http, opts.Room),
		composer:  composer.New(http, opts.Room),
		members:   make(map[string]client.Member),
	}

	m.driver = reconcile.New(reconcile.Options{
		Controller:     feed,
		List:           list,
		Scroll:         viewportSurface{vp: m.vp},
		LocalUser:      opts.LocalUser,
		Renderer:       renderer.Render,
		InsertDuration: opts.InsertDuration,
		RemoveDuration: opts.RemoveDuration,
		Trace:          func(format string, args ...any) { dbg.Add("recon", fmt.Sprintf(format, args...)) },
	})
	return m
}

// Err returns the error that terminated the session, if any.
func (m Model) Err() error { return m.err }

// Init starts the WebSocket connection and the roster fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ws.Listen(m.ctx), m.roster.Init())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = m.feedHeight()
		m.renderer.setWidth(msg.Width)
		m.composer.SetWidth(msg.Width)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case messages.FrameMsg:
		cmd := m.list.Update(msg)
		m.refresh()
		return m, cmd

	case client.WSConnectedMsg:
		m.connected = true
		m.statusBar.Connected = true
		m.debugLog.Add("ws", "connected")
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSDisconnectedMsg:
		m.connected = false
		m.statusBar.Connected = false
		if msg.Err != nil {
			m.debugLog.Add("ws", "disconnected: "+msg.Err.Error())
		}
		return m, m.ws.Listen(m.ctx)

	case client.WSSnapshotMsg:
		m.feed.ReplaceAll(msg.Payload.Messages)
		if err := m.driver.Apply(reconcile.ChangeEvent{Kind: reconcile.EventReplace}); err != nil {
			return m.fatal(err)
		}
		m.setMembers(msg.Payload.Members)
		m.debugLog.Add("ws", fmt.Sprintf("snapshot: %d messages", len(msg.Payload.Messages)))
		m.afterChange()
		return m, tea.Batch(m.list.StartClock(), m.ws.ReadLoop(m.ctx))

	case client.WSMessageAddedMsg:
		p := msg.Payload
		m.feed.Insert(p.Index, p.Message)
		if err := m.driver.Apply(reconcile.ChangeEvent{
			Kind:  reconcile.EventInsert,
			Index: p.Index,
			Item:  p.Message,
		}); err != nil {
			return m.fatal(err)
		}
		m.afterChange()
		return m, tea.Batch(m.list.StartClock(), m.ws.ReadLoop(m.ctx))

	case client.WSMessageRemovedMsg:
		p := msg.Payload
		m.feed.Remove(p.Index)
		if err := m.driver.Apply(reconcile.ChangeEvent{
			Kind:  reconcile.EventRemove,
			Index: p.Index,
			Item:  p.Message,
		}); err != nil {
			return m.fatal(err)
		}
		m.afterChange()
		return m, tea.Batch(m.list.StartClock(), m.ws.ReadLoop(m.ctx))

	case client.WSMemberUpdateMsg:
		m.members[msg.Payload.Member.ID] = msg.Payload.Member
		m.roster.SetMember(msg.Payload.Member)
		m.updateCounts()
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSErrorMsg:
		m.debugLog.Add("err", string(msg.Raw))
		return m, m.ws.ReadLoop(m.ctx)

	case composer.SentMsg:
		if msg.Err != nil {
			m.debugLog.Add("err", "send failed: "+msg.Err.Error())
		} else if msg.Msg != nil {
			m.debugLog.Add("send", msg.Msg.MsgID)
		}
		return m, nil

	case roster.LoadedMsg:
		var cmd tea.Cmd
		m.roster, cmd = m.roster.Update(msg)
		if msg.Err == nil {
			m.setMembers(msg.Members)
		}
		return m, cmd

	case historyLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.debugLog.Add("err", "history: "+msg.Err.Error())
			return m, nil
		}
		if msg.Page == nil || len(msg.Page.Messages) == 0 {
			return m, nil
		}
		m.feed.Prepend(msg.Page.Messages)
		if err := m.driver.Apply(reconcile.ChangeEvent{Kind: reconcile.EventReplace}); err != nil {
			return m.fatal(err)
		}
		m.debugLog.Add("ws", fmt.Sprintf("history: +%d messages", len(msg.Page.Messages)))
		m.afterChange()
		return m, m.list.StartClock()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composer.Focused() {
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Escape):
			m.composer.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}

	if m.overlay != OverlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Compose):
		return m, m.composer.Focus()

	case key.Matches(msg, m.keys.Up):
		m.vp.LineUp(1)
		m.noteScroll(reconcile.DirAway)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.vp.LineDown(1)
		m.noteScroll(reconcile.DirToEdge)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.vp.LineUp(m.vp.Height)
		m.noteScroll(reconcile.DirAway)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.vp.LineDown(m.vp.Height)
		m.noteScroll(reconcile.DirToEdge)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.vp.GotoBottom()
		m.noteScroll(reconcile.DirToEdge)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(+1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.setSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if sel := m.feed.At(m.selected); sel != nil {
			m.detailMsg = sel
			m.overlay = OverlayDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Roster):
		m.overlay = OverlayRoster
		return m, m.roster.Init()

	case key.Matches(msg, m.keys.Debug):
		m.overlay = OverlayDebug
		return m, nil

	case key.Matches(msg, m.keys.History):
		return m, m.loadHistory()

	case key.Matches(msg, m.keys.Resync):
		if err := m.ws.Resync(); err != nil {
			m.debugLog.Add("err", "resync: "+err.Error())
		} else {
			m.debugLog.Add("ws", "resync requested")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.overlay = OverlayNone
		m.detailMsg = nil
		return m, nil
	}

	switch m.overlay {
	case OverlayDebug:
		switch msg.String() {
		case "k", "up":
			m.debugLog.ScrollUp(1)
		case "j", "down":
			m.debugLog.ScrollDown(1)
		}
	case OverlayRoster:
		var cmd tea.Cmd
		m.roster, cmd = m.roster.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Connecting..."
	}

	body := m.vp.View()
	switch m.overlay {
	case OverlayDetail:
		body = detail.New(m.detailMsg).View()
	case OverlayRoster:
		body = m.roster.View(m.width)
	case OverlayDebug:
		body = m.debugLog.View(m.width, m.feedHeight())
	}

	sections := []string{
		m.statusBar.View(),
		body,
		m.composer.View(m.width),
		theme.StyleDimmed.Render("  i:compose  j/k:select  ↑/↓:scroll  m:members  d:debug  u:history  r:resync  q:quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// feedHeight is the viewport height left after the surrounding chrome.
func (m Model) feedHeight() int {
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

// refresh re-renders the animated list into the viewport, keeping the live
// edge pinned unless the user has scrolled away.
func (m *Model) refresh() {
	follow := !m.driver.Tracker().AwayFromEdge()
	m.vp.SetContent(m.list.View())
	if follow {
		m.vp.GotoBottom()
	}
	m.statusBar.Browsing = m.driver.Tracker().AwayFromEdge()
}

func (m *Model) afterChange() {
	m.clampSelection()
	m.updateCounts()
	m.refresh()
}

func (m *Model) noteScroll(dir reconcile.Direction) {
	m.driver.Tracker().NotifyScroll(dir)
	m.statusBar.Browsing = m.driver.Tracker().AwayFromEdge()
}

func (m *Model) updateCounts() {
	online := 0
	for _, mem := range m.members {
		if mem.Online {
			online++
		}
	}
	m.statusBar.SetCounts(m.feed.Len(), online)
}

func (m *Model) setMembers(members []client.Member) {
	for _, mem := range members {
		m.members[mem.ID] = mem
	}
	m.roster.SetMembers(members)
	m.updateCounts()
}

// moveSelection shifts the selected message by delta logical positions.
// Starting from nothing selects the newest message; moving past the newest
// deselects again.
func (m *Model) moveSelection(delta int) {
	n := m.feed.Len()
	if n == 0 {
		return
	}
	next := m.selected + delta
	if m.selected < 0 {
		next = n - 1
	}
	if next >= n {
		next = -1
	}
	if next < 0 && delta < 0 {
		next = 0
	}
	m.setSelection(next)
}

func (m *Model) setSelection(logical int) {
	m.selected = logical
	m.renderer.selected = ""
	if msg := m.feed.At(logical); msg != nil {
		m.renderer.selected = msg.MsgID
	}
	m.refresh()
}

// clampSelection follows the selected message across feed mutations by ID,
// dropping the selection when the message is gone.
func (m *Model) clampSelection() {
	if m.selected < 0 {
		return
	}
	if msg := m.feed.At(m.selected); msg != nil && msg.MsgID == m.renderer.selected {
		return
	}
	for i := 0; i < m.feed.Len(); i++ {
		if msg := m.feed.At(i); msg != nil && msg.MsgID == m.renderer.selected {
			m.selected = i
			return
		}
	}
	m.selected = -1
	m.renderer.selected = ""
}

func (m *Model) loadHistory() tea.Cmd {
	if m.loading {
		return nil
	}
	beforeID := ""
	if oldest := m.feed.At(0); oldest != nil {
		beforeID = oldest.MsgID
	}
	m.loading = true
	http, room := m.http, m.opts.Room
	return func() tea.Msg {
		page, err := http.History(room, beforeID, 50)
		return historyLoadedMsg{Page: page, Err: err}
	}
}

func (m Model) fatal(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.cancel()
	return m, tea.Quit
}
