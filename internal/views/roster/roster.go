// Package roster provides the member list overlay for the current room.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/theme"
)

// LoadedMsg is returned after fetching the member list from the backend.
type LoadedMsg struct {
	Members []client.Member
	Err     error
}

// KeyMap holds the roster-specific key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default roster key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev member"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next member"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Model is the roster overlay model.
type Model struct {
	http *client.HTTPClient
	room string
	keys KeyMap

	members []client.Member
	cursor  int
	loading bool
	errMsg  string
}

// New creates a roster model in the loading state.
func New(http *client.HTTPClient, room string) Model {
	return Model{http: http, room: room, keys: DefaultKeyMap(), loading: true}
}

// Init fires the member fetch.
func (m Model) Init() tea.Cmd {
	return fetch(m.http, m.room)
}

func fetch(http *client.HTTPClient, room string) tea.Cmd {
	return func() tea.Msg {
		members, err := http.Roster(room)
		return LoadedMsg{Members: members, Err: err}
	}
}

// SetMembers replaces the whole roster, e.g. from a snapshot payload.
func (m *Model) SetMembers(members []client.Member) {
	m.members = append([]client.Member(nil), members...)
	m.sort()
	m.loading = false
}

// SetMember upserts one member, called from the parent app on member_update
// messages.
func (m *Model) SetMember(member client.Member) {
	for i := range m.members {
		if m.members[i].ID == member.ID {
			m.members[i] = member
			m.sort()
			return
		}
	}
	m.members = append(m.members, member)
	m.sort()
}

func (m *Model) sort() {
	sort.Slice(m.members, func(i, j int) bool {
		if m.members[i].Online != m.members[j].Online {
			return m.members[i].Online
		}
		return m.members[i].Name < m.members[j].Name
	})
	if m.cursor >= len(m.members) {
		m.cursor = len(m.members) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles roster messages and key presses while the overlay is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.SetMembers(msg.Members)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.members)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// View renders the roster panel.
func (m Model) View(width int) string {
	innerW := width - 6
	if innerW < 24 {
		innerW = 24
	}

	var lines []string
	lines = append(lines, theme.StyleHeader.Render(fmt.Sprintf("Members of #%s", m.room)))

	switch {
	case m.loading:
		lines = append(lines, theme.StyleDimmed.Render("Loading..."))
	case m.errMsg != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorDanger).Render(m.errMsg))
	case len(m.members) == 0:
		lines = append(lines, theme.StyleDimmed.Render("Nobody here"))
	default:
		for i, member := range m.members {
			prefix := "  "
			if i == m.cursor {
				prefix = theme.StyleSelected.Render("> ")
			}
			glyphColor := theme.ColorDimmed
			if member.Online {
				glyphColor = theme.ColorHealthy
			}
			glyph := lipgloss.NewStyle().Foreground(glyphColor).Render(theme.PresenceGlyph(member.Online))
			name := lipgloss.NewStyle().Foreground(theme.SenderColor(member.ID)).Render(member.Name)
			lines = append(lines, prefix+glyph+" "+name)
		}
	}

	lines = append(lines, "")
	lines = append(lines, theme.StyleDimmed.Render("j/k:move  esc:close"))

	panel := lipgloss.NewStyle().
		Width(innerW).
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder)

	return panel.Render(strings.Join(lines, "\n"))
}
