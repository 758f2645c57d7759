package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected bool
	Room      string
	Messages  int
	Online    int
	Browsing  bool
	Width     int
}

// New creates a status bar model for the given room.
func New(room string) Model {
	return Model{Room: room}
}

// SetCounts updates the message and presence counts.
func (m *Model) SetCounts(messages, online int) {
	m.Messages = messages
	m.Online = online
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	room := theme.StyleHeader.Render("#" + m.Room)
	counts := fmt.Sprintf("%d messages  %d online", m.Messages, m.Online)

	var edge string
	if m.Browsing {
		edge = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("⌃ history")
	} else {
		edge = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("▼ live")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + room + sep + counts + sep + edge

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)

	return bar
}
