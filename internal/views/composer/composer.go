// Package composer provides the message input line.
package composer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/theme"
)

// SentMsg reports the outcome of a send attempt.
type SentMsg struct {
	Msg *client.Message
	Err error
}

// Model wraps a textinput and the HTTP send path.
type Model struct {
	input textinput.Model
	http  *client.HTTPClient
	room  string
}

// New creates a composer for the given room.
func New(http *client.HTTPClient, room string) Model {
	ti := textinput.New()
	ti.Placeholder = "Message #" + room
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.ColorHealthy)
	return Model{input: ti, http: http, room: room}
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// SetWidth resizes the input line.
func (m *Model) SetWidth(w int) {
	m.input.Width = w - 4
}

// Update handles key events. Enter submits the current value; the send
// happens off the update loop and comes back as a SentMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		body := strings.TrimSpace(m.input.Value())
		if body == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.send(body)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) send(body string) tea.Cmd {
	http, room := m.http, m.room
	return func() tea.Msg {
		sent, err := http.Send(room, body)
		return SentMsg{Msg: sent, Err: err}
	}
}

// View renders the input line.
func (m Model) View(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(theme.ColorBorder).
		Render(m.input.View())
}
