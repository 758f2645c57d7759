// Package detail renders the message info flyout overlay.
package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/theme"
)

const (
	panelWidth = 64
	labelWidth = 12
)

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed).
			Width(labelWidth)

	styleValue = lipgloss.NewStyle().
			Foreground(theme.ColorBright)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)

	styleFooter = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed)

	styleBody = lipgloss.NewStyle().
			Foreground(theme.ColorDefault)
)

// Model holds the state for the detail overlay.
type Model struct {
	Message *client.Message
}

// New creates a detail model for the given message.
func New(msg *client.Message) Model {
	return Model{Message: msg}
}

// View renders the detail panel. Returns an empty string if no message is set.
func (m Model) View() string {
	if m.Message == nil {
		return ""
	}
	inner := m.renderInner(m.Message)
	return stylePanel.Width(panelWidth).Render(inner)
}

func (m Model) renderInner(msg *client.Message) string {
	var b strings.Builder

	// Title row.
	sender := lipgloss.NewStyle().
		Foreground(theme.SenderColor(msg.Sender)).
		Bold(true).
		Render(DisplayName(msg))
	b.WriteString(styleTitle.Render("Message from ") + sender + "\n")
	b.WriteString(strings.Repeat("─", panelWidth-4) + "\n")

	writeRow(&b, "ID", truncate(msg.MsgID, 36))
	writeRow(&b, "Sender", msg.Sender)

	if !msg.CreatedAt.IsZero() {
		writeRow(&b, "Sent", msg.CreatedAt.Format("15:04:05")+"  "+formatAge(msg.CreatedAt))
	}
	if msg.EditedAt != nil {
		edited := msg.EditedAt.Format("15:04:05") + "  " + formatAge(*msg.EditedAt)
		writeRow(&b, "Edited", lipgloss.NewStyle().Foreground(theme.ColorEdited).Render(edited))
	}
	if msg.Deleted {
		writeRow(&b, "State", lipgloss.NewStyle().Foreground(theme.ColorDeleted).Render("deleted"))
	}

	// Raw body, unwrapped markdown.
	b.WriteString("\n")
	body := msg.Body
	if msg.Deleted && body == "" {
		body = "(message removed)"
	}
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(styleBody.Render(truncate(line, panelWidth-4)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styleFooter.Render("[esc] close"))

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label+":") + styleValue.Render(value) + "\n")
}

// DisplayName returns a human-readable label for a message's sender,
// preferring the display name over the raw sender ID.
func DisplayName(msg *client.Message) string {
	if msg.SenderName != "" {
		return msg.SenderName
	}
	return msg.Sender
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds ago", int(d.Minutes()), int(d.Seconds())%60)
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm ago", h, m)
	}
}
