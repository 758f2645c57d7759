package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/reconcile"
	"github.com/ripple-chat/tui/internal/theme"
)

// msgRenderer turns feed messages into styled terminal blocks. It is held by
// pointer so width and selection changes reach animations already in flight.
type msgRenderer struct {
	width    int
	selected string
	markdown bool
	gr       *glamour.TermRenderer
	local    string
}

func newMsgRenderer(localUser string, markdown bool) *msgRenderer {
	r := &msgRenderer{markdown: markdown, local: localUser}
	r.setWidth(80)
	return r
}

func (r *msgRenderer) setWidth(w int) {
	if w < 20 {
		w = 20
	}
	if w == r.width {
		return
	}
	r.width = w
	if r.markdown {
		r.gr, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(w-4),
		)
	}
}

// Render implements reconcile.ItemRenderer. Vertical reveal during the
// animation is handled by the list itself, so progress only tints the block.
func (r *msgRenderer) Render(item reconcile.Item, progress float64, removing bool) string {
	msg, ok := item.(*client.Message)
	if !ok || msg == nil {
		return ""
	}

	header := r.header(msg)
	body := r.body(msg)
	block := header + "\n" + body

	if removing || progress < 1 {
		block = theme.StyleDimmed.Render(block)
	}
	if msg.MsgID == r.selected && !removing {
		block = theme.StyleSelected.Render(block)
	}
	return block
}

func (r *msgRenderer) header(msg *client.Message) string {
	name := msg.SenderName
	if name == "" {
		name = msg.Sender
	}
	nameStyle := lipgloss.NewStyle().Foreground(theme.SenderColor(msg.Sender)).Bold(true)
	if msg.Sender == r.local {
		name += " (you)"
	}

	parts := []string{
		nameStyle.Render(name),
		theme.StyleDimmed.Render(msg.CreatedAt.Format("15:04")),
	}
	if msg.EditedAt != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorEdited).Render("(edited)"))
	}
	return strings.Join(parts, " ")
}

func (r *msgRenderer) body(msg *client.Message) string {
	if msg.Deleted {
		return lipgloss.NewStyle().
			Foreground(theme.ColorDeleted).
			Italic(true).
			Render("(message removed)")
	}
	body := msg.Body
	if r.gr != nil {
		if out, err := r.gr.Render(body); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	return lipgloss.NewStyle().Foreground(theme.ColorDefault).Render(body)
}
