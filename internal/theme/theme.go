// Package theme provides the Lip Gloss color palette and reusable styles
// for the Ripple chat TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Sender colors, assigned by hashing the sender ID so a participant keeps
// one color for the whole session.
var senderPalette = []lipgloss.Color{
	lipgloss.Color("#a855f7"),
	lipgloss.Color("#3b82f6"),
	lipgloss.Color("#06b6d4"),
	lipgloss.Color("#22c55e"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ec4899"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
}

// Message state colors.
var (
	ColorEdited  = lipgloss.Color("#d97706")
	ColorDeleted = lipgloss.Color("#4b5563")
	ColorSystem  = lipgloss.Color("#7c3aed")
	ColorDefault = lipgloss.Color("#9ca3af")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorBg      = lipgloss.Color("#111827")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// SenderColor returns a stable color for a sender ID.
func SenderColor(id string) lipgloss.Color {
	if id == "" {
		return ColorDefault
	}
	var h uint32
	for i := 0; i < len(id); i++ {
		h = h*31 + uint32(id[i])
	}
	return senderPalette[h%uint32(len(senderPalette))]
}

// PresenceGlyph returns the glyph for a member's online state.
func PresenceGlyph(online bool) string {
	if online {
		return "●"
	}
	return "○"
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)
