package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zeroclaw/internal/adapter/tui/theme"
)

// KeyHint represents a single keybinding hint shown in the status bar.
type KeyHint struct {
	Key  string // e.g. "Enter"
	Desc string // e.g. "Select"
}

// StatusBarModel renders a bottom status bar with keybinding hints on the
// left and a short status on the right.
type StatusBarModel struct {
	Hints []KeyHint
	Extra string
	width int
}

// NewStatusBar creates a status bar with the given hints.
func NewStatusBar(hints ...KeyHint) StatusBarModel {
	return StatusBarModel{Hints: hints}
}

// SetWidth updates the available width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single line.
func (m StatusBarModel) View() string {
	hints := make([]string, 0, len(m.Hints))
	for _, h := range m.Hints {
		hints = append(hints, theme.StatusKey.Render(h.Key)+": "+h.Desc)
	}
	left := strings.Join(hints, "  "+theme.Dim.Render("|")+"  ")

	var right string
	if m.Extra != "" {
		right = theme.TextInfo.Render(m.Extra)
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
