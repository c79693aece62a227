package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zeroclaw/internal/adapter/tui/theme"
)

// SplitPaneModel lays out two panes side by side. Below
// theme.MinSplitWidth only the left pane is shown.
type SplitPaneModel struct {
	Ratio  float64
	width  int
	height int
}

// NewSplitPane creates a split pane. ratio is the fraction of width for the left pane (0.0–1.0).
func NewSplitPane(ratio float64) SplitPaneModel {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.3
	}
	return SplitPaneModel{Ratio: ratio}
}

// SetSize updates the available dimensions.
func (m *SplitPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Split reports whether both panes fit.
func (m SplitPaneModel) Split() bool {
	return m.width >= theme.MinSplitWidth
}

// LeftWidth returns the width allocated to the left pane.
func (m SplitPaneModel) LeftWidth() int {
	if !m.Split() {
		return m.width
	}
	return int(float64(m.width-1) * m.Ratio)
}

// RightWidth returns the width allocated to the right pane. On narrow
// terminals the right pane takes the full width below the left one.
func (m SplitPaneModel) RightWidth() int {
	if !m.Split() {
		return m.width
	}
	return m.width - 1 - m.LeftWidth()
}

// Height returns the content height.
func (m SplitPaneModel) Height() int {
	return m.height
}

// Render joins left and right content with a vertical divider, or stacks
// them on narrow terminals.
func (m SplitPaneModel) Render(left, right string) string {
	if !m.Split() {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	div := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render("│")
	col := strings.TrimSuffix(strings.Repeat(div+"\n", max(m.height, 1)), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.LeftWidth()).Render(left), col, right)
}
