// Package wizard provides TUI components for the onboarding wizard.
package wizard

import (
	"fmt"
	"strings"

	"zeroclaw/internal/adapter/tui/theme"
)

// StepIndicatorModel displays progress as "Step 3/27: ProviderTierSelection"
// above a progress bar.
type StepIndicatorModel struct {
	names   []string
	current int
	width   int
}

// NewStepIndicator creates a step indicator over the named steps.
func NewStepIndicator(names []string) StepIndicatorModel {
	return StepIndicatorModel{names: names}
}

// SetWidth sets the rendering width.
func (m *StepIndicatorModel) SetWidth(w int) {
	m.width = w
}

// SetCurrent sets the active step index. Out-of-range values are ignored.
func (m *StepIndicatorModel) SetCurrent(i int) {
	if i >= 0 && i < len(m.names) {
		m.current = i
	}
}

// Current returns the active step index.
func (m StepIndicatorModel) Current() int { return m.current }

// View renders the step indicator.
func (m StepIndicatorModel) View() string {
	if len(m.names) == 0 || m.width < 20 {
		return ""
	}

	header := theme.WizardStepActive.Render(
		fmt.Sprintf("Step %d/%d: %s", m.current+1, len(m.names), m.names[m.current]),
	)

	barWidth := max(m.width-10, 10)
	pct := float64(m.current) / float64(max(len(m.names)-1, 1))
	filled := min(int(pct*float64(barWidth)), barWidth)

	bar := theme.ProgressFull.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("░", barWidth-filled))
	return header + "\n" + bar + theme.TextMuted.Render(fmt.Sprintf(" %d%%", int(pct*100)))
}
