// Package dashboard implements the read-only Bubble Tea dashboard over a
// stored zeroclaw configuration.
package dashboard

import "zeroclaw/internal/usecase/report"

// RunResultMsg carries the rendered lines of one menu item.
type RunResultMsg struct {
	Item  report.MenuItem
	Lines []string
}
