package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/usecase/report"
)

// runItemCmd renders item asynchronously.
func runItemCmd(ctx context.Context, runner *report.Runner, item report.MenuItem, cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		return RunResultMsg{Item: item, Lines: runner.Run(ctx, item, cfg)}
	}
}
