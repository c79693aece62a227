package dashboard

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zeroclaw/internal/adapter/tui/components"
	"zeroclaw/internal/adapter/tui/theme"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/usecase/report"
)

// Ensure *DashboardModel satisfies tea.Model.
var _ tea.Model = (*DashboardModel)(nil)

// DashboardModel is the root Bubble Tea model for the read-only dashboard.
type DashboardModel struct {
	ctx    context.Context
	runner *report.Runner
	cfg    *config.Config

	menu     []report.MenuItem
	selected int
	shown    report.MenuItem
	running  bool

	output  OutputModel
	split   components.SplitPaneModel
	spinner spinner.Model

	width  int
	height int
}

// NewDashboardModel creates the dashboard over cfg.
func NewDashboardModel(ctx context.Context, runner *report.Runner, cfg *config.Config) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorInfo)

	m := &DashboardModel{
		ctx:     ctx,
		runner:  runner,
		cfg:     cfg,
		menu:    report.Menu(),
		split:   components.NewSplitPane(0.28),
		spinner: s,
	}
	m.output.SetLines(runner.Run(ctx, report.MenuHome, cfg))
	return m
}

// Selected returns the highlighted menu item.
func (m *DashboardModel) Selected() report.MenuItem {
	return m.menu[m.selected]
}

// Init does nothing; the home view is rendered on construction.
func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RunResultMsg:
		m.running = false
		m.show(msg.Item, msg.Lines)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.menu)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if m.running {
			return m, nil
		}
		m.running = true
		return m, tea.Batch(m.spinner.Tick, runItemCmd(m.ctx, m.runner, m.Selected(), m.cfg))
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

// show replaces the output pane. The home view is rendered as markdown.
func (m *DashboardModel) show(item report.MenuItem, lines []string) {
	m.shown = item
	if item != report.MenuHome || len(lines) == 0 {
		m.output.SetLines(lines)
		return
	}
	md := "# " + lines[0] + "\n\n" + strings.Join(lines[1:], "\n")
	m.output.SetMarkdown(md, m.split.RightWidth()-2)
}

func (m *DashboardModel) layout() {
	contentH := max(m.height-2, 5)
	m.split.SetSize(m.width, contentH)
	outH := contentH
	if !m.split.Split() {
		outH = max(contentH-len(m.menu)-1, 3)
	}
	m.output.SetSize(m.split.RightWidth(), outH)
	if m.shown == report.MenuHome {
		m.show(report.MenuHome, m.runner.Run(m.ctx, report.MenuHome, m.cfg))
	}
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	title := theme.WizardTitle.Render("ZeroClaw Dashboard")
	body := m.split.Render(m.menuView(), m.output.View())

	sb := components.NewStatusBar(
		components.KeyHint{Key: "↑/k ↓/j", Desc: "Move"},
		components.KeyHint{Key: "Enter", Desc: "Run"},
		components.KeyHint{Key: "PgUp/PgDn", Desc: "Scroll"},
		components.KeyHint{Key: "q", Desc: "Quit"},
	)
	if m.running {
		sb.Extra = m.spinner.View() + " Running " + m.Selected().Title()
	}
	sb.SetWidth(m.width)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, sb.View())
}

func (m *DashboardModel) menuView() string {
	var b strings.Builder
	for i, item := range m.menu {
		if i == m.selected {
			b.WriteString(theme.TextInfo.Render(theme.SymbolArrowR+" ") + theme.Bold.Render(item.Title()))
		} else {
			b.WriteString("  " + item.Title())
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
