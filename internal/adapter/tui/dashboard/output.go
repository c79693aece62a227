package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
)

// OutputModel shows the lines of the last run item in a scrollable pane.
type OutputModel struct {
	Viewport viewport.Model
	content  string
	ready    bool
}

// SetSize sets dimensions.
func (m *OutputModel) SetSize(w, h int) {
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.Viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	m.Viewport.SetContent(m.content)
}

// SetLines replaces the content and scrolls back to the top.
func (m *OutputModel) SetLines(lines []string) {
	m.content = strings.Join(lines, "\n")
	if m.ready {
		m.Viewport.SetContent(m.content)
		m.Viewport.GotoTop()
	}
}

// SetMarkdown renders md with glamour, falling back to the raw text.
func (m *OutputModel) SetMarkdown(md string, width int) {
	out := md
	if width > 0 {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
		if err == nil {
			if rendered, err := r.Render(md); err == nil {
				out = strings.TrimRight(rendered, "\n")
			}
		}
	}
	m.SetLines([]string{out})
}

// Content returns the unrendered text currently shown.
func (m OutputModel) Content() string { return m.content }

// Update handles viewport scrolling.
func (m OutputModel) Update(msg tea.Msg) (OutputModel, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the pane.
func (m OutputModel) View() string {
	if !m.ready {
		return m.content
	}
	return m.Viewport.View()
}
