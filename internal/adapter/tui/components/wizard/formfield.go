package wizard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zeroclaw/internal/adapter/tui/theme"
)

// FormFieldModel wraps a textinput for one free-text wizard answer.
type FormFieldModel struct {
	Input       textinput.Model
	Label       string
	Description string
	IsSecret    bool
	ErrMsg      string
}

// NewTextField creates a focused text input holding value.
func NewTextField(label, placeholder, value string) FormFieldModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 60
	ti.PromptStyle = theme.InputPrompt
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.SetValue(value)
	ti.Focus()

	return FormFieldModel{Input: ti, Label: label}
}

// NewSecretField creates a masked input holding value.
func NewSecretField(label, placeholder, value string) FormFieldModel {
	f := NewTextField(label, placeholder, value)
	f.Input.EchoMode = textinput.EchoPassword
	f.Input.EchoCharacter = '•'
	f.IsSecret = true
	return f
}

// SetError displays a validation error message.
func (m *FormFieldModel) SetError(msg string) {
	m.ErrMsg = msg
}

// ClearError clears the validation error.
func (m *FormFieldModel) ClearError() {
	m.ErrMsg = ""
}

// Value returns the current input value.
func (m FormFieldModel) Value() string {
	return strings.TrimSpace(m.Input.Value())
}

// Update forwards editing keys to the input. Submission is left to the
// owning model.
func (m FormFieldModel) Update(msg tea.Msg) (FormFieldModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// View renders the form field.
func (m FormFieldModel) View() string {
	parts := []string{theme.Bold.Render(m.Label)}
	if m.Description != "" {
		parts = append(parts, theme.TextMuted.Render(m.Description))
	}
	parts = append(parts, "", m.Input.View())

	if m.ErrMsg != "" {
		parts = append(parts, theme.TextError.Render(theme.SymbolError+" "+m.ErrMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
