package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	onboard "zeroclaw/cmd/zeroclaw/setup"
	"zeroclaw/internal/adapter/tui/components"
	"zeroclaw/internal/adapter/tui/components/wizard"
	"zeroclaw/internal/adapter/tui/theme"
	"zeroclaw/internal/adapter/tui/uxerror"
)

// WizardModel is the root Bubble Tea model for the onboarding wizard.
type WizardModel struct {
	ctx     context.Context
	answers *onboard.Answers
	lookup  onboard.CatalogLookup

	steps   wizard.StepIndicatorModel
	field   wizard.FormFieldModel
	focused bool
	spinner spinner.Model

	// catalogErr explains a failed live fetch on the model screen.
	catalogErr *uxerror.FriendlyError

	width  int
	height int
}

// NewWizardModel creates the wizard over answers. lookup serves the live
// model catalog; nil falls back to the curated lists.
func NewWizardModel(ctx context.Context, answers *onboard.Answers, lookup onboard.CatalogLookup) WizardModel {
	var names []string
	for _, s := range onboard.Steps() {
		names = append(names, s.String())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorInfo)

	m := WizardModel{
		ctx:     ctx,
		answers: answers,
		lookup:  lookup,
		steps:   wizard.NewStepIndicator(names),
		spinner: s,
	}
	m.syncStep()
	return m
}

// Answers returns the collected answers (call after Run completes).
func (m WizardModel) Answers() *onboard.Answers {
	return m.answers
}

// Init initializes the wizard.
func (m WizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a := m.answers

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.steps.SetWidth(m.width - 4)
		return m, nil

	case spinner.TickMsg:
		if !a.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CatalogResultMsg:
		m.catalogErr = nil
		if msg.Err != nil {
			fe := uxerror.Humanize(msg.Err)
			m.catalogErr = &fe
		}
		a.ApplyCatalog(msg.Models, msg.Err)
		m.syncStep()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			a.Cancel()
			return m, tea.Quit
		}
		if a.Loading {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.answers

	switch msg.Type {
	case tea.KeyEnter:
		if a.Step == onboard.StepAPIKeyEntry {
			req := a.BeginCatalog()
			return m, tea.Batch(m.spinner.Tick, fetchCatalogCmd(m.ctx, m.lookup, req))
		}
		a.Advance(m.ctx, m.lookup)
		m.syncStep()
		if a.Step == onboard.StepDone {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyUp:
		a.Move(-1)
		return m, nil
	case tea.KeyDown:
		a.Move(1)
		return m, nil
	case tea.KeyTab:
		a.Toggle()
		m.syncStep()
		return m, nil
	}

	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	a.Edit(m.field.Input.Value())
	return m, cmd
}

// syncStep rebuilds the text input for the current step, if it takes typing.
func (m *WizardModel) syncStep() {
	a := m.answers
	m.steps.SetCurrent(int(a.Step))

	f, ok := a.FieldFor(a.Step)
	if !ok {
		m.focused = false
		return
	}
	if m.focused && m.field.Label == m.fieldLabel(f) {
		return
	}
	label := m.fieldLabel(f)
	if f.Secret() {
		m.field = wizard.NewSecretField(label, "", a.Text[f])
	} else {
		m.field = wizard.NewTextField(label, fieldPlaceholders[f], a.Text[f])
	}
	m.focused = true
}

var fieldLabels = map[onboard.Field]string{
	onboard.FieldWorkspace:          "Workspace path",
	onboard.FieldCustomProviderURL:  "Base URL of your OpenAI-compatible API",
	onboard.FieldProviderEndpoint:   "Server endpoint",
	onboard.FieldAPIKey:             "API key",
	onboard.FieldModelCustom:        "Model id",
	onboard.FieldComposioKey:        "Composio API key (optional)",
	onboard.FieldProjectUser:        "Your name",
	onboard.FieldProjectTimezone:    "Your timezone",
	onboard.FieldProjectAgent:       "Agent name",
	onboard.FieldProjectStyleCustom: "Describe the communication style",
}

var fieldPlaceholders = map[onboard.Field]string{
	onboard.FieldWorkspace:          "~/projects/assistant",
	onboard.FieldCustomProviderURL:  "https://api.example.com/v1",
	onboard.FieldProviderEndpoint:   "http://localhost:8000/v1",
	onboard.FieldProjectTimezone:    "UTC",
	onboard.FieldProjectAgent:       "ZeroClaw",
	onboard.FieldProjectStyleCustom: "Short answers, no emojis.",
}

func (m WizardModel) fieldLabel(f onboard.Field) string {
	a := m.answers
	token, aux := onboard.ChannelPrompts(a.Channel)
	primary, secondary := onboard.TunnelPrompts(a.Tunnel)
	switch f {
	case onboard.FieldChannelToken:
		return a.Channel.String() + ": " + token
	case onboard.FieldChannelAux:
		return a.Channel.String() + ": " + aux
	case onboard.FieldTunnelPrimary:
		return a.Tunnel.String() + ": " + primary
	case onboard.FieldTunnelSecondary:
		return a.Tunnel.String() + ": " + secondary
	case onboard.FieldAPIKey:
		return fieldLabels[f] + " for " + a.Provider
	}
	return fieldLabels[f]
}

// View renders the wizard.
func (m WizardModel) View() string {
	a := m.answers
	title := theme.WizardTitle.Render("ZeroClaw Onboarding")

	var body string
	if a.Loading {
		body = m.spinner.View() + " " + theme.TextInfo.Render(a.Status)
	} else {
		body = m.body()
	}

	parts := []string{title}
	if ind := m.steps.View(); ind != "" {
		parts = append(parts, ind, "")
	}
	parts = append(parts, body)
	if a.Status != "" && !a.Loading && a.Step == onboard.StepModelSelection {
		parts = append(parts, "", theme.TextMuted.Render(a.Status))
		if m.catalogErr != nil {
			parts = append(parts, theme.TextWarning.Render(theme.SymbolWarning+" "+m.catalogErr.Title))
			for _, h := range m.catalogErr.Hints {
				parts = append(parts, theme.TextMuted.Render("  "+theme.SymbolBullet+" "+h))
			}
		}
	}

	sb := components.NewStatusBar(m.hints()...)
	sb.SetWidth(m.width)
	parts = append(parts, "", sb.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m WizardModel) hints() []components.KeyHint {
	hints := []components.KeyHint{{Key: "Enter", Desc: "Continue"}}
	if _, ok := onboard.ListFor(m.answers.Step); ok {
		hints = append(hints, components.KeyHint{Key: "↑/↓", Desc: "Select"})
	}
	if toggleLabel(m.answers) != "" {
		hints = append(hints, components.KeyHint{Key: "Tab", Desc: "Toggle"})
	}
	return append(hints, components.KeyHint{Key: "Esc", Desc: "Quit"})
}

func (m WizardModel) body() string {
	a := m.answers
	var parts []string

	switch a.Step {
	case onboard.StepWelcome:
		parts = append(parts,
			theme.Bold.Render("Welcome to ZeroClaw."),
			"This wizard writes "+a.ConfigPath+" and scaffolds your workspace.",
		)
		if a.HasExistingConfig() && !a.Force {
			parts = append(parts, theme.TextWarning.Render(theme.SymbolWarning+" An existing config was found."))
		}
	case onboard.StepConfirmation:
		parts = append(parts, theme.Bold.Render("Review your choices"), "")
		for _, l := range a.Summary() {
			parts = append(parts, "  "+theme.SymbolBullet+" "+l)
		}
		parts = append(parts, "", theme.TextMuted.Render("Press Enter to write the configuration."))
	case onboard.StepDone:
		parts = append(parts, theme.TextSuccess.Render(theme.SymbolSuccess+" Saving configuration..."))
	}

	if l, ok := onboard.ListFor(a.Step); ok {
		parts = append(parts, m.options(l))
	}
	if t := toggleLabel(a); t != "" {
		parts = append(parts, "", t)
	}
	if m.focused {
		parts = append(parts, "", m.field.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m WizardModel) options(l onboard.List) string {
	a := m.answers
	var b strings.Builder
	for i, opt := range a.Options(l) {
		if l == onboard.ListModel && opt == onboard.CustomModelSentinel {
			opt = "Custom model id" + theme.SymbolEllipsis
		}
		if i == a.Cursor[l] {
			b.WriteString(theme.TextInfo.Render(theme.SymbolArrowR+" ") + theme.Bold.Render(opt))
		} else {
			b.WriteString("  " + opt)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// toggleLabel describes the Tab-toggled option of the current step.
func toggleLabel(a *onboard.Answers) string {
	switch a.Step {
	case onboard.StepWorkspaceSetup:
		return fmt.Sprintf("%s Use default workspace (%s)", checkbox(a.UseDefaultWorkspace), a.WorkspaceDir)
	case onboard.StepTunnelPrimaryEntry:
		if a.Tunnel == onboard.TunnelTailscale {
			return checkbox(a.TunnelToggle) + " Expose with Funnel"
		}
	case onboard.StepSecretsEncryptChoice:
		return checkbox(a.SecretsEncrypt) + " Encrypt secrets at rest"
	case onboard.StepHardwareSelection:
		return checkbox(a.HardwareDatasheets) + " Load datasheets (RAG)"
	case onboard.StepMemorySelection:
		return checkbox(a.AutoSave()) + " Auto-save conversations"
	}
	return ""
}
