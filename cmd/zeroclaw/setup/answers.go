package setup

import (
	"os"
	"path/filepath"
	"strings"

	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/adapter/memory"
	"zeroclaw/internal/infra/config"
)

// CustomModelSentinel is the model list entry that asks for a typed id.
const CustomModelSentinel = "__custom_model__"

// Field names a free-text buffer.
type Field int

const (
	FieldWorkspace Field = iota
	FieldCustomProviderURL
	FieldProviderEndpoint
	FieldAPIKey
	FieldModelCustom
	FieldChannelToken
	FieldChannelAux
	FieldTunnelPrimary
	FieldTunnelSecondary
	FieldComposioKey
	FieldProjectUser
	FieldProjectTimezone
	FieldProjectAgent
	FieldProjectStyleCustom

	fieldCount
)

// Secret reports whether the field should be masked while typing.
func (f Field) Secret() bool {
	return f == FieldAPIKey || f == FieldComposioKey
}

// List names a selection list.
type List int

const (
	ListMode List = iota
	ListProviderTier
	ListProvider
	ListModel
	ListChannel
	ListTunnel
	ListToolMode
	ListHardware
	ListMemory
	ListStyle

	listCount
)

var stepFields = map[Step]Field{
	StepWorkspaceSetup:          FieldWorkspace,
	StepCustomProviderURLEntry:  FieldCustomProviderURL,
	StepProviderEndpointEntry:   FieldProviderEndpoint,
	StepAPIKeyEntry:             FieldAPIKey,
	StepModelCustomEntry:        FieldModelCustom,
	StepChannelTokenEntry:       FieldChannelToken,
	StepChannelAuxEntry:         FieldChannelAux,
	StepTunnelPrimaryEntry:      FieldTunnelPrimary,
	StepTunnelSecondaryEntry:    FieldTunnelSecondary,
	StepComposioAPIKeyEntry:     FieldComposioKey,
	StepProjectUserEntry:        FieldProjectUser,
	StepProjectTimezoneEntry:    FieldProjectTimezone,
	StepProjectAgentEntry:       FieldProjectAgent,
	StepProjectStyleCustomEntry: FieldProjectStyleCustom,
}

var stepLists = map[Step]List{
	StepConfigModeSelection:   ListMode,
	StepProviderTierSelection: ListProviderTier,
	StepProviderSelection:     ListProvider,
	StepModelSelection:        ListModel,
	StepChannelSelection:      ListChannel,
	StepTunnelSelection:       ListTunnel,
	StepToolModeSelection:     ListToolMode,
	StepHardwareSelection:     ListHardware,
	StepMemorySelection:       ListMemory,
	StepProjectStyleSelection: ListStyle,
}

// Answers accumulates everything collected during one wizard session.
// It is owned by a single goroutine.
type Answers struct {
	Step    Step
	Mode    Mode
	Force   bool
	Loading bool
	Status  string

	ConfigDir    string
	ConfigPath   string
	WorkspaceDir string

	Provider string
	APIURL   string
	APIKey   string
	Model    string

	UseDefaultWorkspace bool
	Channel             ChannelChoice
	Tunnel              TunnelChoice
	TunnelToggle        bool
	ToolMode            ToolMode
	SecretsEncrypt      bool
	HardwareChoice      hardware.Choice
	HardwareDatasheets  bool
	MemoryChoice        int
	MemoryAutoSave      bool

	Text   [fieldCount]string
	Cursor [listCount]int

	channel       config.ChannelSpec
	tierProviders []llm.ProviderInfo
	models        []string
	autoSaveSet   bool
	cancelled     bool
}

// NewAnswers starts a session rooted at the given directories.
func NewAnswers(configDir, workspaceDir string, force bool) *Answers {
	a := &Answers{
		Step:                StepWelcome,
		Mode:                ModeFullOnboarding,
		Force:               force,
		ConfigDir:           configDir,
		ConfigPath:          filepath.Join(configDir, config.ConfigFileName),
		WorkspaceDir:        workspaceDir,
		UseDefaultWorkspace: true,
		SecretsEncrypt:      true,
		HardwareChoice:      hardware.ChoiceSoftwareOnly,
		MemoryAutoSave:      true,
	}
	a.Cursor[ListMode] = int(ModeUpdateProviderOnly)
	a.Cursor[ListHardware] = int(hardware.ChoiceSoftwareOnly)
	a.Cursor[ListStyle] = 1
	return a
}

// HasExistingConfig reports whether a document exists at ConfigPath.
func (a *Answers) HasExistingConfig() bool {
	_, err := os.Stat(a.ConfigPath)
	return err == nil
}

// Value returns the trimmed content of a text buffer.
func (a *Answers) Value(f Field) string {
	return strings.TrimSpace(a.Text[f])
}

// FieldFor returns the text buffer that receives typing on step.
func (a *Answers) FieldFor(step Step) (Field, bool) {
	if step == StepWorkspaceSetup && a.UseDefaultWorkspace {
		return 0, false
	}
	f, ok := stepFields[step]
	return f, ok
}

// ListFor returns the selection list shown on step.
func ListFor(step Step) (List, bool) {
	l, ok := stepLists[step]
	return l, ok
}

// Options returns the entries of list l as currently known.
func (a *Answers) Options(l List) []string {
	switch l {
	case ListMode:
		return ModeLabels
	case ListProviderTier:
		return llm.Tiers()
	case ListProvider:
		out := make([]string, len(a.tierProviders))
		for i, p := range a.tierProviders {
			out[i] = p.Display
		}
		return out
	case ListModel:
		return a.models
	case ListChannel:
		return ChannelLabels
	case ListTunnel:
		return TunnelLabels
	case ListToolMode:
		return ToolModeLabels
	case ListHardware:
		return hardware.ChoiceLabels
	case ListMemory:
		profiles := memory.Profiles()
		out := make([]string, len(profiles))
		for i, p := range profiles {
			out[i] = p.Label
		}
		return out
	case ListStyle:
		return StyleLabels
	}
	return nil
}

// Models returns the merged model catalog, sentinel last.
func (a *Answers) Models() []string { return a.models }

// Move shifts the current step's list selection by delta. Moving past
// either end leaves the selection where it is.
func (a *Answers) Move(delta int) {
	l, ok := ListFor(a.Step)
	if !ok {
		return
	}
	next := a.Cursor[l] + delta
	if next < 0 || next >= len(a.Options(l)) {
		return
	}
	a.Cursor[l] = next
	if l == ListMemory {
		a.autoSaveSet = false
	}
}

// Toggle flips the current step's boolean option, if it has one.
func (a *Answers) Toggle() {
	switch a.Step {
	case StepWorkspaceSetup:
		a.UseDefaultWorkspace = !a.UseDefaultWorkspace
	case StepTunnelPrimaryEntry:
		a.TunnelToggle = !a.TunnelToggle
	case StepSecretsEncryptChoice:
		a.SecretsEncrypt = !a.SecretsEncrypt
	case StepHardwareSelection:
		a.HardwareDatasheets = !a.HardwareDatasheets
	case StepMemorySelection:
		a.MemoryAutoSave = !a.AutoSave()
		a.autoSaveSet = true
	}
}

// AutoSave reports the auto-save setting shown on the memory screen: the
// highlighted profile's default until the user toggles it.
func (a *Answers) AutoSave() bool {
	if a.autoSaveSet {
		return a.MemoryAutoSave
	}
	return memory.ProfileAt(a.Cursor[ListMemory]).AutoSaveDefault
}

// Edit replaces the focused text buffer of the current step.
func (a *Answers) Edit(value string) {
	if f, ok := a.FieldFor(a.Step); ok {
		a.Text[f] = value
	}
}

// Cancel ends the session without synthesis.
func (a *Answers) Cancel() { a.cancelled = true }

// Cancelled reports whether the session was cancelled.
func (a *Answers) Cancelled() bool { return a.cancelled }

// ChannelsConfig returns the channel section built from the answers.
func (a *Answers) ChannelsConfig() config.ChannelsConfig {
	return config.NewChannelsConfig(a.channel)
}

// StyleText returns the chosen communication style.
func (a *Answers) StyleText() string {
	return StyleText(a.Cursor[ListStyle], a.Value(FieldProjectStyleCustom))
}

// Summary lists the choices shown on the confirmation screen.
func (a *Answers) Summary() []string {
	model := a.Model
	if model == "" {
		model = llm.DefaultModelFor(a.Provider) + " (default)"
	}
	lines := []string{
		"Mode: " + a.Mode.String(),
		"Workspace: " + a.WorkspaceDir,
		"Config: " + a.ConfigPath,
		"Provider: " + a.Provider,
		"Model: " + model,
	}
	if a.Mode == ModeFullOnboarding {
		lines = append(lines,
			"Channel: "+a.Channel.String(),
			"Tunnel: "+a.Tunnel.String(),
		)
	}
	if a.Status != "" {
		lines = append(lines, "Status: "+a.Status)
	}
	return lines
}
