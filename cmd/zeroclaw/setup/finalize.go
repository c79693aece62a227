package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/adapter/memory"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/infra/tracer"
)

// Fallbacks for empty personalization answers.
const (
	defaultUserName  = "User"
	defaultTimezone  = "UTC"
	defaultAgentName = "ZeroClaw"
)

// HardwareDiscoverer lists hardware visible to the host.
type HardwareDiscoverer interface {
	Discover(ctx context.Context) ([]hardware.Device, error)
}

// ConfigStore persists the synthesized document.
type ConfigStore interface {
	Save(cfg *config.Config) error
	PersistActiveWorkspaceDir(configDir string) error
}

// FileStore writes the document to disk.
type FileStore struct{}

func (FileStore) Save(cfg *config.Config) error { return config.Save(cfg) }

func (FileStore) PersistActiveWorkspaceDir(configDir string) error {
	return config.PersistActiveWorkspaceDir(configDir)
}

// Result is the outcome of a completed session.
type Result struct {
	Config *config.Config
	// ChannelAutostart asks the caller to start channel listeners.
	ChannelAutostart bool
	Scaffold         ScaffoldReport
}

// Synthesizer turns finished answers into a saved configuration.
type Synthesizer struct {
	discover HardwareDiscoverer
	store    ConfigStore
	logger   *slog.Logger
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(discover HardwareDiscoverer, store ConfigStore, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{discover: discover, store: store, logger: logger}
}

// Finalize builds the configuration document from a, saves it, records the
// active config dir and, for full onboarding, scaffolds the workspace.
// Nothing is written unless the whole document could be assembled.
func (s *Synthesizer) Finalize(ctx context.Context, a *Answers) (*Result, error) {
	if a.Cancelled() {
		return nil, domain.ErrCancelled
	}
	if a.Step != StepDone {
		return nil, fmt.Errorf("setup.Finalize: wizard stopped at %s", a.Step)
	}

	provider := strings.TrimSpace(a.Provider)
	if provider == "" {
		provider = config.DefaultProvider
	}
	model := strings.TrimSpace(a.Model)
	if model == "" {
		model = llm.DefaultModelFor(provider)
	}

	ctx, span := tracer.StartSpan(ctx, "onboard.finalize")
	defer span.End()
	span.SetAttributes(
		tracer.StringAttr("provider", provider),
		tracer.StringAttr("mode", a.Mode.String()),
	)

	cfg, err := s.base(a)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	cfg.DefaultProvider = provider
	cfg.DefaultModel = model
	cfg.APIURL = config.Optional(a.APIURL)
	cfg.APIKey = config.Optional(a.APIKey)

	if a.Mode == ModeFullOnboarding {
		s.applyFull(ctx, a, cfg)
	}

	if err := s.store.Save(cfg); err != nil {
		tracer.RecordError(span, err)
		return nil, fmt.Errorf("save config: %w", err)
	}
	if err := s.store.PersistActiveWorkspaceDir(filepath.Dir(cfg.ConfigPath)); err != nil {
		tracer.RecordError(span, err)
		return nil, fmt.Errorf("persist active workspace: %w", err)
	}

	res := &Result{Config: cfg}
	if a.Mode == ModeFullOnboarding {
		rep, err := ScaffoldWorkspace(cfg.WorkspaceDir, a.projectContext())
		if err != nil {
			tracer.RecordError(span, err)
			return nil, fmt.Errorf("scaffold workspace: %w", err)
		}
		res.Scaffold = rep
		res.ChannelAutostart = hasExternalChannel(cfg.Channels) && cfg.APIKey != nil
	}

	span.SetAttributes(tracer.BoolAttr("channel_autostart", res.ChannelAutostart))
	tracer.SetOK(span)
	s.logger.Info("onboarding finalized",
		"mode", a.Mode.String(),
		"provider", provider,
		"model", model,
		"config_path", cfg.ConfigPath,
		"channel_autostart", res.ChannelAutostart,
	)
	return res, nil
}

// base returns the starting document: the stored one when only the provider
// is being updated, defaults otherwise.
func (s *Synthesizer) base(a *Answers) (*config.Config, error) {
	cfg := config.Defaults()
	if a.Mode == ModeUpdateProviderOnly && a.HasExistingConfig() {
		existing, err := config.Read(a.ConfigPath)
		if err != nil {
			sentinel := domain.ErrConfigParse
			if errors.Is(err, domain.ErrConfigRead) {
				sentinel = domain.ErrConfigRead
			}
			return nil, domain.NewDomainError("setup.Finalize", sentinel, err.Error())
		}
		cfg = existing
	}
	cfg.WorkspaceDir = a.WorkspaceDir
	cfg.ConfigPath = a.ConfigPath
	return cfg, nil
}

func (s *Synthesizer) applyFull(ctx context.Context, a *Answers, cfg *config.Config) {
	cfg.Channels = a.ChannelsConfig()
	cfg.Tunnel = a.TunnelConfig()

	cfg.Composio = config.ComposioConfig{EntityID: "default"}
	if a.ToolMode == ToolModeComposio {
		cfg.Composio.Enabled = true
		cfg.Composio.APIKey = config.Optional(a.Value(FieldComposioKey))
	}
	cfg.Secrets = config.SecretsConfig{Encrypt: a.SecretsEncrypt}

	var devices []hardware.Device
	if s.discover != nil {
		found, err := s.discover.Discover(ctx)
		if err != nil {
			s.logger.Warn("hardware discovery failed", "error", err)
		}
		devices = found
	}
	hw := hardware.ConfigFromWizardChoice(a.HardwareChoice, devices)
	hw.WorkspaceDatasheets = a.HardwareDatasheets
	cfg.Hardware = hw

	mem := memory.ConfigForBackend(memory.ProfileAt(a.MemoryChoice).Key)
	mem.AutoSave = a.MemoryAutoSave
	cfg.Memory = mem
}

func (a *Answers) projectContext() ProjectContext {
	ctx := ProjectContext{
		UserName:  a.Value(FieldProjectUser),
		Timezone:  a.Value(FieldProjectTimezone),
		AgentName: a.Value(FieldProjectAgent),
		Style:     a.StyleText(),
	}
	if ctx.UserName == "" {
		ctx.UserName = os.Getenv("USER")
	}
	if ctx.UserName == "" {
		ctx.UserName = defaultUserName
	}
	if ctx.Timezone == "" {
		ctx.Timezone = defaultTimezone
	}
	if ctx.AgentName == "" {
		ctx.AgentName = defaultAgentName
	}
	return ctx
}

// hasExternalChannel reports whether any channel other than the CLI or the
// webhook is set.
func hasExternalChannel(ch config.ChannelsConfig) bool {
	return ch.ConfiguredExceptWebhook() > 0
}
