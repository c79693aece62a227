// Package report renders the dashboard's read-only views of a stored
// configuration as plain text lines.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"zeroclaw/internal/adapter/auth"
	"zeroclaw/internal/adapter/channel"
	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/infra/tracer"
	"zeroclaw/internal/security"
)

const listLimit = 20

// CatalogLookup fetches live model ids for a provider.
type CatalogLookup interface {
	FetchLiveModels(ctx context.Context, provider, apiKey, baseURL string) ([]string, error)
}

// ChannelProber checks configured channel credentials.
type ChannelProber interface {
	Check(ctx context.Context, ch config.ChannelsConfig) []channel.ProbeResult
}

// HardwareScanner lists local devices and network boards.
type HardwareScanner interface {
	Discover(ctx context.Context) ([]hardware.Device, error)
	ScanBoards(ctx context.Context) ([]hardware.Device, error)
}

// Deps are the live collaborators behind the "(run)" views. Nil members
// make the matching views report that the check is unavailable.
type Deps struct {
	Catalog  CatalogLookup
	Channels ChannelProber
	Hardware HardwareScanner
	// AWSCredentials resolves the default AWS credential chain and
	// returns the source that supplied credentials.
	AWSCredentials func(ctx context.Context) (string, error)
}

// Runner produces the lines for each dashboard view.
type Runner struct {
	version string
	deps    Deps
	logger  *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(version string, deps Deps, logger *slog.Logger) *Runner {
	return &Runner{version: version, deps: deps, logger: logger}
}

// Run renders item for cfg. The first line is always the view title.
func (r *Runner) Run(ctx context.Context, item MenuItem, cfg *config.Config) []string {
	ctx, span := tracer.StartSpan(ctx, "dashboard.run")
	defer span.End()
	span.SetAttributes(tracer.StringAttr("item", item.Title()))

	var lines []string
	switch item {
	case MenuStatus:
		lines = r.statusLines(cfg)
	case MenuProviders:
		lines = providerLines(cfg)
	case MenuConfigSchema:
		lines = configSchemaLines()
	case MenuEstopStatus:
		lines = estopLines(cfg)
	case MenuChannels:
		lines = channelLines(cfg)
	case MenuChannelDoctor:
		lines = r.channelDoctorLines(ctx, cfg)
	case MenuAuthProfiles:
		lines = authProfileLines(cfg)
	case MenuModelsList:
		lines = modelsListLines(cfg)
	case MenuModelsStatus:
		lines = modelsStatusLines(cfg)
	case MenuModelsRefresh:
		lines = r.modelsRefreshLines(ctx, cfg)
	case MenuDoctorFull:
		lines = doctorFullLines(cfg)
	case MenuDoctorModels:
		lines = r.doctorModelsLines(ctx, cfg)
	case MenuDoctor:
		lines = doctorLines(cfg)
	case MenuMemoryList:
		lines = memoryListLines(ctx, cfg)
	case MenuMemoryStats:
		lines = memoryStatsLines(ctx, cfg)
	case MenuHardwareDiscover:
		lines = r.hardwareLines(ctx)
	case MenuPeripheralList:
		lines = r.peripheralLines(ctx, cfg)
	default:
		lines = homeLines()
	}

	span.SetAttributes(tracer.IntAttr("lines", len(lines)))
	tracer.SetOK(span)
	return lines
}

func homeLines() []string {
	return []string{
		"ZeroClaw TUI Dashboard",
		"",
		"This dashboard provides read-only command views.",
		"Select a menu item and press Enter.",
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func (r *Runner) statusLines(cfg *config.Config) []string {
	model := cfg.DefaultModel
	if strings.TrimSpace(model) == "" {
		model = "(default)"
	}
	return []string{
		MenuStatus.Title(), "",
		"Version: " + r.version,
		"Workspace: " + cfg.WorkspaceDir,
		"Config: " + cfg.ConfigPath,
		"Provider: " + cfg.Provider(),
		"Model: " + model,
		"Memory backend: " + cfg.Memory.Backend,
		"Auto-save: " + onOff(cfg.Memory.AutoSave),
	}
}

func providerLines(cfg *config.Config) []string {
	active := strings.ToLower(cfg.Provider())
	all := llm.Providers()
	lines := []string{MenuProviders.Title(), "", fmt.Sprintf("Total providers: %d", len(all))}
	for _, p := range all {
		line := fmt.Sprintf("- %s: %s", p.Name, p.Display)
		if p.Local {
			line += " [local]"
		}
		if p.Name == active {
			line += " [active]"
		}
		lines = append(lines, line)
	}
	return lines
}

func estopLines(cfg *config.Config) []string {
	lines := []string{MenuEstopStatus.Title(), ""}
	if !cfg.Security.Estop.Enabled {
		return append(lines, "Emergency stop is disabled in config.")
	}
	if cfg.Dir() == "" {
		return append(lines, "Failed to load estop status: config path has no parent directory")
	}

	state, err := security.LoadEstop(security.EstopPath(cfg.Dir(), cfg.Security.Estop.StateFile))
	if err != nil {
		return append(lines, fmt.Sprintf("Failed to load estop status: %v", err))
	}

	active := func(b bool) string {
		if b {
			return "active"
		}
		return "inactive"
	}
	list := func(v []string) string {
		if len(v) == 0 {
			return "(none)"
		}
		return strings.Join(v, ", ")
	}
	lines = append(lines,
		"engaged: "+yesNo(state.Engaged()),
		"kill_all: "+active(state.KillAll),
		"network_kill: "+active(state.NetworkKill),
		"domain_blocks: "+list(state.BlockedDomains),
		"tool_freeze: "+list(state.FrozenTools),
	)
	if state.UpdatedAt != nil {
		lines = append(lines, "updated_at: "+state.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return lines
}

func channelLines(cfg *config.Config) []string {
	lines := []string{MenuChannels.Title(), "", "CLI: configured"}
	for _, ch := range cfg.Channels.Channels() {
		state := "not configured"
		if ch.Configured {
			state = "configured"
		}
		lines = append(lines, ch.Name+": "+state)
	}
	return lines
}

func (r *Runner) channelDoctorLines(ctx context.Context, cfg *config.Config) []string {
	lines := []string{MenuChannelDoctor.Title(), ""}
	if r.deps.Channels == nil {
		return append(lines, "Channel doctor failed: no channel prober available")
	}
	results := r.deps.Channels.Check(ctx, cfg.Channels)
	if len(results) == 0 {
		return append(lines, "No channels configured beyond the CLI.")
	}

	healthy := 0
	for _, res := range results {
		mark := "[FAIL]"
		switch {
		case res.OK && res.Probed:
			mark = "[PASS]"
			healthy++
		case res.OK:
			mark = "[SKIP]"
			healthy++
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", mark, res.Channel, res.Detail))
	}
	if healthy == len(results) {
		return append(lines, "", "Channel doctor completed successfully.")
	}
	return append(lines, "", fmt.Sprintf("Channel doctor failed: %d of %d channel(s) unhealthy",
		len(results)-healthy, len(results)))
}

func authProfileLines(cfg *config.Config) []string {
	lines := []string{MenuAuthProfiles.Title(), ""}
	data, err := auth.NewStore(cfg.Dir()).Load()
	if err != nil {
		return append(lines, fmt.Sprintf("Failed to load auth profiles: %v", err))
	}

	entries := data.Entries()
	lines = append(lines, fmt.Sprintf("Total profiles: %d", len(entries)))
	if len(entries) == 0 {
		return append(lines, "No auth profiles configured.")
	}
	for _, e := range entries {
		line := fmt.Sprintf("- %s (%s)", e.ID, e.Provider)
		if e.Active {
			line += " [active]"
		}
		lines = append(lines, line)
	}
	return lines
}

func modelsListLines(cfg *config.Config) []string {
	provider := cfg.Provider()
	models := llm.CuratedModels(provider)
	lines := []string{
		"Models List (curated)", "",
		"Provider: " + provider,
		fmt.Sprintf("Curated models: %d", len(models)),
	}
	if len(models) == 0 {
		return append(lines, "No curated models available.")
	}
	for i, id := range models {
		if i == listLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, id))
	}
	return lines
}

func modelsStatusLines(cfg *config.Config) []string {
	provider := cfg.Provider()
	model := strings.TrimSpace(cfg.DefaultModel)
	if model == "" {
		model = llm.DefaultModelFor(provider)
	}
	return []string{
		MenuModelsStatus.Title(), "",
		"Provider: " + provider,
		"Configured model: " + model,
		fmt.Sprintf("Curated entries: %d", len(llm.CuratedModels(provider))),
	}
}

func doctorLines(cfg *config.Config) []string {
	return []string{
		"Doctor (readonly quick checks)", "",
		"Config file exists: " + yesNo(exists(cfg.ConfigPath)),
		"Workspace exists: " + yesNo(exists(cfg.WorkspaceDir)),
		"API key configured: " + yesNo(cfg.APIKey != nil),
		fmt.Sprintf("Configured channels: %d", cfg.Channels.ConfiguredCount()),
		fmt.Sprintf("OTP enabled: %t", cfg.Security.OTP.Enabled),
		fmt.Sprintf("E-stop enabled: %t", cfg.Security.Estop.Enabled),
	}
}

func (r *Runner) hardwareLines(ctx context.Context) []string {
	lines := []string{MenuHardwareDiscover.Title(), ""}
	if r.deps.Hardware == nil {
		return append(lines, "Hardware discovery failed: no discoverer available")
	}
	devices, err := r.deps.Hardware.Discover(ctx)
	if err != nil {
		return append(lines, fmt.Sprintf("Hardware discovery failed: %v", err))
	}
	if len(devices) == 0 {
		return append(lines, "No hardware detected.")
	}
	lines = append(lines, fmt.Sprintf("Devices found: %d", len(devices)))
	for _, d := range devices {
		lines = append(lines, deviceLine(d))
	}
	return lines
}

func deviceLine(d hardware.Device) string {
	line := fmt.Sprintf("- [%s] %s", d.Kind, d.Name)
	if d.Path != "" {
		line += " at " + d.Path
	}
	if d.Detail != "" {
		line += " (" + d.Detail + ")"
	}
	return line
}

func (r *Runner) peripheralLines(ctx context.Context, cfg *config.Config) []string {
	lines := []string{MenuPeripheralList.Title(), ""}
	p := cfg.Peripherals
	lines = append(lines, "Peripherals enabled: "+yesNo(p.Enabled),
		fmt.Sprintf("Configured boards: %d", len(p.Boards)))
	for _, b := range p.Boards {
		line := fmt.Sprintf("- %s via %s", b.Board, b.Transport)
		if b.Path != "" {
			line += " at " + b.Path
		}
		if b.Baud > 0 {
			line += fmt.Sprintf(" (%d baud)", b.Baud)
		}
		lines = append(lines, line)
	}

	if r.deps.Hardware == nil {
		return lines
	}
	boards, err := r.deps.Hardware.ScanBoards(ctx)
	if err != nil {
		r.logger.Debug("board scan failed", "error", err)
		return append(lines, fmt.Sprintf("Peripheral listing failed: %v", err))
	}
	lines = append(lines, fmt.Sprintf("Network boards: %d", len(boards)))
	for _, b := range boards {
		lines = append(lines, deviceLine(b))
	}
	return lines
}
