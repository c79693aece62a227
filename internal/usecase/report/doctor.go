package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/adapter/memory"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
)

// CheckStatus is the outcome of one doctor check.
type CheckStatus string

const (
	StatusPass CheckStatus = "PASS"
	StatusWarn CheckStatus = "WARN"
	StatusFail CheckStatus = "FAIL"
)

// CheckResult holds the outcome of a single doctor check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
}

// DoctorChecks runs the full configuration health checks.
func DoctorChecks(cfg *config.Config) []CheckResult {
	return []CheckResult{
		checkConfigFile(cfg),
		checkWorkspace(cfg),
		checkValidation(cfg),
		checkSchema(cfg),
		checkAPIKey(cfg),
	}
}

func checkConfigFile(cfg *config.Config) CheckResult {
	r := CheckResult{Name: "Config file"}
	if _, err := config.Read(cfg.ConfigPath); err != nil {
		r.Status, r.Message = StatusFail, err.Error()
		return r
	}
	r.Status, r.Message = StatusPass, cfg.ConfigPath
	return r
}

func checkWorkspace(cfg *config.Config) CheckResult {
	r := CheckResult{Name: "Workspace"}
	info, err := os.Stat(cfg.WorkspaceDir)
	if err != nil || !info.IsDir() {
		r.Status, r.Message = StatusFail, fmt.Sprintf("%s does not exist", cfg.WorkspaceDir)
		return r
	}
	f, err := os.CreateTemp(cfg.WorkspaceDir, ".doctor-*")
	if err != nil {
		r.Status, r.Message = StatusFail, fmt.Sprintf("not writable: %v", err)
		return r
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	r.Status, r.Message = StatusPass, "writable"
	return r
}

func checkValidation(cfg *config.Config) CheckResult {
	r := CheckResult{Name: "Config values"}
	if err := config.Validate(cfg); err != nil {
		r.Status, r.Message = StatusFail, err.Error()
		return r
	}
	r.Status, r.Message = StatusPass, "valid"
	return r
}

func checkSchema(cfg *config.Config) CheckResult {
	r := CheckResult{Name: "Config schema"}
	if err := ValidateAgainstSchema(cfg); err != nil {
		r.Status, r.Message = StatusFail, err.Error()
		return r
	}
	r.Status, r.Message = StatusPass, "document matches schema"
	return r
}

func checkAPIKey(cfg *config.Config) CheckResult {
	r := CheckResult{Name: "API key"}
	switch {
	case cfg.APIKey != nil:
		r.Status, r.Message = StatusPass, "configured"
	case isLocal(cfg.Provider()):
		r.Status, r.Message = StatusPass, "not needed for local provider"
	default:
		r.Status, r.Message = StatusWarn, "no api_key set; the provider env var must supply one"
	}
	return r
}

func isLocal(provider string) bool {
	p, ok := llm.Lookup(provider)
	return ok && p.Local
}

func doctorFullLines(cfg *config.Config) []string {
	lines := []string{MenuDoctorFull.Title(), ""}
	var pass, warn, fail int
	for _, c := range DoctorChecks(cfg) {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", c.Status, c.Name, c.Message))
		switch c.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	lines = append(lines, "", fmt.Sprintf("Results: %d passed, %d warnings, %d failed", pass, warn, fail))
	if fail > 0 {
		return append(lines, fmt.Sprintf("Doctor run failed: %d check(s) failed", fail))
	}
	return append(lines, "Doctor run completed.")
}

// AWSCredentialSource resolves the default AWS credential chain.
func AWSCredentialSource(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llm.FetchTimeout)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Credentials == nil {
		return "", errors.New("no aws credential provider configured")
	}
	creds, err := awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieve aws credentials: %w", err)
	}
	return creds.Source, nil
}

func (r *Runner) fetch(ctx context.Context, cfg *config.Config) ([]string, error) {
	if r.deps.Catalog == nil {
		return nil, domain.NewDomainError("report.fetch", domain.ErrCatalogUnavailable, "no catalog configured")
	}
	return r.deps.Catalog.FetchLiveModels(ctx, cfg.Provider(),
		config.Value(cfg.APIKey), config.Value(cfg.APIURL))
}

func (r *Runner) modelsRefreshLines(ctx context.Context, cfg *config.Config) []string {
	provider := cfg.Provider()
	lines := []string{MenuModelsRefresh.Title(), ""}

	models, err := r.fetch(ctx, cfg)
	if err != nil {
		return append(lines, fmt.Sprintf("Model refresh failed for provider %s: %v", provider, err))
	}
	cache := llm.NewModelsCache(cfg.WorkspaceDir)
	if err := cache.Put(provider, models); err != nil {
		return append(lines, fmt.Sprintf("Model refresh failed for provider %s: %v", provider, err))
	}
	r.logger.Info("models refreshed", "provider", provider, "count", len(models))
	return append(lines,
		"Model refresh completed for provider: "+provider,
		fmt.Sprintf("Live models: %d", len(models)),
		"Cached to: "+cache.Path(),
	)
}

func (r *Runner) doctorModelsLines(ctx context.Context, cfg *config.Config) []string {
	provider := cfg.Provider()
	lines := []string{MenuDoctorModels.Title(), "", "Provider: " + provider}

	if provider == "bedrock" {
		if r.deps.AWSCredentials == nil {
			return append(lines, "Model doctor probe failed: no aws credential resolver available")
		}
		source, err := r.deps.AWSCredentials(ctx)
		if err != nil {
			return append(lines, fmt.Sprintf("Model doctor probe failed: %v", err))
		}
		return append(lines, "AWS credentials: found ("+source+")",
			"Model doctor probe completed.")
	}

	cache := llm.NewModelsCache(cfg.WorkspaceDir)
	if cached, fresh, err := cache.Get(provider); err == nil && fresh {
		return append(lines,
			fmt.Sprintf("Cached models: %d (fetched %s)", len(cached.Models), cached.FetchedAt.Format(time.RFC3339)),
			"Model doctor probe completed (cache-first).")
	}

	models, err := r.fetch(ctx, cfg)
	if err != nil {
		return append(lines, fmt.Sprintf("Model doctor probe failed: %v", err))
	}
	if err := cache.Put(provider, models); err != nil {
		r.logger.Warn("models cache write failed", "path", cache.Path(), "error", err)
	}
	return append(lines,
		fmt.Sprintf("Live models: %d", len(models)),
		"Model doctor probe completed (cache-first).")
}

func memoryListLines(ctx context.Context, cfg *config.Config) []string {
	lines := []string{MenuMemoryList.Title(), ""}
	entries, err := recentMemories(ctx, cfg, listLimit)
	if err != nil {
		return append(lines, fmt.Sprintf("Memory list failed: %v", err))
	}
	lines = append(lines, fmt.Sprintf("Backend: %s (limit=%d)", cfg.Memory.Backend, listLimit))
	if len(entries) == 0 {
		return append(lines, "No memory entries.")
	}
	for _, e := range entries {
		line := fmt.Sprintf("- [%s] %s: %s", orNone(e.Category), e.Key, e.Content)
		if !e.CreatedAt.IsZero() {
			line += " (" + e.CreatedAt.Format("2006-01-02 15:04") + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// recentMemories reads without creating any backend storage.
func recentMemories(ctx context.Context, cfg *config.Config, limit int) ([]memory.Entry, error) {
	switch memory.ProfileFor(cfg.Memory.Backend).Key {
	case "sqlite", "lucid":
		path := memory.SQLitePath(cfg.WorkspaceDir)
		if !exists(path) {
			return nil, nil
		}
		store, err := memory.OpenSQLiteReader(ctx, path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Recent(ctx, limit)
	case "markdown":
		return memory.MarkdownEntries(memory.MarkdownDir(cfg.WorkspaceDir), limit)
	}
	return nil, nil
}

func memoryCount(ctx context.Context, cfg *config.Config) (int, error) {
	switch memory.ProfileFor(cfg.Memory.Backend).Key {
	case "sqlite", "lucid":
		path := memory.SQLitePath(cfg.WorkspaceDir)
		if !exists(path) {
			return 0, nil
		}
		store, err := memory.OpenSQLiteReader(ctx, path)
		if err != nil {
			return 0, err
		}
		defer store.Close()
		return store.Count(ctx)
	case "markdown":
		entries, err := memory.MarkdownEntries(memory.MarkdownDir(cfg.WorkspaceDir), 0)
		return len(entries), err
	}
	return 0, nil
}

func memoryStatsLines(ctx context.Context, cfg *config.Config) []string {
	m := cfg.Memory
	lines := []string{
		MenuMemoryStats.Title(), "",
		"Backend: " + m.Backend,
		"Auto-save: " + onOff(m.AutoSave),
		fmt.Sprintf("Retention days: %d", m.ConversationRetentionDays),
		fmt.Sprintf("Embedding: %s/%s (dim=%d)", m.EmbeddingProvider, m.EmbeddingModel, m.EmbeddingDimensions),
		"Workspace: " + cfg.WorkspaceDir,
	}
	n, err := memoryCount(ctx, cfg)
	if err != nil {
		return append(lines, fmt.Sprintf("Entries: unavailable (%v)", err))
	}
	return append(lines, fmt.Sprintf("Entries: %d", n))
}
