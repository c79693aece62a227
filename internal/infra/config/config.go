package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"zeroclaw/internal/domain"
)

// ConfigFileName is the name of the configuration document inside a config dir.
const ConfigFileName = "config.yaml"

// Fallbacks used when the document does not name a provider or model.
const (
	DefaultProvider = "openrouter"
	DefaultModel    = "anthropic/claude-sonnet-4.6"
)

// Config is the persisted zeroclaw configuration document.
type Config struct {
	WorkspaceDir       string  `yaml:"workspace_dir"`
	ConfigPath         string  `yaml:"config_path"`
	DefaultProvider    string  `yaml:"default_provider,omitempty"`
	DefaultModel       string  `yaml:"default_model,omitempty"`
	DefaultTemperature float64 `yaml:"default_temperature"`
	APIKey             *string `yaml:"api_key,omitempty"`
	APIURL             *string `yaml:"api_url,omitempty"`

	Channels    ChannelsConfig    `yaml:"channels_config"`
	Tunnel      TunnelConfig      `yaml:"tunnel"`
	Composio    ComposioConfig    `yaml:"composio"`
	Secrets     SecretsConfig     `yaml:"secrets"`
	Hardware    HardwareConfig    `yaml:"hardware"`
	Peripherals PeripheralsConfig `yaml:"peripherals"`
	Memory      MemoryConfig      `yaml:"memory"`
	Security    SecurityConfig    `yaml:"security"`
	Logger      LoggerConfig      `yaml:"logger"`
	Tracer      TracerConfig      `yaml:"tracer"`
}

// ComposioConfig holds managed OAuth tool settings.
type ComposioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	APIKey   *string `yaml:"api_key,omitempty"`
	EntityID string  `yaml:"entity_id"`
}

// SecretsConfig controls at-rest encryption of secret fields.
type SecretsConfig struct {
	Encrypt bool `yaml:"encrypt"`
}

// HardwareConfig describes how the agent talks to physical hardware.
type HardwareConfig struct {
	Enabled             bool             `yaml:"enabled"`
	Transport           string           `yaml:"transport"` // native, serial, probe, none
	SerialPort          *string          `yaml:"serial_port,omitempty"`
	BaudRate            uint32           `yaml:"baud_rate"`
	ProbeTarget         *string          `yaml:"probe_target,omitempty"`
	WorkspaceDatasheets bool             `yaml:"workspace_datasheets"`
	Devices             []HardwareDevice `yaml:"devices,omitempty"`
}

// HardwareDevice is one device seen during discovery.
type HardwareDevice struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // gpio, serial, probe, network, host
	Path string `yaml:"path,omitempty"`
}

// PeripheralsConfig lists boards the agent may drive.
type PeripheralsConfig struct {
	Enabled bool              `yaml:"enabled"`
	Boards  []PeripheralBoard `yaml:"boards,omitempty"`
}

// PeripheralBoard is a single configured board.
type PeripheralBoard struct {
	Board     string `yaml:"board"`
	Transport string `yaml:"transport"`
	Path      string `yaml:"path,omitempty"`
	Baud      uint32 `yaml:"baud,omitempty"`
}

// MemoryConfig holds memory backend tuning.
type MemoryConfig struct {
	Backend                   string  `yaml:"backend"`
	AutoSave                  bool    `yaml:"auto_save"`
	HygieneEnabled            bool    `yaml:"hygiene_enabled"`
	ArchiveAfterDays          uint32  `yaml:"archive_after_days"`
	PurgeAfterDays            uint32  `yaml:"purge_after_days"`
	ConversationRetentionDays uint32  `yaml:"conversation_retention_days"`
	EmbeddingProvider         string  `yaml:"embedding_provider"`
	EmbeddingModel            string  `yaml:"embedding_model"`
	EmbeddingDimensions       int     `yaml:"embedding_dimensions"`
	VectorWeight              float64 `yaml:"vector_weight"`
	KeywordWeight             float64 `yaml:"keyword_weight"`
	MinRelevanceScore         float64 `yaml:"min_relevance_score"`
	EmbeddingCacheSize        int     `yaml:"embedding_cache_size"`
	ChunkMaxTokens            int     `yaml:"chunk_max_tokens"`
	ResponseCacheEnabled      bool    `yaml:"response_cache_enabled"`
	ResponseCacheTTLMinutes   uint32  `yaml:"response_cache_ttl_minutes"`
	ResponseCacheMaxEntries   int     `yaml:"response_cache_max_entries"`
	SnapshotEnabled           bool    `yaml:"snapshot_enabled"`
	SnapshotOnHygiene         bool    `yaml:"snapshot_on_hygiene"`
	AutoHydrate               bool    `yaml:"auto_hydrate"`
}

// SecurityConfig holds operator safety switches.
type SecurityConfig struct {
	Estop EstopConfig `yaml:"estop"`
	OTP   OTPConfig   `yaml:"otp"`
}

// EstopConfig controls the emergency stop.
type EstopConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StateFile string `yaml:"state_file,omitempty"` // relative to the config dir
}

// OTPConfig controls one-time-password gating of sensitive actions.
type OTPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// Defaults returns a Config with sensible defaults and empty paths.
func Defaults() *Config {
	return &Config{
		DefaultProvider:    DefaultProvider,
		DefaultModel:       DefaultModel,
		DefaultTemperature: 0.7,
		Channels:           NewChannelsConfig(nil),
		Tunnel:             TunnelConfig{Provider: TunnelNone},
		Composio:           ComposioConfig{EntityID: "default"},
		Secrets:            SecretsConfig{Encrypt: true},
		Hardware: HardwareConfig{
			Transport: "none",
			BaudRate:  115200,
		},
		Memory: MemoryConfig{
			Backend:                   "sqlite",
			AutoSave:                  true,
			HygieneEnabled:            true,
			ArchiveAfterDays:          7,
			PurgeAfterDays:            30,
			ConversationRetentionDays: 30,
			EmbeddingProvider:         "none",
			EmbeddingModel:            "text-embedding-3-small",
			EmbeddingDimensions:       1536,
			VectorWeight:              0.7,
			KeywordWeight:             0.3,
			MinRelevanceScore:         0.4,
			EmbeddingCacheSize:        10000,
			ChunkMaxTokens:            512,
			ResponseCacheTTLMinutes:   60,
			ResponseCacheMaxEntries:   5000,
			AutoHydrate:               true,
		},
		Security: SecurityConfig{
			Estop: EstopConfig{StateFile: "estop-state.json"},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
		},
		Tracer: TracerConfig{Exporter: "noop"},
	}
}

// Dir returns the directory holding the config document.
func (c *Config) Dir() string {
	if c.ConfigPath == "" {
		return ""
	}
	return filepath.Dir(c.ConfigPath)
}

// Provider returns the configured provider, or the fallback.
func (c *Config) Provider() string {
	if p := strings.TrimSpace(c.DefaultProvider); p != "" {
		return p
	}
	return DefaultProvider
}

// Read parses the document at path exactly as stored: no env overrides,
// no secret decryption. A missing file is an error.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewDomainError("config.Read", domain.ErrConfigRead, err.Error())
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewDomainError("config.Read", domain.ErrConfigParse,
			fmt.Sprintf("%s: %v", path, err))
	}
	return cfg, nil
}

// Load reads the document for runtime use. A missing file yields defaults
// rooted at path. Env overrides are applied and encrypted secrets decrypted.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	switch {
	case err == nil:
		absPath, absErr := filepath.Abs(path)
		if absErr != nil {
			return nil, fmt.Errorf("resolve config path: %w", absErr)
		}
		if err := validatePermissions(absPath); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrConfigRead) && isNotExist(path):
		cfg = Defaults()
		cfg.ConfigPath = path
		cfg.WorkspaceDir = filepath.Join(filepath.Dir(path), "workspace")
	default:
		return nil, err
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = path
	}

	ApplyEnvOverrides(cfg)

	if err := decryptSecrets(cfg); err != nil {
		return nil, fmt.Errorf("decrypt secrets: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides maps ZEROCLAW_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ZEROCLAW_PROVIDER"); v != "" {
		cfg.DefaultProvider = v
	}
	if v := os.Getenv("ZEROCLAW_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("ZEROCLAW_API_KEY"); v != "" {
		cfg.APIKey = &v
	}
	if v := os.Getenv("ZEROCLAW_LOG_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("ZEROCLAW_TRACE_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
		if cfg.Tracer.Exporter == "" || cfg.Tracer.Exporter == "noop" {
			cfg.Tracer.Exporter = "stdout"
		}
	}
}

// Optional returns nil for an empty (after trimming) string.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional string.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// validatePermissions checks the config file has restrictive permissions.
func validatePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat config: %w", err)
	}
	mode := info.Mode().Perm()
	// Allow 0600 and 0644 (readable by others but not writable)
	if mode&0o077 > 0o044 {
		return fmt.Errorf("config file %s has insecure permissions %o (want 0600 or 0644)", path, mode)
	}
	return nil
}
