package config

import (
	"fmt"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateProvider(cfg, ve)
	validateMemory(cfg, ve)
	validateTunnel(cfg, ve)
	validateChannels(cfg, ve)
	validateHardware(cfg, ve)
	validateLogger(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateProvider(cfg *Config, ve *ValidationError) {
	if strings.TrimSpace(cfg.DefaultProvider) == "" {
		ve.Add("default_provider must not be empty")
	}
	if cfg.DefaultTemperature < 0 || cfg.DefaultTemperature > 2 {
		ve.Add("default_temperature must be between 0 and 2")
	}
}

// Mirrors the backend keys known to the memory adapter.
var validMemoryBackends = map[string]bool{
	"sqlite":   true,
	"lucid":    true,
	"markdown": true,
	"none":     true,
}

func validateMemory(cfg *Config, ve *ValidationError) {
	m := cfg.Memory
	if !validMemoryBackends[m.Backend] {
		ve.Add("memory.backend %q is invalid (want: sqlite, lucid, markdown, none)", m.Backend)
	}
	if m.VectorWeight < 0 || m.VectorWeight > 1 {
		ve.Add("memory.vector_weight must be between 0 and 1")
	}
	if m.KeywordWeight < 0 || m.KeywordWeight > 1 {
		ve.Add("memory.keyword_weight must be between 0 and 1")
	}
}

var validTunnelProviders = map[string]bool{
	TunnelNone:       true,
	TunnelCloudflare: true,
	TunnelTailscale:  true,
	TunnelNgrok:      true,
	TunnelCustom:     true,
}

func validateTunnel(cfg *Config, ve *ValidationError) {
	t := cfg.Tunnel
	if !validTunnelProviders[t.Provider] {
		ve.Add("tunnel.provider %q is invalid (want: none, cloudflare, tailscale, ngrok, custom)", t.Provider)
		return
	}
	got := t.populated()
	if got == "" {
		ve.Add("tunnel: more than one provider section is populated")
		return
	}
	if got != t.Provider {
		ve.Add("tunnel.provider %q does not match populated section %q", t.Provider, got)
	}
}

func validateChannels(cfg *Config, ve *ValidationError) {
	ch := cfg.Channels
	if ch.Webhook != nil && ch.Webhook.Port == 0 {
		ve.Add("channels_config.webhook.port must be > 0")
	}
	if ch.IRC != nil && ch.IRC.Port == 0 {
		ve.Add("channels_config.irc.port must be > 0")
	}
	if ch.Lark != nil && ch.Lark.ReceiveMode != ReceiveModeWebsocket && ch.Lark.ReceiveMode != ReceiveModeWebhook {
		ve.Add("channels_config.lark.receive_mode %q is invalid (want: websocket, webhook)", ch.Lark.ReceiveMode)
	}
	if ch.Feishu != nil && ch.Feishu.ReceiveMode != ReceiveModeWebsocket && ch.Feishu.ReceiveMode != ReceiveModeWebhook {
		ve.Add("channels_config.feishu.receive_mode %q is invalid (want: websocket, webhook)", ch.Feishu.ReceiveMode)
	}
}

var validHardwareTransports = map[string]bool{
	"native": true,
	"serial": true,
	"probe":  true,
	"none":   true,
}

func validateHardware(cfg *Config, ve *ValidationError) {
	if !validHardwareTransports[cfg.Hardware.Transport] {
		ve.Add("hardware.transport %q is invalid (want: native, serial, probe, none)", cfg.Hardware.Transport)
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if !validLogLevels[cfg.Logger.Level] {
		ve.Add("logger.level %q is invalid (want: debug, info, warn, error)", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "" && cfg.Logger.Format != "text" && cfg.Logger.Format != "json" {
		ve.Add("logger.format %q is invalid (want: text, json)", cfg.Logger.Format)
	}
}
