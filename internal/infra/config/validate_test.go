package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDefaultsPass(t *testing.T) {
	cfg := Defaults()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Defaults should pass validation: %v", err)
	}
}

func TestValidateProviderEmpty(t *testing.T) {
	cfg := Defaults()
	cfg.DefaultProvider = "  "
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), "default_provider must not be empty")
}

func TestValidateMemoryBackendUnknown(t *testing.T) {
	cfg := Defaults()
	cfg.Memory.Backend = "redis"
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), `memory.backend "redis" is invalid`)
}

func TestValidateTunnelMismatch(t *testing.T) {
	cfg := Defaults()
	cfg.Tunnel = TunnelConfig{Provider: TunnelNgrok, Cloudflare: &CloudflareTunnel{Token: "x"}}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), `tunnel.provider "ngrok" does not match populated section "cloudflare"`)
}

func TestValidateTunnelFromSpecPasses(t *testing.T) {
	cfg := Defaults()
	cfg.Tunnel = NewTunnelConfig(&NgrokTunnel{AuthToken: "tok"})
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateWebhookPortZero(t *testing.T) {
	cfg := Defaults()
	cfg.Channels = NewChannelsConfig(&WebhookConfig{Port: 0})
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), "channels_config.webhook.port must be > 0")
}

func TestValidateLoggerLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logger.Level = "verbose"
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	assertContains(t, err.Error(), `logger.level "verbose" is invalid`)
}

func TestValidateAccumulatesErrors(t *testing.T) {
	cfg := Defaults()
	cfg.DefaultProvider = ""
	cfg.Memory.Backend = "bogus"
	cfg.Hardware.Transport = "usb"

	err := Validate(cfg)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(ve.Errors), ve.Errors)
	}
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}
