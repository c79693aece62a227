// Package uxerror translates raw errors into user-friendly messages with
// recovery hints.
package uxerror

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"zeroclaw/internal/adapter/tui/theme"
	"zeroclaw/internal/domain"
)

// FriendlyError is a user-facing error with suggestions for recovery.
type FriendlyError struct {
	Title   string   // short heading, e.g. "Config Unreadable"
	Message string   // one-liner explanation
	Hints   []string // actionable recovery suggestions
	Raw     string   // original error text
}

// Render formats the FriendlyError for terminal output.
func (fe FriendlyError) Render() string {
	var sb strings.Builder
	sb.WriteString(fe.Title)
	if fe.Message != "" {
		sb.WriteString("\n  ")
		sb.WriteString(fe.Message)
	}
	if len(fe.Hints) > 0 {
		sb.WriteString("\n  Suggestions:")
		for _, h := range fe.Hints {
			sb.WriteString(fmt.Sprintf("\n    %s %s", theme.SymbolBullet, h))
		}
	}
	return sb.String()
}

type errorPattern struct {
	match   func(err error) bool
	produce func(err error) FriendlyError
}

var patterns = []errorPattern{
	// Domain sentinels first so errors.Is sees through wrapping.
	{
		match: is(domain.ErrNotInteractive),
		produce: constantError("Terminal Required", "This command draws a full-screen interface and needs an interactive terminal.",
			[]string{"Run it directly in a terminal, not through a pipe", "Set ZEROCLAW_CONFIG_DIR and edit config.yaml by hand for scripted setups"}),
	},
	{
		match: is(domain.ErrConfigParse),
		produce: constantError("Config Unreadable", "The existing config.yaml is not valid YAML.",
			[]string{"Fix the file by hand", "Run 'zeroclaw onboard --force' to start over"}),
	},
	{
		match: is(domain.ErrConfigRead),
		produce: constantError("Config Not Found", "The config document could not be read.",
			[]string{"Run 'zeroclaw onboard' first", "Pass --config-dir to point at another installation"}),
	},
	{
		match: is(domain.ErrConfigWrite),
		produce: constantError("Config Not Saved", "The config document could not be written.",
			[]string{"Check permissions on the config directory", "Make sure the disk is not full"}),
	},
	{
		match: is(domain.ErrDecryption),
		produce: constantError("Secrets Unreadable", "Encrypted values in config.yaml could not be decrypted.",
			[]string{"Restore the .secret_key file next to config.yaml", "Re-enter the secrets with 'zeroclaw onboard'"}),
	},
	{
		match: is(domain.ErrCatalogUnavailable),
		produce: constantError("Model List Unavailable", "The live model catalog could not be fetched; curated models are shown instead.",
			[]string{"Pick a curated model or type a custom id"}),
	},
	{
		match: is(fs.ErrPermission),
		produce: constantError("Permission Denied", "A file or directory could not be accessed.",
			[]string{"Check ownership of the config directory", "Config files must not be group or world readable"}),
	},
	// Network patterns from external collaborators.
	{
		match: containsAny("connection refused", "dial tcp", "no such host"),
		produce: constantError("Connection Failed", "Could not reach the remote service.",
			[]string{"Check your internet connection", "Verify the provider endpoint URL"}),
	},
	{
		match: containsAny("deadline exceeded", "timeout"),
		produce: constantError("Request Timed Out", "The request took too long to complete.",
			[]string{"Check your network connection", "Try again later"}),
	},
	{
		match: containsAny("401", "unauthorized", "invalid api key", "authentication failed"),
		produce: constantError("Authentication Failed", "The API key or credentials were rejected.",
			[]string{"Re-enter the API key", "Verify the key hasn't expired"}),
	},
	{
		match: containsAny("429", "rate limit", "too many requests"),
		produce: constantError("Rate Limited", "Too many requests sent to the API provider.",
			[]string{"Wait a moment before retrying"}),
	},
}

// Humanize converts a raw error into a FriendlyError with recovery hints.
func Humanize(err error) FriendlyError {
	if err == nil {
		return FriendlyError{Title: "Unknown Error", Raw: "nil"}
	}
	for _, p := range patterns {
		if p.match(err) {
			return p.produce(err)
		}
	}
	return FriendlyError{
		Title:   "Unexpected Error",
		Message: err.Error(),
		Hints:   []string{"Try again", "Run with --log-level debug and check the log file"},
		Raw:     err.Error(),
	}
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// containsAny returns a match func that checks if the error string contains
// any of the given substrings (case-insensitive).
func containsAny(substrs ...string) func(error) bool {
	return func(err error) bool {
		lower := strings.ToLower(err.Error())
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// constantError returns a produce func that always returns the same FriendlyError.
func constantError(title, message string, hints []string) func(error) FriendlyError {
	return func(err error) FriendlyError {
		return FriendlyError{
			Title:   title,
			Message: message,
			Hints:   hints,
			Raw:     err.Error(),
		}
	}
}
