package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zeroclaw/internal/adapter/tui/uxerror"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configDirFlag string
	logLevelFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "zeroclaw",
	Short: "ZeroClaw onboarding and status dashboard",
	Long: `zeroclaw configures and inspects a ZeroClaw installation.

Commands:
  zeroclaw onboard     Interactive setup wizard
  zeroclaw dashboard   Read-only status dashboard`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Config directory (default: ZEROCLAW_CONFIG_DIR, the active workspace, or ~/.zeroclaw)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error")

	rootCmd.AddCommand(newOnboardCmd(), newDashboardCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, uxerror.Humanize(err).Render())
		fmt.Fprintf(os.Stderr, "\nzeroclaw: %v\n", err)
		os.Exit(1)
	}
}

// runtimeDirs applies --config-dir over the usual resolution order.
func runtimeDirs() (configDir, workspaceDir string, err error) {
	if configDirFlag != "" {
		dir := config.ExpandTilde(configDirFlag)
		return dir, filepath.Join(dir, "workspace"), nil
	}
	return config.ResolveRuntimeDirs()
}

// requireTerminal fails unless both stdin and stdout are terminals.
func requireTerminal(op string) error {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}
	return domain.NewDomainError(op, domain.ErrNotInteractive, "run it from an interactive terminal")
}

// logSettings returns cfg's logger section with the flag override and a
// file output under configDir when none is configured.
func logSettings(cfg config.LoggerConfig, configDir, name string) config.LoggerConfig {
	if logLevelFlag != "" {
		cfg.Level = logLevelFlag
	}
	if cfg.Output == "" || cfg.Output == "stdout" || cfg.Output == "stderr" {
		cfg.Output = filepath.Join(configDir, "logs", name)
	}
	return cfg
}

// openTraceOutput opens the span sink next to the logs.
func openTraceOutput(configDir string) (*os.File, error) {
	path := filepath.Join(configDir, "logs", "trace.jsonl")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
