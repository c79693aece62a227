package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zeroclaw/internal/adapter/channel"
	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/adapter/tui/dashboard"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/infra/logger"
	"zeroclaw/internal/infra/tracer"
	"zeroclaw/internal/usecase/report"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the read-only status dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}
}

func runDashboard(cmd *cobra.Command) error {
	if err := requireTerminal("dashboard"); err != nil {
		return err
	}
	ctx := cmd.Context()

	configDir, _, err := runtimeDirs()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := config.Load(filepath.Join(configDir, config.ConfigFileName))
	if err != nil {
		return fmt.Errorf("config: %w (run 'zeroclaw onboard' first)", err)
	}

	log, closeLog, err := logger.New(logSettings(cfg.Logger, configDir, "zeroclaw.log"))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()
	log, _ = logger.WithSession(log)

	traceOut, err := openTraceOutput(configDir)
	if err != nil {
		return err
	}
	defer traceOut.Close()
	shutdown, err := tracer.Setup(ctx, cfg.Tracer, traceOut)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer shutdown(ctx)

	runner := report.NewRunner(version, report.Deps{
		Catalog:        llm.NewCatalog(nil, log),
		Channels:       channel.NewDoctor(log),
		Hardware:       hardware.NewDiscoverer(log),
		AWSCredentials: report.AWSCredentialSource,
	}, log)

	model := dashboard.NewDashboardModel(ctx, runner, cfg)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}
