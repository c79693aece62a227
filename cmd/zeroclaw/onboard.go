package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zeroclaw/cmd/zeroclaw/setup"
	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	tuisetup "zeroclaw/internal/adapter/tui/setup"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/infra/logger"
	"zeroclaw/internal/infra/tracer"
)

func newOnboardCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Launch the interactive onboarding wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnboard(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Skip the mode question and run full onboarding")
	return cmd
}

func runOnboard(cmd *cobra.Command, force bool) error {
	if err := requireTerminal("onboard"); err != nil {
		return err
	}
	ctx := cmd.Context()

	configDir, workspaceDir, err := runtimeDirs()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	defaults := config.Defaults()
	config.ApplyEnvOverrides(defaults)

	log, closeLog, err := logger.New(logSettings(defaults.Logger, configDir, "onboard.log"))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()
	log, sessionID := logger.WithSession(log)

	traceOut, err := openTraceOutput(configDir)
	if err != nil {
		return err
	}
	defer traceOut.Close()
	shutdown, err := tracer.Setup(ctx, defaults.Tracer, traceOut)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	defer shutdown(ctx)

	log.Info("onboarding started", "config_dir", configDir, "workspace_dir", workspaceDir, "force", force)

	answers := setup.NewAnswers(configDir, workspaceDir, force)
	model := tuisetup.NewWizardModel(ctx, answers, llm.NewCatalog(nil, log))
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("onboarding wizard: %w", err)
	}

	synth := setup.NewSynthesizer(hardware.NewDiscoverer(log), setup.FileStore{}, log)
	res, err := synth.Finalize(ctx, answers)
	if errors.Is(err, domain.ErrCancelled) {
		log.Info("onboarding cancelled", "step", answers.Step.String())
		fmt.Println("Onboarding cancelled. Nothing was written.")
		return nil
	}
	if err != nil {
		log.Error("onboarding failed", "error", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration saved to %s\n", res.Config.ConfigPath)
	if answers.Mode == setup.ModeFullOnboarding {
		fmt.Fprintf(out, "Workspace: %s (%d files created, %d kept)\n",
			res.Config.WorkspaceDir, res.Scaffold.CreatedFiles, res.Scaffold.SkippedFiles)
	}
	if res.ChannelAutostart {
		fmt.Fprintln(out, "Channels are configured. Start them with: zeroclaw channel start")
	}
	fmt.Fprintf(out, "Session %s logged to %s\n", sessionID, logSettings(defaults.Logger, configDir, "onboard.log").Output)
	return nil
}
