package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
	"zeroclaw/internal/infra/logger"
)

type fakeDiscoverer struct {
	devices []hardware.Device
	err     error
}

func (f fakeDiscoverer) Discover(context.Context) ([]hardware.Device, error) {
	return f.devices, f.err
}

type fakeStore struct {
	saved     *config.Config
	persisted string
	saveErr   error
}

func (f *fakeStore) Save(cfg *config.Config) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = cfg
	return nil
}

func (f *fakeStore) PersistActiveWorkspaceDir(dir string) error {
	f.persisted = dir
	return nil
}

// driveFull walks a complete onboarding session through the public
// step API and stops at Done.
func driveFull(t *testing.T, apiKey string) *Answers {
	t.Helper()
	ctx := context.Background()
	a := newTestAnswers(t)
	lookup := &fakeLookup{models: []string{"gpt-4o"}}

	a.Advance(ctx, nil) // welcome
	a.Advance(ctx, nil) // default workspace
	a.Advance(ctx, nil) // tier 0
	require.Equal(t, StepProviderSelection, a.Step)
	a.Cursor[ListProvider] = tierIndexOf(t, 0, "openai")
	a.Advance(ctx, nil)
	a.Edit(apiKey)
	a.Advance(ctx, lookup)
	a.Advance(ctx, nil) // first model

	a.Cursor[ListChannel] = int(ChannelTelegram)
	a.Advance(ctx, nil)
	a.Edit("123:abc")
	a.Advance(ctx, nil)
	a.Edit("alice, bob")
	a.Advance(ctx, nil)

	a.Cursor[ListTunnel] = int(TunnelNgrok)
	a.Advance(ctx, nil)
	a.Edit("tok_1")
	a.Advance(ctx, nil)
	a.Advance(ctx, nil) // no reserved domain

	a.Move(1)
	a.Advance(ctx, nil)
	require.Equal(t, StepComposioAPIKeyEntry, a.Step)
	a.Edit("ck_live")
	a.Advance(ctx, nil)

	a.Toggle() // secrets off
	a.Advance(ctx, nil)

	a.Move(-2) // serial
	a.Toggle() // datasheets
	a.Advance(ctx, nil)

	a.Cursor[ListMemory] = 2 // markdown
	a.Advance(ctx, nil)

	a.Edit("Ada")
	a.Advance(ctx, nil)
	a.Edit("Europe/Paris")
	a.Advance(ctx, nil)
	a.Edit("Claw")
	a.Advance(ctx, nil)

	a.Cursor[ListStyle] = CustomStyleIndex
	a.Advance(ctx, nil)
	a.Edit("Terse.")
	a.Advance(ctx, nil)

	require.Equal(t, StepConfirmation, a.Step)
	a.Advance(ctx, nil)
	require.Equal(t, StepDone, a.Step)
	return a
}

func TestFinalizeFullOnboarding(t *testing.T) {
	a := driveFull(t, "sk-test")
	store := &fakeStore{}
	disc := fakeDiscoverer{devices: []hardware.Device{
		{Name: "probe", Kind: hardware.KindProbe, Path: "/dev/stlink"},
		{Name: "arduino", Kind: hardware.KindSerial, Path: "/dev/ttyUSB0"},
	}}

	res, err := NewSynthesizer(disc, store, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)
	require.Same(t, res.Config, store.saved)
	cfg := res.Config

	assert.Equal(t, "openai", cfg.DefaultProvider)
	assert.Equal(t, a.Model, cfg.DefaultModel)
	require.NotNil(t, cfg.APIKey)
	assert.Equal(t, "sk-test", *cfg.APIKey)
	assert.Nil(t, cfg.APIURL)
	assert.Equal(t, a.ConfigPath, cfg.ConfigPath)
	assert.Equal(t, a.ConfigDir, store.persisted)

	require.NotNil(t, cfg.Channels.Telegram)
	assert.Equal(t, "123:abc", cfg.Channels.Telegram.BotToken)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Channels.Telegram.AllowedUsers)
	assert.True(t, cfg.Channels.CLI)

	assert.Equal(t, "ngrok", cfg.Tunnel.Provider)
	assert.Equal(t, "tok_1", cfg.Tunnel.Ngrok.AuthToken)

	assert.True(t, cfg.Composio.Enabled)
	assert.Equal(t, "ck_live", config.Value(cfg.Composio.APIKey))
	assert.False(t, cfg.Secrets.Encrypt)

	assert.True(t, cfg.Hardware.Enabled)
	assert.Equal(t, "serial", cfg.Hardware.Transport)
	assert.Equal(t, "/dev/ttyUSB0", config.Value(cfg.Hardware.SerialPort))
	assert.Nil(t, cfg.Hardware.ProbeTarget)
	assert.True(t, cfg.Hardware.WorkspaceDatasheets)
	assert.Len(t, cfg.Hardware.Devices, 2)

	assert.Equal(t, "markdown", cfg.Memory.Backend)
	assert.True(t, cfg.Memory.AutoSave)
	assert.NoError(t, config.Validate(cfg))

	assert.Equal(t, 8, res.Scaffold.CreatedFiles)
	assert.True(t, res.ChannelAutostart)

	user, err := os.ReadFile(filepath.Join(a.WorkspaceDir, "USER.md"))
	require.NoError(t, err)
	assert.Contains(t, string(user), "Ada")
	assert.Contains(t, string(user), "Europe/Paris")
	assert.Contains(t, string(user), "Terse.")

	soul, err := os.ReadFile(filepath.Join(a.WorkspaceDir, "SOUL.md"))
	require.NoError(t, err)
	assert.Contains(t, string(soul), "**Claw**")
}

func TestFinalizeWithoutAPIKeyDoesNotAutostart(t *testing.T) {
	a := driveFull(t, "")
	res, err := NewSynthesizer(nil, &fakeStore{}, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)
	assert.Nil(t, res.Config.APIKey)
	assert.False(t, res.ChannelAutostart)
	assert.Equal(t, "serial", res.Config.Hardware.Transport)
}

func TestFinalizeCLIOnlyDoesNotAutostart(t *testing.T) {
	a := newTestAnswers(t)
	a.Step = StepDone
	a.Provider = "openai"
	a.APIKey = "sk"

	res, err := NewSynthesizer(nil, &fakeStore{}, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, res.ChannelAutostart)
	assert.Equal(t, "gpt-4o", res.Config.DefaultModel)
	assert.Equal(t, "none", res.Config.Tunnel.Provider)
	assert.Equal(t, "sqlite", res.Config.Memory.Backend)
}

func TestWebhookOnlyDoesNotAutostart(t *testing.T) {
	assert.False(t, hasExternalChannel(config.NewChannelsConfig(&config.WebhookConfig{Port: 8081})))
	assert.False(t, hasExternalChannel(config.NewChannelsConfig(nil)))

	both := config.NewChannelsConfig(&config.WebhookConfig{Port: 8081})
	both.Slack = &config.SlackConfig{BotToken: "xoxb-1"}
	assert.True(t, hasExternalChannel(both))
}

func TestFinalizeDiscoveryErrorIsTolerated(t *testing.T) {
	a := newTestAnswers(t)
	a.Step = StepDone
	a.HardwareChoice = hardware.ChoiceProbe

	disc := fakeDiscoverer{err: errors.New("mdns unavailable")}
	res, err := NewSynthesizer(disc, &fakeStore{}, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "probe", res.Config.Hardware.Transport)
	assert.Nil(t, res.Config.Hardware.ProbeTarget)
	assert.Equal(t, config.DefaultProvider, res.Config.DefaultProvider)
}

func TestFinalizeUpdateProviderOnlyKeepsOtherSections(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	a := newTestAnswers(t)

	existing := config.Defaults()
	existing.ConfigPath = a.ConfigPath
	existing.WorkspaceDir = a.WorkspaceDir
	existing.Secrets.Encrypt = false
	existing.APIKey = config.Optional("sk-old")
	existing.Channels = config.NewChannelsConfig(&config.TelegramConfig{BotToken: "t", AllowedUsers: []string{"x"}})
	existing.Memory.Backend = "markdown"
	existing.Hardware.Transport = "serial"
	existing.Hardware.Enabled = true
	require.NoError(t, config.Save(existing))

	before, err := config.Read(a.ConfigPath)
	require.NoError(t, err)

	a.Step = StepDone
	a.Mode = ModeUpdateProviderOnly
	a.Provider = "anthropic"
	a.Model = "claude-3-5-haiku-20241022"
	a.APIKey = "sk-new"

	res, err := NewSynthesizer(nil, FileStore{}, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, res.ChannelAutostart)
	assert.Zero(t, res.Scaffold)

	after, err := config.Read(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", after.DefaultProvider)
	assert.Equal(t, "claude-3-5-haiku-20241022", after.DefaultModel)
	assert.Equal(t, "sk-new", config.Value(after.APIKey))

	assert.Equal(t, before.Channels, after.Channels)
	assert.Equal(t, before.Memory, after.Memory)
	assert.Equal(t, before.Hardware, after.Hardware)
	assert.Equal(t, before.Tunnel, after.Tunnel)
	assert.Equal(t, before.Secrets, after.Secrets)

	assert.NoDirExists(t, a.WorkspaceDir)
	assert.FileExists(t, filepath.Join(home, ".zeroclaw", "active_workspace.yaml"))
}

func TestFinalizeUpdateProviderOnlyKeepsEncryptedSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ZEROCLAW_API_KEY", "")

	a := newTestAnswers(t)

	existing := config.Defaults()
	existing.ConfigPath = a.ConfigPath
	existing.WorkspaceDir = a.WorkspaceDir
	require.True(t, existing.Secrets.Encrypt)
	existing.APIKey = config.Optional("sk-old")
	existing.Channels = config.NewChannelsConfig(&config.TelegramConfig{BotToken: "123:abc", AllowedUsers: []string{"x"}})
	require.NoError(t, config.Save(existing))

	before, err := config.Read(a.ConfigPath)
	require.NoError(t, err)
	require.True(t, config.IsEncrypted(before.Channels.Telegram.BotToken))

	a.Step = StepDone
	a.Mode = ModeUpdateProviderOnly
	a.Provider = "openai"
	a.Model = "gpt-4o"
	a.APIKey = "sk-new"

	_, err = NewSynthesizer(nil, FileStore{}, logger.Discard()).Finalize(context.Background(), a)
	require.NoError(t, err)

	after, err := config.Read(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, before.Channels.Telegram.BotToken, after.Channels.Telegram.BotToken)
	assert.True(t, config.IsEncrypted(config.Value(after.APIKey)))

	loaded, err := config.Load(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", loaded.Channels.Telegram.BotToken)
	assert.Equal(t, "sk-new", config.Value(loaded.APIKey))
}

func TestFinalizeUpdateProviderOnlyMalformedDocument(t *testing.T) {
	a := newTestAnswers(t)
	require.NoError(t, os.WriteFile(a.ConfigPath, []byte("default_provider: [unclosed\n"), 0o600))
	a.Step = StepDone
	a.Mode = ModeUpdateProviderOnly

	store := &fakeStore{}
	_, err := NewSynthesizer(nil, store, logger.Discard()).Finalize(context.Background(), a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigParse))
	assert.Nil(t, store.saved)
	assert.Empty(t, store.persisted)
}

func TestFinalizeCancelled(t *testing.T) {
	a := newTestAnswers(t)
	a.Step = StepDone
	a.Cancel()

	store := &fakeStore{}
	_, err := NewSynthesizer(nil, store, logger.Discard()).Finalize(context.Background(), a)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Nil(t, store.saved)
}

func TestFinalizeBeforeDone(t *testing.T) {
	a := newTestAnswers(t)
	a.Step = StepConfirmation

	store := &fakeStore{}
	_, err := NewSynthesizer(nil, store, logger.Discard()).Finalize(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Confirmation")
	assert.Nil(t, store.saved)
}

func TestFinalizeSaveFailure(t *testing.T) {
	a := newTestAnswers(t)
	a.Step = StepDone

	store := &fakeStore{saveErr: errors.New("disk full")}
	_, err := NewSynthesizer(nil, store, logger.Discard()).Finalize(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, store.persisted)
	assert.NoDirExists(t, a.WorkspaceDir)
}
