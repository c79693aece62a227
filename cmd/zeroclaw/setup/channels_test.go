package setup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeroclaw/internal/infra/config"
)

func enterChannel(t *testing.T, choice ChannelChoice, token, aux string) *Answers {
	t.Helper()
	ctx := context.Background()
	a := newTestAnswers(t)
	a.Step = StepChannelSelection
	a.Cursor[ListChannel] = int(choice)
	a.Advance(ctx, nil)
	if a.Step == StepChannelTokenEntry {
		a.Edit(token)
		a.Advance(ctx, nil)
		a.Edit(aux)
		a.Advance(ctx, nil)
	}
	require.Equal(t, StepTunnelSelection, a.Step)
	return a
}

func TestTelegramChannel(t *testing.T) {
	ch := enterChannel(t, ChannelTelegram, "abc123", "").ChannelsConfig()
	require.NotNil(t, ch.Telegram)
	assert.Equal(t, "abc123", ch.Telegram.BotToken)
	assert.NotNil(t, ch.Telegram.AllowedUsers)
	assert.Empty(t, ch.Telegram.AllowedUsers)
	assert.Equal(t, "off", ch.Telegram.StreamMode)
	assert.Equal(t, 1, ch.ConfiguredCount())
	assert.True(t, ch.CLI)

	withUsers := enterChannel(t, ChannelTelegram, "abc123", " alice, ,bob ").ChannelsConfig()
	assert.Equal(t, []string{"alice", "bob"}, withUsers.Telegram.AllowedUsers)

	empty := enterChannel(t, ChannelTelegram, "  ", "alice").ChannelsConfig()
	assert.Nil(t, empty.Telegram)
	assert.Equal(t, 0, empty.ConfiguredCount())
}

func TestDiscordAndSlackNeedToken(t *testing.T) {
	assert.Nil(t, channelSpec(ChannelDiscord, "", "u1"))
	assert.Nil(t, channelSpec(ChannelSlack, "", ""))

	spec, ok := channelSpec(ChannelSlack, "xoxb-1", "U1,U2").(*config.SlackConfig)
	require.True(t, ok)
	assert.Equal(t, []string{"U1", "U2"}, spec.AllowedUsers)
}

func TestWebhookChannel(t *testing.T) {
	ch := enterChannel(t, ChannelWebhook, "9000", "s").ChannelsConfig()
	require.NotNil(t, ch.Webhook)
	assert.Equal(t, uint16(9000), ch.Webhook.Port)
	require.NotNil(t, ch.Webhook.Secret)
	assert.Equal(t, "s", *ch.Webhook.Secret)

	for _, port := range []string{"bad", "", "0", "70000"} {
		wh := channelSpec(ChannelWebhook, port, "").(*config.WebhookConfig)
		assert.Equal(t, uint16(8081), wh.Port, "port %q", port)
		assert.Nil(t, wh.Secret)
	}
}

func TestIMessageContacts(t *testing.T) {
	ch := enterChannel(t, ChannelIMessage, "", "+15551234567, me@example.com").ChannelsConfig()
	require.NotNil(t, ch.IMessage)
	assert.Equal(t, []string{"+15551234567", "me@example.com"}, ch.IMessage.AllowedContacts)
}

func TestChannelDefaults(t *testing.T) {
	matrix := channelSpec(ChannelMatrix, "tok", "").(*config.MatrixConfig)
	assert.Equal(t, "https://matrix.org", matrix.Homeserver)
	assert.Equal(t, []string{"*"}, matrix.AllowedUsers)

	custom := channelSpec(ChannelMatrix, "tok", "https://m.example.org").(*config.MatrixConfig)
	assert.Equal(t, "https://m.example.org", custom.Homeserver)

	nostr := channelSpec(ChannelNostr, "nsec1", "").(*config.NostrConfig)
	assert.Equal(t, []string{"*"}, nostr.AllowedPubkeys)
	assert.NotEmpty(t, nostr.Relays)

	irc := channelSpec(ChannelIRC, "", "").(*config.IRCConfig)
	assert.Equal(t, "irc.libera.chat", irc.Server)
	assert.Equal(t, uint16(6697), irc.Port)
	assert.Equal(t, "zeroclaw", irc.Nickname)
	assert.Equal(t, []string{"#general"}, irc.Channels)
	require.NotNil(t, irc.VerifyTLS)
	assert.True(t, *irc.VerifyTLS)

	wa := channelSpec(ChannelWhatsApp, "", "").(*config.WhatsAppConfig)
	assert.Nil(t, wa.AccessToken)
	require.NotNil(t, wa.VerifyToken)
	assert.Equal(t, "zeroclaw", *wa.VerifyToken)

	lark := channelSpec(ChannelLark, "id", "secret").(*config.LarkConfig)
	assert.Equal(t, config.ReceiveModeWebsocket, lark.ReceiveMode)
}

func TestEveryChannelConfiguresExactlyOne(t *testing.T) {
	for c := ChannelTelegram; int(c) < len(ChannelLabels); c++ {
		t.Run(c.String(), func(t *testing.T) {
			ch := enterChannel(t, c, "token-1", "aux-1").ChannelsConfig()
			assert.Equal(t, 1, ch.ConfiguredCount())
			assert.True(t, ch.CLI)
		})
	}
}

func TestCLIOnlyClearsChannel(t *testing.T) {
	a := enterChannel(t, ChannelTelegram, "abc", "")
	require.Equal(t, 1, a.ChannelsConfig().ConfiguredCount())

	a.Step = StepChannelSelection
	a.Cursor[ListChannel] = int(ChannelCLIOnly)
	a.Advance(context.Background(), nil)

	assert.Equal(t, StepTunnelSelection, a.Step)
	assert.Equal(t, 0, a.ChannelsConfig().ConfiguredCount())
}

func TestChannelPromptsCoverEveryChoice(t *testing.T) {
	for c := ChannelTelegram; int(c) < len(ChannelLabels); c++ {
		token, aux := ChannelPrompts(c)
		assert.NotEmpty(t, token, c.String())
		assert.NotEmpty(t, aux, c.String())
	}
}

func enterTunnel(t *testing.T, choice TunnelChoice, primary, secondary string, toggle bool) *Answers {
	t.Helper()
	ctx := context.Background()
	a := newTestAnswers(t)
	a.Step = StepTunnelSelection
	a.Cursor[ListTunnel] = int(choice)
	a.Advance(ctx, nil)
	if a.Step == StepTunnelPrimaryEntry {
		a.Edit(primary)
		if toggle {
			a.Toggle()
		}
		a.Advance(ctx, nil)
	}
	if a.Step == StepTunnelSecondaryEntry {
		a.Edit(secondary)
		a.Advance(ctx, nil)
	}
	require.Equal(t, StepToolModeSelection, a.Step)
	return a
}

func TestTunnelNgrok(t *testing.T) {
	tun := enterTunnel(t, TunnelNgrok, "tok_1", "", false).TunnelConfig()
	assert.Equal(t, "ngrok", tun.Provider)
	require.NotNil(t, tun.Ngrok)
	assert.Equal(t, "tok_1", tun.Ngrok.AuthToken)
	assert.Nil(t, tun.Ngrok.Domain)
	assert.Nil(t, tun.Cloudflare)
}

func TestTunnelCloudflareSkipsSecondary(t *testing.T) {
	ctx := context.Background()
	a := newTestAnswers(t)
	a.Step = StepTunnelSelection
	a.Cursor[ListTunnel] = int(TunnelCloudflare)
	a.Advance(ctx, nil)
	a.Edit("cf-token")
	assert.Equal(t, StepToolModeSelection, a.Advance(ctx, nil))

	tun := a.TunnelConfig()
	assert.Equal(t, "cloudflare", tun.Provider)
	assert.Equal(t, "cf-token", tun.Cloudflare.Token)
}

func TestTunnelTailscaleFunnel(t *testing.T) {
	tun := enterTunnel(t, TunnelTailscale, "", "box.tail.net", true).TunnelConfig()
	require.NotNil(t, tun.Tailscale)
	assert.True(t, tun.Tailscale.Funnel)
	require.NotNil(t, tun.Tailscale.Hostname)
	assert.Equal(t, "box.tail.net", *tun.Tailscale.Hostname)
}

func TestTunnelCustomAndNone(t *testing.T) {
	tun := enterTunnel(t, TunnelCustom, "bore local 8080", "http://localhost:8080/health", false).TunnelConfig()
	assert.Equal(t, "custom", tun.Provider)
	assert.Equal(t, "bore local 8080", tun.Custom.StartCommand)

	none := enterTunnel(t, TunnelNone, "", "", false).TunnelConfig()
	assert.Equal(t, "none", none.Provider)
}
