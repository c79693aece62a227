package setup

import (
	"strconv"
	"strings"

	"zeroclaw/internal/infra/config"
)

const (
	defaultWebhookPort    = 8081
	defaultMatrixServer   = "https://matrix.org"
	defaultMatrixRoom     = "!zeroclaw:matrix.org"
	defaultSignalURL      = "http://127.0.0.1:8686"
	defaultVerifyToken    = "zeroclaw"
	defaultLinqFromPhone  = "+10000000000"
	defaultIRCServer      = "irc.libera.chat"
	defaultIRCPort        = 6697
	defaultIRCNickname    = "zeroclaw"
	defaultIRCChannel     = "#general"
	defaultDraftInterval  = 1000
	telegramStreamModeOff = "off"
)

func allowAll() []string { return []string{"*"} }

// parseCSV splits a comma-separated list, dropping blanks.
func parseCSV(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// channelSpec maps the two typed values onto the sub-config for choice.
// Telegram, Discord and Slack yield nil without a token.
func channelSpec(choice ChannelChoice, token, aux string) config.ChannelSpec {
	switch choice {
	case ChannelTelegram:
		if token == "" {
			return nil
		}
		return &config.TelegramConfig{
			BotToken:              token,
			AllowedUsers:          parseCSV(aux),
			StreamMode:            telegramStreamModeOff,
			DraftUpdateIntervalMs: defaultDraftInterval,
		}
	case ChannelDiscord:
		if token == "" {
			return nil
		}
		return &config.DiscordConfig{BotToken: token, AllowedUsers: parseCSV(aux)}
	case ChannelSlack:
		if token == "" {
			return nil
		}
		return &config.SlackConfig{BotToken: token, AllowedUsers: parseCSV(aux)}
	case ChannelWebhook:
		port, err := strconv.ParseUint(token, 10, 16)
		if err != nil || port == 0 {
			port = defaultWebhookPort
		}
		return &config.WebhookConfig{Port: uint16(port), Secret: config.Optional(aux)}
	case ChannelIMessage:
		return &config.IMessageConfig{AllowedContacts: parseCSV(aux)}
	case ChannelMatrix:
		return &config.MatrixConfig{
			Homeserver:   orDefault(aux, defaultMatrixServer),
			AccessToken:  token,
			RoomID:       defaultMatrixRoom,
			AllowedUsers: allowAll(),
		}
	case ChannelSignal:
		return &config.SignalConfig{
			HTTPURL:       defaultSignalURL,
			Account:       token,
			GroupID:       config.Optional(aux),
			AllowedFrom:   allowAll(),
			IgnoreStories: true,
		}
	case ChannelWhatsApp:
		verify := defaultVerifyToken
		return &config.WhatsAppConfig{
			AccessToken:    config.Optional(token),
			PhoneNumberID:  config.Optional(aux),
			VerifyToken:    &verify,
			AllowedNumbers: allowAll(),
		}
	case ChannelLinq:
		return &config.LinqConfig{
			APIToken:       token,
			FromPhone:      orDefault(aux, defaultLinqFromPhone),
			AllowedSenders: allowAll(),
		}
	case ChannelIRC:
		verifyTLS := true
		return &config.IRCConfig{
			Server:       orDefault(token, defaultIRCServer),
			Port:         defaultIRCPort,
			Nickname:     orDefault(aux, defaultIRCNickname),
			Channels:     []string{defaultIRCChannel},
			AllowedUsers: allowAll(),
			VerifyTLS:    &verifyTLS,
		}
	case ChannelNextcloudTalk:
		return &config.NextcloudTalkConfig{BaseURL: token, AppToken: aux, AllowedUsers: allowAll()}
	case ChannelDingTalk:
		return &config.DingTalkConfig{ClientID: token, ClientSecret: aux, AllowedUsers: allowAll()}
	case ChannelQQOfficial:
		return &config.QQConfig{AppID: token, AppSecret: aux, AllowedUsers: allowAll()}
	case ChannelLark:
		return &config.LarkConfig{
			AppID:        token,
			AppSecret:    aux,
			AllowedUsers: allowAll(),
			ReceiveMode:  config.ReceiveModeWebsocket,
		}
	case ChannelFeishu:
		return &config.FeishuConfig{
			AppID:        token,
			AppSecret:    aux,
			AllowedUsers: allowAll(),
			ReceiveMode:  config.ReceiveModeWebsocket,
		}
	case ChannelNostr:
		pubkeys := parseCSV(aux)
		if len(pubkeys) == 0 {
			pubkeys = allowAll()
		}
		return &config.NostrConfig{
			PrivateKey:     token,
			Relays:         config.DefaultNostrRelays(),
			AllowedPubkeys: pubkeys,
		}
	}
	return nil
}

// ChannelPrompts returns the labels of the token and auxiliary fields for choice.
func ChannelPrompts(choice ChannelChoice) (token, aux string) {
	switch choice {
	case ChannelTelegram:
		return "Bot token (from @BotFather)", "Allowed user ids or usernames (comma-separated, empty = nobody)"
	case ChannelDiscord:
		return "Bot token", "Allowed user ids (comma-separated, empty = nobody)"
	case ChannelSlack:
		return "Bot token (xoxb-...)", "Allowed user ids (comma-separated, empty = nobody)"
	case ChannelIMessage:
		return "Press Enter to continue", "Allowed contacts (comma-separated phone numbers or emails)"
	case ChannelMatrix:
		return "Access token", "Homeserver URL (default " + defaultMatrixServer + ")"
	case ChannelSignal:
		return "Account (E.164 phone number)", "Group id (optional)"
	case ChannelWhatsApp:
		return "Cloud API access token", "Phone number id"
	case ChannelLinq:
		return "API token", "From phone (E.164)"
	case ChannelIRC:
		return "Server (default " + defaultIRCServer + ")", "Nickname (default " + defaultIRCNickname + ")"
	case ChannelWebhook:
		return "Port (default 8081)", "Shared secret (optional)"
	case ChannelNextcloudTalk:
		return "Nextcloud base URL", "App token"
	case ChannelDingTalk:
		return "Client id", "Client secret"
	case ChannelQQOfficial:
		return "App id", "App secret"
	case ChannelLark, ChannelFeishu:
		return "App id", "App secret"
	case ChannelNostr:
		return "Private key (nsec or hex)", "Allowed pubkeys (comma-separated, empty = anyone)"
	}
	return "", ""
}

// TunnelConfig returns the tunnel section built from the answers.
func (a *Answers) TunnelConfig() config.TunnelConfig {
	primary := a.Value(FieldTunnelPrimary)
	secondary := a.Value(FieldTunnelSecondary)

	var spec config.TunnelSpec
	switch a.Tunnel {
	case TunnelCloudflare:
		spec = &config.CloudflareTunnel{Token: primary}
	case TunnelTailscale:
		spec = &config.TailscaleTunnel{Funnel: a.TunnelToggle, Hostname: config.Optional(secondary)}
	case TunnelNgrok:
		spec = &config.NgrokTunnel{AuthToken: primary, Domain: config.Optional(secondary)}
	case TunnelCustom:
		spec = &config.CustomTunnel{StartCommand: primary, HealthURL: config.Optional(secondary)}
	}
	return config.NewTunnelConfig(spec)
}

// TunnelPrompts returns the labels of the primary and secondary tunnel fields.
func TunnelPrompts(choice TunnelChoice) (primary, secondary string) {
	switch choice {
	case TunnelCloudflare:
		return "Tunnel token", ""
	case TunnelTailscale:
		return "Press Tab to toggle Funnel (public internet)", "Hostname (optional)"
	case TunnelNgrok:
		return "Auth token", "Reserved domain (optional)"
	case TunnelCustom:
		return "Start command", "Health check URL (optional)"
	}
	return "", ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
