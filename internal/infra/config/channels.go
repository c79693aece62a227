package config

// ChannelsConfig holds the CLI flag plus at most one sub-config per channel.
type ChannelsConfig struct {
	CLI                bool   `yaml:"cli"`
	MessageTimeoutSecs uint64 `yaml:"message_timeout_secs"`

	Telegram      *TelegramConfig      `yaml:"telegram,omitempty"`
	Discord       *DiscordConfig       `yaml:"discord,omitempty"`
	Slack         *SlackConfig         `yaml:"slack,omitempty"`
	IMessage      *IMessageConfig      `yaml:"imessage,omitempty"`
	Matrix        *MatrixConfig        `yaml:"matrix,omitempty"`
	Signal        *SignalConfig        `yaml:"signal,omitempty"`
	WhatsApp      *WhatsAppConfig      `yaml:"whatsapp,omitempty"`
	Linq          *LinqConfig          `yaml:"linq,omitempty"`
	IRC           *IRCConfig           `yaml:"irc,omitempty"`
	Webhook       *WebhookConfig       `yaml:"webhook,omitempty"`
	NextcloudTalk *NextcloudTalkConfig `yaml:"nextcloud_talk,omitempty"`
	DingTalk      *DingTalkConfig      `yaml:"dingtalk,omitempty"`
	QQ            *QQConfig            `yaml:"qq,omitempty"`
	Lark          *LarkConfig          `yaml:"lark,omitempty"`
	Feishu        *FeishuConfig        `yaml:"feishu,omitempty"`
	Nostr         *NostrConfig         `yaml:"nostr,omitempty"`
}

// ChannelSpec is implemented by every per-channel sub-config. Attaching a
// spec to a ChannelsConfig populates exactly the matching field.
type ChannelSpec interface {
	ChannelName() string
	attach(c *ChannelsConfig)
}

// NewChannelsConfig returns a fresh channels section with the CLI enabled
// and, when spec is non-nil, that single channel populated.
func NewChannelsConfig(spec ChannelSpec) ChannelsConfig {
	c := ChannelsConfig{CLI: true, MessageTimeoutSecs: 300}
	if spec != nil {
		spec.attach(&c)
	}
	return c
}

// ChannelStatus reports whether a named channel has a sub-config.
type ChannelStatus struct {
	Name       string
	Configured bool
}

// Channels lists every non-CLI channel in display order.
func (c ChannelsConfig) Channels() []ChannelStatus {
	return []ChannelStatus{
		{"Telegram", c.Telegram != nil},
		{"Discord", c.Discord != nil},
		{"Slack", c.Slack != nil},
		{"iMessage", c.IMessage != nil},
		{"Matrix", c.Matrix != nil},
		{"Signal", c.Signal != nil},
		{"WhatsApp", c.WhatsApp != nil},
		{"Linq", c.Linq != nil},
		{"IRC", c.IRC != nil},
		{"Webhook", c.Webhook != nil},
		{"Nextcloud Talk", c.NextcloudTalk != nil},
		{"DingTalk", c.DingTalk != nil},
		{"QQ Official", c.QQ != nil},
		{"Lark", c.Lark != nil},
		{"Feishu", c.Feishu != nil},
		{"Nostr", c.Nostr != nil},
	}
}

// ConfiguredCount returns how many non-CLI channels are configured.
func (c ChannelsConfig) ConfiguredCount() int {
	n := 0
	for _, ch := range c.Channels() {
		if ch.Configured {
			n++
		}
	}
	return n
}

// ConfiguredExceptWebhook counts configured channels other than the CLI and
// the inbound webhook, which needs no long-running listener of its own.
func (c ChannelsConfig) ConfiguredExceptWebhook() int {
	n := c.ConfiguredCount()
	if c.Webhook != nil {
		n--
	}
	return n
}

// TelegramConfig holds Telegram bot settings.
type TelegramConfig struct {
	BotToken              string   `yaml:"bot_token"`
	AllowedUsers          []string `yaml:"allowed_users"`
	StreamMode            string   `yaml:"stream_mode"` // off, partial
	DraftUpdateIntervalMs uint64   `yaml:"draft_update_interval_ms"`
	InterruptOnNewMessage bool     `yaml:"interrupt_on_new_message"`
	MentionOnly           bool     `yaml:"mention_only"`
}

func (t *TelegramConfig) ChannelName() string      { return "telegram" }
func (t *TelegramConfig) attach(c *ChannelsConfig) { c.Telegram = t }

// DiscordConfig holds Discord bot settings.
type DiscordConfig struct {
	BotToken     string   `yaml:"bot_token"`
	GuildID      *string  `yaml:"guild_id,omitempty"`
	AllowedUsers []string `yaml:"allowed_users"`
	ListenToBots bool     `yaml:"listen_to_bots"`
	MentionOnly  bool     `yaml:"mention_only"`
}

func (d *DiscordConfig) ChannelName() string      { return "discord" }
func (d *DiscordConfig) attach(c *ChannelsConfig) { c.Discord = d }

// SlackConfig holds Slack bot settings.
type SlackConfig struct {
	BotToken     string   `yaml:"bot_token"`
	AppToken     *string  `yaml:"app_token,omitempty"`
	ChannelID    *string  `yaml:"channel_id,omitempty"`
	AllowedUsers []string `yaml:"allowed_users"`
}

func (s *SlackConfig) ChannelName() string      { return "slack" }
func (s *SlackConfig) attach(c *ChannelsConfig) { c.Slack = s }

// IMessageConfig holds iMessage settings.
type IMessageConfig struct {
	AllowedContacts []string `yaml:"allowed_contacts"`
}

func (i *IMessageConfig) ChannelName() string      { return "imessage" }
func (i *IMessageConfig) attach(c *ChannelsConfig) { c.IMessage = i }

// MatrixConfig holds Matrix settings.
type MatrixConfig struct {
	Homeserver   string   `yaml:"homeserver"`
	AccessToken  string   `yaml:"access_token"`
	UserID       *string  `yaml:"user_id,omitempty"`
	DeviceID     *string  `yaml:"device_id,omitempty"`
	RoomID       string   `yaml:"room_id"`
	AllowedUsers []string `yaml:"allowed_users"`
}

func (m *MatrixConfig) ChannelName() string      { return "matrix" }
func (m *MatrixConfig) attach(c *ChannelsConfig) { c.Matrix = m }

// SignalConfig holds signal-cli REST bridge settings.
type SignalConfig struct {
	HTTPURL           string   `yaml:"http_url"`
	Account           string   `yaml:"account"`
	GroupID           *string  `yaml:"group_id,omitempty"`
	AllowedFrom       []string `yaml:"allowed_from"`
	IgnoreAttachments bool     `yaml:"ignore_attachments"`
	IgnoreStories     bool     `yaml:"ignore_stories"`
}

func (s *SignalConfig) ChannelName() string      { return "signal" }
func (s *SignalConfig) attach(c *ChannelsConfig) { c.Signal = s }

// WhatsAppConfig holds WhatsApp Cloud API settings.
type WhatsAppConfig struct {
	AccessToken    *string  `yaml:"access_token,omitempty"`
	PhoneNumberID  *string  `yaml:"phone_number_id,omitempty"`
	VerifyToken    *string  `yaml:"verify_token,omitempty"`
	AppSecret      *string  `yaml:"app_secret,omitempty"`
	AllowedNumbers []string `yaml:"allowed_numbers"`
}

func (w *WhatsAppConfig) ChannelName() string      { return "whatsapp" }
func (w *WhatsAppConfig) attach(c *ChannelsConfig) { c.WhatsApp = w }

// LinqConfig holds Linq messaging settings.
type LinqConfig struct {
	APIToken       string   `yaml:"api_token"`
	FromPhone      string   `yaml:"from_phone"`
	SigningSecret  *string  `yaml:"signing_secret,omitempty"`
	AllowedSenders []string `yaml:"allowed_senders"`
}

func (l *LinqConfig) ChannelName() string      { return "linq" }
func (l *LinqConfig) attach(c *ChannelsConfig) { c.Linq = l }

// IRCConfig holds IRC settings.
type IRCConfig struct {
	Server           string   `yaml:"server"`
	Port             uint16   `yaml:"port"`
	Nickname         string   `yaml:"nickname"`
	Username         *string  `yaml:"username,omitempty"`
	Channels         []string `yaml:"channels"`
	AllowedUsers     []string `yaml:"allowed_users"`
	ServerPassword   *string  `yaml:"server_password,omitempty"`
	NickservPassword *string  `yaml:"nickserv_password,omitempty"`
	VerifyTLS        *bool    `yaml:"verify_tls,omitempty"`
}

func (i *IRCConfig) ChannelName() string      { return "irc" }
func (i *IRCConfig) attach(c *ChannelsConfig) { c.IRC = i }

// WebhookConfig holds the inbound webhook listener settings.
type WebhookConfig struct {
	Port   uint16  `yaml:"port"`
	Secret *string `yaml:"secret,omitempty"`
}

func (w *WebhookConfig) ChannelName() string      { return "webhook" }
func (w *WebhookConfig) attach(c *ChannelsConfig) { c.Webhook = w }

// NextcloudTalkConfig holds Nextcloud Talk bot settings.
type NextcloudTalkConfig struct {
	BaseURL       string   `yaml:"base_url"`
	AppToken      string   `yaml:"app_token"`
	WebhookSecret *string  `yaml:"webhook_secret,omitempty"`
	AllowedUsers  []string `yaml:"allowed_users"`
}

func (n *NextcloudTalkConfig) ChannelName() string      { return "nextcloud_talk" }
func (n *NextcloudTalkConfig) attach(c *ChannelsConfig) { c.NextcloudTalk = n }

// DingTalkConfig holds DingTalk stream-mode settings.
type DingTalkConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	AllowedUsers []string `yaml:"allowed_users"`
}

func (d *DingTalkConfig) ChannelName() string      { return "dingtalk" }
func (d *DingTalkConfig) attach(c *ChannelsConfig) { c.DingTalk = d }

// QQConfig holds QQ Official bot settings.
type QQConfig struct {
	AppID        string   `yaml:"app_id"`
	AppSecret    string   `yaml:"app_secret"`
	AllowedUsers []string `yaml:"allowed_users"`
}

func (q *QQConfig) ChannelName() string      { return "qq" }
func (q *QQConfig) attach(c *ChannelsConfig) { c.QQ = q }

// Lark receive modes.
const (
	ReceiveModeWebsocket = "websocket"
	ReceiveModeWebhook   = "webhook"
)

// LarkConfig holds Lark bot settings.
type LarkConfig struct {
	AppID             string   `yaml:"app_id"`
	AppSecret         string   `yaml:"app_secret"`
	EncryptKey        *string  `yaml:"encrypt_key,omitempty"`
	VerificationToken *string  `yaml:"verification_token,omitempty"`
	AllowedUsers      []string `yaml:"allowed_users"`
	MentionOnly       bool     `yaml:"mention_only"`
	UseFeishu         bool     `yaml:"use_feishu"`
	ReceiveMode       string   `yaml:"receive_mode"`
	Port              *uint16  `yaml:"port,omitempty"`
}

func (l *LarkConfig) ChannelName() string      { return "lark" }
func (l *LarkConfig) attach(c *ChannelsConfig) { c.Lark = l }

// FeishuConfig holds Feishu bot settings.
type FeishuConfig struct {
	AppID             string   `yaml:"app_id"`
	AppSecret         string   `yaml:"app_secret"`
	EncryptKey        *string  `yaml:"encrypt_key,omitempty"`
	VerificationToken *string  `yaml:"verification_token,omitempty"`
	AllowedUsers      []string `yaml:"allowed_users"`
	ReceiveMode       string   `yaml:"receive_mode"`
	Port              *uint16  `yaml:"port,omitempty"`
}

func (f *FeishuConfig) ChannelName() string      { return "feishu" }
func (f *FeishuConfig) attach(c *ChannelsConfig) { c.Feishu = f }

// NostrConfig holds Nostr settings.
type NostrConfig struct {
	PrivateKey     string   `yaml:"private_key"`
	Relays         []string `yaml:"relays"`
	AllowedPubkeys []string `yaml:"allowed_pubkeys"`
}

func (n *NostrConfig) ChannelName() string      { return "nostr" }
func (n *NostrConfig) attach(c *ChannelsConfig) { c.Nostr = n }

// DefaultNostrRelays is the relay set used when none are configured.
func DefaultNostrRelays() []string {
	return []string{
		"wss://relay.damus.io",
		"wss://nos.lol",
		"wss://relay.primal.net",
		"wss://relay.snort.social",
	}
}
