package setup

// Step identifies one screen of the onboarding wizard.
type Step int

const (
	StepWelcome Step = iota
	StepConfigModeSelection
	StepWorkspaceSetup
	StepProviderTierSelection
	StepProviderSelection
	StepCustomProviderURLEntry
	StepProviderEndpointEntry
	StepAPIKeyEntry
	StepModelSelection
	StepModelCustomEntry
	StepChannelSelection
	StepChannelTokenEntry
	StepChannelAuxEntry
	StepTunnelSelection
	StepTunnelPrimaryEntry
	StepTunnelSecondaryEntry
	StepToolModeSelection
	StepComposioAPIKeyEntry
	StepSecretsEncryptChoice
	StepHardwareSelection
	StepMemorySelection
	StepProjectUserEntry
	StepProjectTimezoneEntry
	StepProjectAgentEntry
	StepProjectStyleSelection
	StepProjectStyleCustomEntry
	StepConfirmation
	StepDone
)

// stepCount is the number of defined steps.
const stepCount = int(StepDone) + 1

var stepNames = [stepCount]string{
	"Welcome",
	"ConfigModeSelection",
	"WorkspaceSetup",
	"ProviderTierSelection",
	"ProviderSelection",
	"CustomProviderUrlEntry",
	"ProviderEndpointEntry",
	"ApiKeyEntry",
	"ModelSelection",
	"ModelCustomEntry",
	"ChannelSelection",
	"ChannelTokenEntry",
	"ChannelAuxEntry",
	"TunnelSelection",
	"TunnelPrimaryEntry",
	"TunnelSecondaryEntry",
	"ToolModeSelection",
	"ComposioApiKeyEntry",
	"SecretsEncryptChoice",
	"HardwareSelection",
	"MemorySelection",
	"ProjectUserEntry",
	"ProjectTimezoneEntry",
	"ProjectAgentEntry",
	"ProjectStyleSelection",
	"ProjectStyleCustomEntry",
	"Confirmation",
	"Done",
}

func (s Step) String() string {
	if s < 0 || int(s) >= stepCount {
		return "Unknown"
	}
	return stepNames[s]
}

// Steps returns every step in declaration order.
func Steps() []Step {
	out := make([]Step, stepCount)
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

// Mode controls how much of an existing config a session rewrites.
type Mode int

const (
	ModeFullOnboarding Mode = iota
	ModeUpdateProviderOnly
)

func (m Mode) String() string {
	if m == ModeUpdateProviderOnly {
		return "update provider only"
	}
	return "full onboarding"
}

// ModeLabels are shown on the mode selection screen.
var ModeLabels = []string{
	"Full onboarding (overwrite existing config)",
	"Update AI provider / model / API key only (keep everything else)",
}

// ChannelChoice is the communication channel picked in the wizard.
type ChannelChoice int

const (
	ChannelCLIOnly ChannelChoice = iota
	ChannelTelegram
	ChannelDiscord
	ChannelSlack
	ChannelIMessage
	ChannelMatrix
	ChannelSignal
	ChannelWhatsApp
	ChannelLinq
	ChannelIRC
	ChannelWebhook
	ChannelNextcloudTalk
	ChannelDingTalk
	ChannelQQOfficial
	ChannelLark
	ChannelFeishu
	ChannelNostr
)

// ChannelLabels are indexed by ChannelChoice.
var ChannelLabels = []string{
	"CLI only",
	"Telegram",
	"Discord",
	"Slack",
	"iMessage",
	"Matrix",
	"Signal",
	"WhatsApp",
	"Linq",
	"IRC",
	"Webhook",
	"Nextcloud Talk",
	"DingTalk",
	"QQ Official",
	"Lark",
	"Feishu",
	"Nostr",
}

func (c ChannelChoice) String() string {
	if c < 0 || int(c) >= len(ChannelLabels) {
		return ChannelLabels[0]
	}
	return ChannelLabels[c]
}

// TunnelChoice is the public tunnel picked in the wizard.
type TunnelChoice int

const (
	TunnelNone TunnelChoice = iota
	TunnelCloudflare
	TunnelTailscale
	TunnelNgrok
	TunnelCustom
)

// TunnelLabels are indexed by TunnelChoice.
var TunnelLabels = []string{
	"None (local only)",
	"Cloudflare Tunnel",
	"Tailscale",
	"ngrok",
	"Custom command",
}

func (t TunnelChoice) String() string {
	if t < 0 || int(t) >= len(TunnelLabels) {
		return TunnelLabels[0]
	}
	return TunnelLabels[t]
}

// ToolMode selects how tools are authorized.
type ToolMode int

const (
	ToolModeSovereign ToolMode = iota
	ToolModeComposio
)

// ToolModeLabels are indexed by ToolMode.
var ToolModeLabels = []string{
	"Sovereign (local tools, you hold the keys)",
	"Composio (managed OAuth for 1000+ apps)",
}
