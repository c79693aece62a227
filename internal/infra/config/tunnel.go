package config

// Tunnel provider tags.
const (
	TunnelNone       = "none"
	TunnelCloudflare = "cloudflare"
	TunnelTailscale  = "tailscale"
	TunnelNgrok      = "ngrok"
	TunnelCustom     = "custom"
)

// TunnelConfig is a provider tag plus at most one populated sub-struct.
type TunnelConfig struct {
	Provider   string            `yaml:"provider"`
	Cloudflare *CloudflareTunnel `yaml:"cloudflare,omitempty"`
	Tailscale  *TailscaleTunnel  `yaml:"tailscale,omitempty"`
	Ngrok      *NgrokTunnel      `yaml:"ngrok,omitempty"`
	Custom     *CustomTunnel     `yaml:"custom,omitempty"`
}

// TunnelSpec is implemented by every provider-specific tunnel struct.
type TunnelSpec interface {
	TunnelProvider() string
	attachTunnel(t *TunnelConfig)
}

// NewTunnelConfig builds a tunnel section from spec. A nil spec means none.
func NewTunnelConfig(spec TunnelSpec) TunnelConfig {
	if spec == nil {
		return TunnelConfig{Provider: TunnelNone}
	}
	t := TunnelConfig{Provider: spec.TunnelProvider()}
	spec.attachTunnel(&t)
	return t
}

// populated returns the tag of the single populated sub-struct, "none" when
// nothing is populated, or "" when more than one is.
func (t TunnelConfig) populated() string {
	tags := make([]string, 0, 1)
	if t.Cloudflare != nil {
		tags = append(tags, TunnelCloudflare)
	}
	if t.Tailscale != nil {
		tags = append(tags, TunnelTailscale)
	}
	if t.Ngrok != nil {
		tags = append(tags, TunnelNgrok)
	}
	if t.Custom != nil {
		tags = append(tags, TunnelCustom)
	}
	switch len(tags) {
	case 0:
		return TunnelNone
	case 1:
		return tags[0]
	default:
		return ""
	}
}

// CloudflareTunnel uses a cloudflared connector token.
type CloudflareTunnel struct {
	Token string `yaml:"token"`
}

func (c *CloudflareTunnel) TunnelProvider() string      { return TunnelCloudflare }
func (c *CloudflareTunnel) attachTunnel(t *TunnelConfig) { t.Cloudflare = c }

// TailscaleTunnel exposes the agent over tailscale serve or funnel.
type TailscaleTunnel struct {
	Funnel   bool    `yaml:"funnel"`
	Hostname *string `yaml:"hostname,omitempty"`
}

func (s *TailscaleTunnel) TunnelProvider() string      { return TunnelTailscale }
func (s *TailscaleTunnel) attachTunnel(t *TunnelConfig) { t.Tailscale = s }

// NgrokTunnel uses an ngrok auth token and optional reserved domain.
type NgrokTunnel struct {
	AuthToken string  `yaml:"auth_token"`
	Domain    *string `yaml:"domain,omitempty"`
}

func (n *NgrokTunnel) TunnelProvider() string      { return TunnelNgrok }
func (n *NgrokTunnel) attachTunnel(t *TunnelConfig) { t.Ngrok = n }

// CustomTunnel runs an arbitrary command.
type CustomTunnel struct {
	StartCommand string  `yaml:"start_command"`
	HealthURL    *string `yaml:"health_url,omitempty"`
	URLPattern   *string `yaml:"url_pattern,omitempty"`
}

func (c *CustomTunnel) TunnelProvider() string      { return TunnelCustom }
func (c *CustomTunnel) attachTunnel(t *TunnelConfig) { t.Custom = c }
