package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/slack-go/slack"
	"golang.org/x/time/rate"

	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
)

// ProbeResult is the outcome of checking one configured channel.
type ProbeResult struct {
	Channel string
	OK      bool
	Probed  bool
	Detail  string
}

// Doctor checks configured channel credentials against the live services.
type Doctor struct {
	logger  *slog.Logger
	client  *http.Client
	limiter *rate.Limiter

	telegramEndpoint string
	slackAPIURL      string
}

// NewDoctor creates a doctor that issues at most two probes per second.
func NewDoctor(logger *slog.Logger) *Doctor {
	return &Doctor{
		logger:           logger,
		client:           &http.Client{Timeout: 10 * time.Second},
		limiter:          rate.NewLimiter(rate.Limit(2), 1),
		telegramEndpoint: tgbotapi.APIEndpoint,
	}
}

// Check probes every configured channel in display order.
func (d *Doctor) Check(ctx context.Context, ch config.ChannelsConfig) []ProbeResult {
	var out []ProbeResult
	for _, s := range ch.Channels() {
		if !s.Configured {
			continue
		}
		var probe func(context.Context) (string, error)
		switch {
		case s.Name == "Telegram":
			probe = func(context.Context) (string, error) { return d.probeTelegram(ch.Telegram.BotToken) }
		case s.Name == "Discord":
			probe = func(context.Context) (string, error) { return d.probeDiscord(ch.Discord.BotToken) }
		case s.Name == "Slack":
			probe = func(ctx context.Context) (string, error) { return d.probeSlack(ctx, ch.Slack.BotToken) }
		case s.Name == "Matrix":
			probe = func(ctx context.Context) (string, error) {
				return d.probeMatrix(ctx, ch.Matrix.Homeserver, ch.Matrix.AccessToken)
			}
		}

		if probe == nil {
			out = append(out, ProbeResult{Channel: s.Name, OK: true, Detail: "configured (no probe)"})
			continue
		}
		if err := d.limiter.Wait(ctx); err != nil {
			out = append(out, ProbeResult{Channel: s.Name, Probed: true, Detail: err.Error()})
			continue
		}
		detail, err := probe(ctx)
		if err != nil {
			d.logger.Debug("channel probe failed", "channel", s.Name, "error", err)
			out = append(out, ProbeResult{Channel: s.Name, Probed: true,
				Detail: domain.NewDomainError("channel.Check", domain.ErrProbeFailed, err.Error()).Error()})
			continue
		}
		out = append(out, ProbeResult{Channel: s.Name, OK: true, Probed: true, Detail: detail})
	}
	return out
}

func (d *Doctor) probeTelegram(token string) (string, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, d.telegramEndpoint, d.client)
	if err != nil {
		return "", fmt.Errorf("telegram getMe: %w", err)
	}
	return "@" + bot.Self.UserName, nil
}

func (d *Doctor) probeDiscord(token string) (string, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return "", fmt.Errorf("discord session: %w", err)
	}
	dg.Client = d.client
	u, err := dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("discord users/@me: %w", err)
	}
	return u.Username, nil
}

func (d *Doctor) probeSlack(ctx context.Context, token string) (string, error) {
	opts := []slack.Option{slack.OptionHTTPClient(d.client)}
	if d.slackAPIURL != "" {
		opts = append(opts, slack.OptionAPIURL(d.slackAPIURL))
	}
	resp, err := slack.New(token, opts...).AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("slack auth.test: %w", err)
	}
	return fmt.Sprintf("%s in %s", resp.User, resp.Team), nil
}

func (d *Doctor) probeMatrix(ctx context.Context, homeserver, token string) (string, error) {
	url := strings.TrimRight(homeserver, "/") + "/_matrix/client/v3/account/whoami"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("matrix whoami: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("matrix whoami: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var who struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &who); err != nil {
		return "", fmt.Errorf("unmarshal whoami: %w", err)
	}
	return who.UserID, nil
}
