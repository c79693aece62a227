package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"

	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/tracer"
)

// FetchTimeout bounds a single live catalog request.
const FetchTimeout = 10 * time.Second

// Breaker settings for catalog endpoints.
const (
	cbMaxFailures uint32        = 3
	cbTimeout     time.Duration = 30 * time.Second
	cbInterval    time.Duration = 60 * time.Second
)

// Catalog fetches live model lists from provider endpoints. Each provider
// gets its own circuit breaker so a dead endpoint fails fast on retries.
type Catalog struct {
	client *http.Client
	logger *slog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]string]
}

// NewCatalog creates a catalog client. A nil client gets a pooled default.
func NewCatalog(client *http.Client, logger *slog.Logger) *Catalog {
	if client == nil {
		client = &http.Client{Transport: newTransport()}
	}
	return &Catalog{
		client:   client,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[[]string]),
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: FetchTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
}

func (c *Catalog) breaker(provider string) *gobreaker.CircuitBreaker[[]string] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[provider]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        "catalog:" + provider,
		MaxRequests: 1,
		Interval:    cbInterval,
		Timeout:     cbTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	c.breakers[provider] = cb
	return cb
}

// FetchLiveModels lists model ids served by provider. baseURL overrides the
// registry endpoint. The request is bounded by FetchTimeout.
func (c *Catalog) FetchLiveModels(ctx context.Context, provider, apiKey, baseURL string) ([]string, error) {
	ctx, span := tracer.StartSpan(ctx, "onboard.catalog")
	span.SetAttributes(tracer.StringAttr("provider", provider))
	defer span.End()

	base := BaseURLFor(provider, baseURL)
	if base == "" {
		err := domain.NewDomainError("llm.FetchLiveModels", domain.ErrCatalogUnavailable,
			fmt.Sprintf("provider %q has no model listing endpoint", provider))
		tracer.RecordError(span, err)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	models, err := c.breaker(provider).Execute(func() ([]string, error) {
		if provider == "ollama" {
			return c.listOllama(ctx, base)
		}
		return c.listOpenAICompatible(ctx, base, apiKey)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = domain.NewDomainError("llm.FetchLiveModels", domain.ErrCatalogUnavailable,
				fmt.Sprintf("provider %q circuit open", provider))
		}
		tracer.RecordError(span, err)
		c.logger.Debug("live model fetch failed", "provider", provider, "error", err)
		return nil, err
	}

	span.SetAttributes(tracer.IntAttr("models", len(models)))
	tracer.SetOK(span)
	return models, nil
}

func (c *Catalog) listOpenAICompatible(ctx context.Context, base, apiKey string) ([]string, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = base
	cfg.HTTPClient = c.client
	list, err := openai.NewClientWithConfig(cfg).ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// listOllama uses the native tags endpoint, which needs no key.
func (c *Catalog) listOllama(ctx context.Context, base string) ([]string, error) {
	url := strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1") + "/api/tags"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", httpResp.StatusCode, string(body))
	}

	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	ids := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		ids = append(ids, m.Name)
	}
	return ids, nil
}

// MergeModels returns the sorted, de-duplicated union of trimmed non-empty
// ids from every list.
func MergeModels(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, id := range list {
			if id = strings.TrimSpace(id); id != "" {
				seen[id] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
