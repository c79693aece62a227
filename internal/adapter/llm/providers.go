package llm

import (
	"strings"
)

// CustomProviderPrefix marks a provider id that carries its own base URL.
const CustomProviderPrefix = "custom:"

// FallbackModel is used for providers without a documented default.
const FallbackModel = "anthropic/claude-sonnet-4.6"

// ProviderInfo describes one selectable model provider.
type ProviderInfo struct {
	Name         string
	Display      string
	Local        bool
	BaseURL      string // OpenAI-compatible base; empty when the models endpoint is not compatible
	DefaultModel string
	Curated      []string
}

// Tier groups providers on the tier selection screen.
type Tier struct {
	Label     string
	Providers []string
}

var providers = []ProviderInfo{
	{Name: "openrouter", Display: "OpenRouter", BaseURL: "https://openrouter.ai/api/v1", DefaultModel: FallbackModel,
		Curated: []string{FallbackModel, "anthropic/claude-sonnet-4", "openai/gpt-4o", "openai/gpt-4o-mini", "google/gemini-2.0-flash-001", "meta-llama/llama-3.3-70b-instruct", "deepseek/deepseek-chat"}},
	{Name: "venice", Display: "Venice AI", BaseURL: "https://api.venice.ai/api/v1", DefaultModel: "llama-3.3-70b",
		Curated: []string{"llama-3.3-70b", "claude-opus-45", "llama-3.1-405b"}},
	{Name: "anthropic", Display: "Anthropic", DefaultModel: "claude-sonnet-4-20250514",
		Curated: []string{"claude-sonnet-4-20250514", "claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"}},
	{Name: "openai", Display: "OpenAI", BaseURL: "https://api.openai.com/v1", DefaultModel: "gpt-4o",
		Curated: []string{"gpt-4o", "gpt-4o-mini", "o1-mini"}},
	{Name: "deepseek", Display: "DeepSeek", BaseURL: "https://api.deepseek.com/v1", DefaultModel: "deepseek-chat",
		Curated: []string{"deepseek-chat", "deepseek-reasoner"}},
	{Name: "mistral", Display: "Mistral", BaseURL: "https://api.mistral.ai/v1", DefaultModel: "mistral-large-latest",
		Curated: []string{"mistral-large-latest", "codestral-latest", "mistral-small-latest"}},
	{Name: "xai", Display: "xAI (Grok)", BaseURL: "https://api.x.ai/v1", DefaultModel: "grok-3",
		Curated: []string{"grok-3", "grok-3-mini"}},
	{Name: "perplexity", Display: "Perplexity", BaseURL: "https://api.perplexity.ai", DefaultModel: "sonar-pro",
		Curated: []string{"sonar-pro", "sonar"}},
	{Name: "gemini", Display: "Google Gemini", BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai", DefaultModel: "gemini-2.0-flash",
		Curated: []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-pro", "gemini-1.5-flash"}},

	{Name: "groq", Display: "Groq", BaseURL: "https://api.groq.com/openai/v1", DefaultModel: "llama-3.3-70b-versatile",
		Curated: []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768"}},
	{Name: "fireworks", Display: "Fireworks AI", BaseURL: "https://api.fireworks.ai/inference/v1", DefaultModel: "accounts/fireworks/models/llama-v3p3-70b-instruct",
		Curated: []string{"accounts/fireworks/models/llama-v3p3-70b-instruct", "accounts/fireworks/models/mixtral-8x22b-instruct"}},
	{Name: "together", Display: "Together AI", BaseURL: "https://api.together.xyz/v1", DefaultModel: "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo",
		Curated: []string{"meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo", "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo", "mistralai/Mixtral-8x22B-Instruct-v0.1"}},
	{Name: "novita", Display: "Novita AI", BaseURL: "https://api.novita.ai/v3/openai", DefaultModel: "meta-llama/llama-3.3-70b-instruct",
		Curated: []string{"meta-llama/llama-3.3-70b-instruct", "deepseek/deepseek-v3"}},

	{Name: "vercel", Display: "Vercel AI Gateway", BaseURL: "https://ai-gateway.vercel.sh/v1", DefaultModel: "anthropic/claude-sonnet-4",
		Curated: []string{"anthropic/claude-sonnet-4", "openai/gpt-4o", "xai/grok-3"}},
	{Name: "cloudflare", Display: "Cloudflare AI Gateway", DefaultModel: "@cf/meta/llama-3.3-70b-instruct-fp8-fast",
		Curated: []string{"@cf/meta/llama-3.3-70b-instruct-fp8-fast", "@cf/meta/llama-3.1-8b-instruct"}},
	{Name: "bedrock", Display: "Amazon Bedrock", DefaultModel: "anthropic.claude-3-5-sonnet-20241022-v2:0",
		Curated: []string{"anthropic.claude-3-5-sonnet-20241022-v2:0", "anthropic.claude-3-5-haiku-20241022-v1:0", "amazon.nova-pro-v1:0"}},

	{Name: "moonshot", Display: "Moonshot (Kimi)", BaseURL: "https://api.moonshot.cn/v1", DefaultModel: "moonshot-v1-128k",
		Curated: []string{"moonshot-v1-128k", "moonshot-v1-32k"}},
	{Name: "glm", Display: "GLM (Zhipu)", BaseURL: "https://open.bigmodel.cn/api/paas/v4", DefaultModel: "glm-5",
		Curated: []string{"glm-5", "glm-4-plus", "glm-4-flash"}},
	{Name: "minimax", Display: "MiniMax", BaseURL: "https://api.minimax.chat/v1", DefaultModel: "abab6.5s-chat",
		Curated: []string{"abab6.5s-chat", "abab6.5-chat"}},
	{Name: "qianfan", Display: "Baidu Qianfan", BaseURL: "https://qianfan.baidubce.com/v2", DefaultModel: "ernie-4.0-8k",
		Curated: []string{"ernie-4.0-8k", "ernie-3.5-8k"}},
	{Name: "zai", Display: "Z.AI", BaseURL: "https://api.z.ai/api/paas/v4", DefaultModel: "glm-4.5",
		Curated: []string{"glm-4.5", "glm-4.5-air"}},
	{Name: "synthetic", Display: "Synthetic", BaseURL: "https://api.synthetic.new/v1", DefaultModel: "hf:meta-llama/Llama-3.3-70B-Instruct",
		Curated: []string{"hf:meta-llama/Llama-3.3-70B-Instruct", "hf:deepseek-ai/DeepSeek-V3"}},
	{Name: "opencode", Display: "OpenCode Zen", BaseURL: "https://opencode.ai/zen/v1", DefaultModel: "claude-sonnet-4",
		Curated: []string{"claude-sonnet-4", "gpt-4o"}},
	{Name: "cohere", Display: "Cohere", BaseURL: "https://api.cohere.com/compatibility/v1", DefaultModel: "command-r-plus",
		Curated: []string{"command-r-plus", "command-r"}},

	{Name: "ollama", Display: "Ollama", Local: true, BaseURL: "http://localhost:11434", DefaultModel: "llama3.2",
		Curated: []string{"llama3.2", "mistral", "codellama", "phi3"}},
	{Name: "llamacpp", Display: "llama.cpp server", Local: true, BaseURL: "http://localhost:8080/v1", DefaultModel: "local-model",
		Curated: []string{"local-model"}},
	{Name: "sglang", Display: "SGLang", Local: true, BaseURL: "http://localhost:30000/v1", DefaultModel: "meta-llama/Llama-3.1-8B-Instruct",
		Curated: []string{"meta-llama/Llama-3.1-8B-Instruct"}},
	{Name: "vllm", Display: "vLLM", Local: true, BaseURL: "http://localhost:8000/v1", DefaultModel: "meta-llama/Llama-3.1-8B-Instruct",
		Curated: []string{"meta-llama/Llama-3.1-8B-Instruct", "Qwen/Qwen2.5-7B-Instruct"}},
	{Name: "osaurus", Display: "Osaurus", Local: true, BaseURL: "http://localhost:1337/v1", DefaultModel: "llama-3.2-3b-instruct-4bit",
		Curated: []string{"llama-3.2-3b-instruct-4bit"}},
}

var tiers = []Tier{
	{Label: "Recommended (OpenRouter, Venice, Anthropic, OpenAI, Gemini)",
		Providers: []string{"openrouter", "venice", "anthropic", "openai", "deepseek", "mistral", "xai", "perplexity", "gemini"}},
	{Label: "Fast inference (Groq, Fireworks, Together, Novita)",
		Providers: []string{"groq", "fireworks", "together", "novita"}},
	{Label: "Gateway / proxy (Vercel, Cloudflare, Bedrock)",
		Providers: []string{"vercel", "cloudflare", "bedrock"}},
	{Label: "Specialized (Moonshot, GLM, MiniMax, Qianfan, Z.AI, Synthetic, OpenCode, Cohere)",
		Providers: []string{"moonshot", "glm", "minimax", "qianfan", "zai", "synthetic", "opencode", "cohere"}},
	{Label: "Local / private (Ollama, llama.cpp, SGLang, vLLM, Osaurus)",
		Providers: []string{"ollama", "llamacpp", "sglang", "vllm", "osaurus"}},
	{Label: "Custom (any OpenAI-compatible endpoint)"},
}

// Providers that only run behind an operator-supplied endpoint.
var manualEndpoint = map[string]bool{
	"llamacpp": true,
	"sglang":   true,
	"vllm":     true,
	"osaurus":  true,
}

var byName = func() map[string]ProviderInfo {
	m := make(map[string]ProviderInfo, len(providers))
	for _, p := range providers {
		m[p.Name] = p
	}
	return m
}()

// Providers returns every known provider in display order.
func Providers() []ProviderInfo {
	out := make([]ProviderInfo, len(providers))
	copy(out, providers)
	return out
}

// Lookup returns the provider registered under name.
func Lookup(name string) (ProviderInfo, bool) {
	p, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Tiers returns the tier labels in display order.
func Tiers() []string {
	out := make([]string, len(tiers))
	for i, t := range tiers {
		out[i] = t.Label
	}
	return out
}

// ProvidersForTier returns the providers of tier idx. The custom tier and
// out-of-range indices yield an empty list.
func ProvidersForTier(idx int) []ProviderInfo {
	if idx < 0 || idx >= len(tiers) {
		return nil
	}
	out := make([]ProviderInfo, 0, len(tiers[idx].Providers))
	for _, name := range tiers[idx].Providers {
		out = append(out, byName[name])
	}
	return out
}

// RequiresEndpoint reports whether provider needs a manually entered endpoint.
func RequiresEndpoint(provider string) bool {
	return manualEndpoint[provider]
}

// IsCustom reports whether provider is a custom:<url> id.
func IsCustom(provider string) bool {
	return strings.HasPrefix(provider, CustomProviderPrefix)
}

// DefaultModelFor returns the documented default model for provider.
func DefaultModelFor(provider string) string {
	if p, ok := Lookup(provider); ok && p.DefaultModel != "" {
		return p.DefaultModel
	}
	return FallbackModel
}

// CuratedModels returns the built-in model list for provider.
func CuratedModels(provider string) []string {
	p, ok := Lookup(provider)
	if !ok {
		return nil
	}
	out := make([]string, len(p.Curated))
	copy(out, p.Curated)
	return out
}

// BaseURLFor resolves the models endpoint base for provider. An explicit
// override wins, then a custom:<url> id, then the registry entry.
func BaseURLFor(provider, override string) string {
	if u := strings.TrimRight(strings.TrimSpace(override), "/"); u != "" {
		return u
	}
	if IsCustom(provider) {
		return strings.TrimRight(strings.TrimPrefix(provider, CustomProviderPrefix), "/")
	}
	if p, ok := Lookup(provider); ok {
		return p.BaseURL
	}
	return ""
}
