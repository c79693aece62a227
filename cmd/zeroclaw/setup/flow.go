package setup

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"zeroclaw/internal/adapter/hardware"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/domain"
	"zeroclaw/internal/infra/config"
)

// CatalogLookup fetches live model ids for a provider.
type CatalogLookup interface {
	FetchLiveModels(ctx context.Context, provider, apiKey, baseURL string) ([]string, error)
}

// CatalogRequest describes a pending live catalog fetch.
type CatalogRequest struct {
	Provider string
	APIKey   string
	BaseURL  string
}

// Advance confirms the current step and moves to the next one. Steps whose
// required input is missing stay where they are. The catalog fetch on
// leaving ApiKeyEntry runs synchronously through lookup; a nil lookup
// degrades to the curated list.
func (a *Answers) Advance(ctx context.Context, lookup CatalogLookup) Step {
	if a.Step == StepAPIKeyEntry {
		req := a.BeginCatalog()
		var live []string
		var err error = domain.NewDomainError("setup.Advance", domain.ErrCatalogUnavailable, "no catalog configured")
		if lookup != nil {
			live, err = lookup.FetchLiveModels(ctx, req.Provider, req.APIKey, req.BaseURL)
		}
		a.ApplyCatalog(live, err)
		return a.Step
	}
	a.Step = a.next()
	return a.Step
}

// next applies the current step's answer and returns the following step.
func (a *Answers) next() Step {
	switch a.Step {
	case StepWelcome:
		if a.HasExistingConfig() && !a.Force {
			return StepConfigModeSelection
		}
		a.Mode = ModeFullOnboarding
		return StepWorkspaceSetup

	case StepConfigModeSelection:
		if a.Cursor[ListMode] == 0 {
			a.Mode = ModeFullOnboarding
		} else {
			a.Mode = ModeUpdateProviderOnly
		}
		return StepWorkspaceSetup

	case StepWorkspaceSetup:
		if !a.UseDefaultWorkspace {
			if ws := a.Value(FieldWorkspace); ws != "" {
				a.ConfigDir, a.WorkspaceDir = config.ResolveConfigDirForWorkspace(config.ExpandTilde(ws))
				a.ConfigPath = filepath.Join(a.ConfigDir, config.ConfigFileName)
			}
		}
		return StepProviderTierSelection

	case StepProviderTierSelection:
		a.tierProviders = llm.ProvidersForTier(a.Cursor[ListProviderTier])
		a.Cursor[ListProvider] = 0
		if len(a.tierProviders) == 0 {
			return StepCustomProviderURLEntry
		}
		return StepProviderSelection

	case StepProviderSelection:
		idx := a.Cursor[ListProvider]
		if idx < 0 || idx >= len(a.tierProviders) {
			return a.Step
		}
		a.Provider = a.tierProviders[idx].Name
		a.APIURL = ""
		if llm.RequiresEndpoint(a.Provider) {
			return StepProviderEndpointEntry
		}
		return StepAPIKeyEntry

	case StepCustomProviderURLEntry:
		url := strings.TrimRight(a.Value(FieldCustomProviderURL), "/")
		if url == "" {
			return a.Step
		}
		a.Provider = llm.CustomProviderPrefix + url
		a.APIURL = ""
		return StepAPIKeyEntry

	case StepProviderEndpointEntry:
		url := strings.TrimRight(a.Value(FieldProviderEndpoint), "/")
		if url == "" {
			return a.Step
		}
		a.APIURL = url
		return StepAPIKeyEntry

	case StepModelSelection:
		idx := a.Cursor[ListModel]
		if idx < 0 || idx >= len(a.models) {
			return a.Step
		}
		if a.models[idx] == CustomModelSentinel {
			return StepModelCustomEntry
		}
		a.Model = a.models[idx]
		return StepChannelSelection

	case StepModelCustomEntry:
		typed := a.Value(FieldModelCustom)
		if typed == "" {
			return a.Step
		}
		a.Model = typed
		return StepChannelSelection

	case StepChannelSelection:
		a.Channel = ChannelChoice(a.Cursor[ListChannel])
		a.channel = nil
		if a.Channel == ChannelCLIOnly {
			return StepTunnelSelection
		}
		return StepChannelTokenEntry

	case StepChannelTokenEntry:
		if a.Channel == ChannelCLIOnly {
			return StepTunnelSelection
		}
		return StepChannelAuxEntry

	case StepChannelAuxEntry:
		a.channel = channelSpec(a.Channel, a.Value(FieldChannelToken), a.Value(FieldChannelAux))
		return StepTunnelSelection

	case StepTunnelSelection:
		a.Tunnel = TunnelChoice(a.Cursor[ListTunnel])
		if a.Tunnel == TunnelNone {
			return StepToolModeSelection
		}
		return StepTunnelPrimaryEntry

	case StepTunnelPrimaryEntry:
		if a.Tunnel == TunnelCloudflare {
			return StepToolModeSelection
		}
		return StepTunnelSecondaryEntry

	case StepTunnelSecondaryEntry:
		return StepToolModeSelection

	case StepToolModeSelection:
		if a.Cursor[ListToolMode] == int(ToolModeComposio) {
			a.ToolMode = ToolModeComposio
			return StepComposioAPIKeyEntry
		}
		a.ToolMode = ToolModeSovereign
		return StepSecretsEncryptChoice

	case StepComposioAPIKeyEntry:
		return StepSecretsEncryptChoice

	case StepSecretsEncryptChoice:
		return StepHardwareSelection

	case StepHardwareSelection:
		a.HardwareChoice = hardware.Choice(a.Cursor[ListHardware])
		return StepMemorySelection

	case StepMemorySelection:
		a.MemoryChoice = a.Cursor[ListMemory]
		a.MemoryAutoSave = a.AutoSave()
		return StepProjectUserEntry

	case StepProjectUserEntry:
		return StepProjectTimezoneEntry
	case StepProjectTimezoneEntry:
		return StepProjectAgentEntry
	case StepProjectAgentEntry:
		return StepProjectStyleSelection

	case StepProjectStyleSelection:
		if a.Cursor[ListStyle] == CustomStyleIndex {
			return StepProjectStyleCustomEntry
		}
		return StepConfirmation

	case StepProjectStyleCustomEntry:
		return StepConfirmation

	case StepConfirmation:
		return StepDone
	}
	return a.Step
}

// BeginCatalog records the typed API key and marks the catalog as loading.
// The returned request is handed to the live fetch.
func (a *Answers) BeginCatalog() CatalogRequest {
	a.APIKey = a.Value(FieldAPIKey)
	a.Loading = true
	a.Status = fmt.Sprintf("Fetching models for %s...", a.Provider)
	return CatalogRequest{
		Provider: a.Provider,
		APIKey:   a.APIKey,
		BaseURL:  a.APIURL,
	}
}

// ApplyCatalog merges the curated list with the live fetch result, appends
// the custom-model sentinel and moves to ModelSelection.
func (a *Answers) ApplyCatalog(live []string, err error) {
	curated := llm.CuratedModels(a.Provider)
	if err != nil {
		a.Status = fmt.Sprintf("Live fetch unavailable: %v", err)
		live = nil
	} else {
		a.Status = "Loaded live + curated model catalog"
	}

	merged := llm.MergeModels(curated, live)
	if len(merged) == 0 {
		merged = []string{llm.DefaultModelFor(a.Provider)}
	}
	a.models = append(merged, CustomModelSentinel)
	a.Cursor[ListModel] = 0
	a.Loading = false
	a.Step = StepModelSelection
}
