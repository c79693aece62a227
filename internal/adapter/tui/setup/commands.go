package setup

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	onboard "zeroclaw/cmd/zeroclaw/setup"
	"zeroclaw/internal/adapter/llm"
	"zeroclaw/internal/domain"
)

var errNoCatalog = domain.NewDomainError("wizard.fetchCatalog", domain.ErrCatalogUnavailable, "no catalog configured")

// fetchCatalogCmd runs the live model fetch off the UI goroutine.
func fetchCatalogCmd(ctx context.Context, lookup onboard.CatalogLookup, req onboard.CatalogRequest) tea.Cmd {
	return func() tea.Msg {
		if lookup == nil {
			return CatalogResultMsg{Err: errNoCatalog}
		}
		ctx, cancel := context.WithTimeout(ctx, llm.FetchTimeout)
		defer cancel()
		models, err := lookup.FetchLiveModels(ctx, req.Provider, req.APIKey, req.BaseURL)
		return CatalogResultMsg{Models: models, Err: err}
	}
}
