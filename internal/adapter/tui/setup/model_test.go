package setup

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	onboard "zeroclaw/cmd/zeroclaw/setup"
)

type stubLookup struct {
	models []string
	err    error
	got    onboard.CatalogRequest
}

func (s *stubLookup) FetchLiveModels(_ context.Context, provider, apiKey, baseURL string) ([]string, error) {
	s.got = onboard.CatalogRequest{Provider: provider, APIKey: apiKey, BaseURL: baseURL}
	return s.models, s.err
}

func newModel(t *testing.T, lookup onboard.CatalogLookup) WizardModel {
	t.Helper()
	dir := t.TempDir()
	a := onboard.NewAnswers(dir, filepath.Join(dir, "workspace"), false)
	return NewWizardModel(context.Background(), a, lookup)
}

func press(t *testing.T, m WizardModel, msg tea.Msg) (WizardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(WizardModel)
	require.True(t, ok)
	return wm, cmd
}

func enter(t *testing.T, m WizardModel) WizardModel {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func typeText(t *testing.T, m WizardModel, s string) WizardModel {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestWizardEnterAdvances(t *testing.T) {
	m := newModel(t, nil)
	assert.Equal(t, onboard.StepWelcome, m.Answers().Step)

	m = enter(t, m)
	assert.Equal(t, onboard.StepWorkspaceSetup, m.Answers().Step)
	assert.False(t, m.focused, "default workspace takes no typing")

	m = enter(t, m)
	assert.Equal(t, onboard.StepProviderTierSelection, m.Answers().Step)
	assert.Equal(t, int(onboard.StepProviderTierSelection), m.steps.Current())
}

func TestWizardTabTogglesWorkspaceInput(t *testing.T) {
	m := enter(t, newModel(t, nil))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.Answers().UseDefaultWorkspace)
	require.True(t, m.focused)

	m = typeText(t, m, "/tmp/proj")
	assert.Equal(t, "/tmp/proj", m.Answers().Value(onboard.FieldWorkspace))
}

func TestWizardArrowKeysMoveSelection(t *testing.T) {
	m := enter(t, enter(t, newModel(t, nil)))
	require.Equal(t, onboard.StepProviderTierSelection, m.Answers().Step)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Answers().Cursor[onboard.ListProviderTier])
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Answers().Cursor[onboard.ListProviderTier])
}

func TestWizardCatalogRoundTrip(t *testing.T) {
	lookup := &stubLookup{models: []string{"live-model"}}
	m := newModel(t, lookup)
	for m.Answers().Step != onboard.StepAPIKeyEntry {
		before := m.Answers().Step
		m = enter(t, m)
		require.NotEqual(t, before, m.Answers().Step)
	}
	require.True(t, m.focused)
	assert.True(t, m.field.IsSecret)

	m = typeText(t, m, "sk-test")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Answers().Loading)
	assert.Equal(t, onboard.StepAPIKeyEntry, m.Answers().Step)

	// Keys other than cancel are ignored while loading.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Answers().Loading)

	req := onboard.CatalogRequest{Provider: m.Answers().Provider, APIKey: "sk-test"}
	msg := fetchCatalogCmd(context.Background(), lookup, req)()
	assert.Equal(t, "sk-test", lookup.got.APIKey)

	m, _ = press(t, m, msg)
	a := m.Answers()
	assert.False(t, a.Loading)
	assert.Equal(t, onboard.StepModelSelection, a.Step)
	assert.Contains(t, a.Models(), "live-model")
	assert.Equal(t, onboard.CustomModelSentinel, a.Models()[len(a.Models())-1])
}

func TestFetchCatalogWithoutLookup(t *testing.T) {
	msg := fetchCatalogCmd(context.Background(), nil, onboard.CatalogRequest{})()
	res, ok := msg.(CatalogResultMsg)
	require.True(t, ok)
	assert.Error(t, res.Err)
}

func TestWizardCatalogFailureFallsBack(t *testing.T) {
	m := newModel(t, nil)
	m.Answers().Provider = "openai"
	m.Answers().Step = onboard.StepAPIKeyEntry

	m, _ = press(t, m, CatalogResultMsg{Err: errors.New("boom")})
	assert.Equal(t, onboard.StepModelSelection, m.Answers().Step)
	assert.NotEmpty(t, m.Answers().Models())
	assert.Contains(t, m.View(), "Live fetch unavailable")
	assert.Contains(t, m.View(), "Unexpected Error")
}

func TestWizardEscCancels(t *testing.T) {
	m := newModel(t, nil)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, m.Answers().Cancelled())
}

func TestWizardConfirmationQuits(t *testing.T) {
	m := newModel(t, nil)
	m.Answers().Step = onboard.StepConfirmation
	assert.Contains(t, m.View(), "Review your choices")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, onboard.StepDone, m.Answers().Step)
	assert.False(t, m.Answers().Cancelled())
}

func TestWizardViewShowsOptions(t *testing.T) {
	m := enter(t, enter(t, newModel(t, nil)))
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "ZeroClaw Onboarding")
	assert.Contains(t, view, "ProviderTierSelection")
	for _, tier := range m.Answers().Options(onboard.ListProviderTier) {
		assert.Contains(t, view, tier)
	}
}
