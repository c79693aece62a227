package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheTTL is how long a cached live catalog counts as fresh.
const CacheTTL = 12 * time.Hour

// CachedModels is one provider's last successful live fetch.
type CachedModels struct {
	FetchedAt time.Time `json:"fetched_at"`
	Models    []string  `json:"models"`
}

// ModelsCache persists live catalog results under <workspace>/state.
type ModelsCache struct {
	path string
	now  func() time.Time
}

// NewModelsCache returns a cache stored in workspaceDir/state/models_cache.json.
func NewModelsCache(workspaceDir string) *ModelsCache {
	return &ModelsCache{
		path: filepath.Join(workspaceDir, "state", "models_cache.json"),
		now:  time.Now,
	}
}

// Path returns the cache file location.
func (c *ModelsCache) Path() string { return c.path }

func (c *ModelsCache) load() (map[string]CachedModels, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return map[string]CachedModels{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read models cache: %w", err)
	}
	entries := map[string]CachedModels{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse models cache: %w", err)
	}
	return entries, nil
}

// Get returns the cached entry for provider and whether it is still fresh.
func (c *ModelsCache) Get(provider string) (CachedModels, bool, error) {
	entries, err := c.load()
	if err != nil {
		return CachedModels{}, false, err
	}
	e, ok := entries[provider]
	if !ok {
		return CachedModels{}, false, nil
	}
	return e, c.now().Sub(e.FetchedAt) < CacheTTL, nil
}

// Put records models for provider.
func (c *ModelsCache) Put(provider string, models []string) error {
	entries, err := c.load()
	if err != nil {
		// A corrupt cache is replaced rather than blocking refreshes.
		entries = map[string]CachedModels{}
	}
	entries[provider] = CachedModels{FetchedAt: c.now().UTC(), Models: models}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal models cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write models cache: %w", err)
	}
	return nil
}
