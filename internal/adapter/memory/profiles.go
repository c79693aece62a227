package memory

import "zeroclaw/internal/infra/config"

// Profile describes a selectable memory backend.
type Profile struct {
	Key             string
	Label           string
	AutoSaveDefault bool
	SQLiteHygiene   bool
}

var profiles = []Profile{
	{Key: "sqlite", Label: "SQLite with vector search (recommended)", AutoSaveDefault: true, SQLiteHygiene: true},
	{Key: "lucid", Label: "Lucid bridge (sqlite + remote recall)", AutoSaveDefault: true, SQLiteHygiene: true},
	{Key: "markdown", Label: "Markdown files", AutoSaveDefault: true},
	{Key: "none", Label: "None (stateless)"},
}

// Profiles returns the selectable backends in display order.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ProfileAt returns the profile at idx, clamped into range.
func ProfileAt(idx int) Profile {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(profiles) {
		idx = len(profiles) - 1
	}
	return profiles[idx]
}

// ProfileFor returns the profile for key, falling back to sqlite.
func ProfileFor(key string) Profile {
	for _, p := range profiles {
		if p.Key == key {
			return p
		}
	}
	return profiles[0]
}

// ConfigForBackend builds the memory section defaults for key.
func ConfigForBackend(key string) config.MemoryConfig {
	p := ProfileFor(key)

	var archive, purge uint32
	cacheSize := 0
	if p.SQLiteHygiene {
		archive, purge = 7, 30
		cacheSize = 10000
	}

	return config.MemoryConfig{
		Backend:                   p.Key,
		AutoSave:                  p.AutoSaveDefault,
		HygieneEnabled:            p.SQLiteHygiene,
		ArchiveAfterDays:          archive,
		PurgeAfterDays:            purge,
		ConversationRetentionDays: 30,
		EmbeddingProvider:         "none",
		EmbeddingModel:            "text-embedding-3-small",
		EmbeddingDimensions:       1536,
		VectorWeight:              0.7,
		KeywordWeight:             0.3,
		MinRelevanceScore:         0.4,
		EmbeddingCacheSize:        cacheSize,
		ChunkMaxTokens:            512,
		ResponseCacheEnabled:      false,
		ResponseCacheTTLMinutes:   60,
		ResponseCacheMaxEntries:   5000,
		SnapshotEnabled:           false,
		SnapshotOnHygiene:         false,
		AutoHydrate:               true,
	}
}
