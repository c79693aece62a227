package memory

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	ps := Profiles()
	require.Len(t, ps, 4)
	assert.Equal(t, "sqlite", ps[0].Key)
	assert.Equal(t, "none", ps[3].Key)
	assert.False(t, ps[3].AutoSaveDefault)

	assert.Equal(t, "sqlite", ProfileAt(-5).Key)
	assert.Equal(t, "none", ProfileAt(99).Key)
	assert.Equal(t, "sqlite", ProfileFor("unknown").Key)
}

func TestConfigForBackend(t *testing.T) {
	sqlite := ConfigForBackend("sqlite")
	assert.Equal(t, "sqlite", sqlite.Backend)
	assert.True(t, sqlite.AutoSave)
	assert.True(t, sqlite.HygieneEnabled)
	assert.Equal(t, uint32(7), sqlite.ArchiveAfterDays)
	assert.Equal(t, uint32(30), sqlite.PurgeAfterDays)
	assert.Equal(t, 10000, sqlite.EmbeddingCacheSize)
	assert.True(t, sqlite.AutoHydrate)

	md := ConfigForBackend("markdown")
	assert.True(t, md.AutoSave)
	assert.False(t, md.HygieneEnabled)
	assert.Zero(t, md.ArchiveAfterDays)
	assert.Zero(t, md.PurgeAfterDays)
	assert.Zero(t, md.EmbeddingCacheSize)
	assert.Equal(t, uint32(30), md.ConversationRetentionDays)

	none := ConfigForBackend("none")
	assert.False(t, none.AutoSave)
	assert.Equal(t, 1536, none.EmbeddingDimensions)
}

func TestSQLiteStoreRecentAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)
	store, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, key := range []string{"first", "second", "third"} {
		require.NoError(t, store.Store(ctx, Entry{
			Key:       key,
			Content:   "content " + key,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Key)
	assert.Equal(t, "second", recent[1].Key)
	assert.Equal(t, "core", recent[0].Category)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(2*time.Hour)))
}

func journalMode(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	return mode
}

func TestSQLiteReaderLeavesDatabaseUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, migrate(db))
	_, err = db.Exec("INSERT INTO memories (key, category, content, created_at) VALUES ('k', 'core', 'v', '2026-01-01T00:00:00Z')")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Equal(t, "delete", journalMode(t, path))

	ctx := context.Background()
	store, err := OpenSQLiteReader(ctx, path)
	require.NoError(t, err)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	recent, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "k", recent[0].Key)

	assert.Error(t, store.Store(ctx, Entry{Key: "x", Content: "y"}))
	require.NoError(t, store.Close())

	assert.Equal(t, "delete", journalMode(t, path))
}

func TestSQLiteReaderWithoutTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), SQLiteFile)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE other (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ctx := context.Background()
	store, err := OpenSQLiteReader(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	recent, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestMarkdownEntries(t *testing.T) {
	dir := t.TempDir()
	withFM := "---\nkey: prefs\ncategory: user\ncreated_at: 2026-02-01T00:00:00Z\n---\n# Likes tea\nmore\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(withFM), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("\n\n## Standup at 9\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("ignored"), 0o600))

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "notes.md"), old, old))

	entries, err := MarkdownEntries(dir, 20)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "prefs", entries[0].Key)
	assert.Equal(t, "user", entries[0].Category)
	assert.Equal(t, "Likes tea", entries[0].Content)

	assert.Equal(t, "notes", entries[1].Key)
	assert.Equal(t, "Standup at 9", entries[1].Content)

	limited, err := MarkdownEntries(dir, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
