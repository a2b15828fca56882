package database

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/animewatch/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "data", "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Migrate(t *testing.T) {
	db := newTestDB(t)

	var version int
	require.NoError(t, db.handler.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	// running again is a no-op
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Ping(context.Background()))
}

func TestStorageRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewStorageRepo(zerolog.Nop(), newTestDB(t))

	t.Run("MissingSlot", func(t *testing.T) {
		_, err := repo.Get(ctx, domain.SlotWatchlist)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, domain.SlotTheme, []byte(`{"isDark":false}`)))

		value, err := repo.Get(ctx, domain.SlotTheme)
		require.NoError(t, err)
		assert.JSONEq(t, `{"isDark":false}`, string(value))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, domain.SlotWatchlist, []byte(`[1]`)))
		require.NoError(t, repo.Set(ctx, domain.SlotWatchlist, []byte(`[1,2]`)))

		value, err := repo.Get(ctx, domain.SlotWatchlist)
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, string(value))
	})
}

func TestCacheRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewCacheRepo(zerolog.Nop(), newTestDB(t), 30*time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	_, ok := repo.Get(ctx, "missing")
	assert.False(t, ok)

	repo.Put(ctx, "k", json.RawMessage(`{"a":1}`))
	repo.Put(ctx, "k", json.RawMessage(`{"b":2}`))

	val, ok := repo.Get(ctx, "k")
	require.True(t, ok)
	assert.JSONEq(t, `{"b":2}`, string(val))

	now = now.Add(30 * time.Minute)
	_, ok = repo.Get(ctx, "k")
	assert.False(t, ok, "entry should expire after the TTL")

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Entries)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 2, stats.Misses)

	require.NoError(t, repo.Clear(ctx))
	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.Entries)
}
