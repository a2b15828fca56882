package preference

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/repository"
)

func newStorage(t *testing.T) domain.Storage {
	t.Helper()
	return repository.NewFileRepository(zerolog.Nop(), domain.NewPaths(t.TempDir()))
}

func TestThemeStore(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)
	store := NewThemeStore(zerolog.Nop(), storage)

	t.Run("DefaultsToDark", func(t *testing.T) {
		assert.Equal(t, DefaultTheme, store.Get(ctx))
		assert.Equal(t, "dark", store.Get(ctx).String())
	})

	t.Run("Toggle", func(t *testing.T) {
		theme, err := store.Toggle(ctx)
		require.NoError(t, err)
		assert.False(t, theme.IsDark)
		assert.Equal(t, "light", store.Get(ctx).String())

		theme, err = store.Toggle(ctx)
		require.NoError(t, err)
		assert.True(t, theme.IsDark)
	})

	t.Run("Malformed", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, domain.SlotTheme, []byte("nope")))
		assert.Equal(t, DefaultTheme, store.Get(ctx))
	})
}

func TestThemeStore_ConcurrentToggle(t *testing.T) {
	ctx := context.Background()
	store := NewThemeStore(zerolog.Nop(), newStorage(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Toggle(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// an even number of toggles lands back on the default
	assert.Equal(t, DefaultTheme, store.Get(ctx))
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme("light")
	require.NoError(t, err)
	assert.False(t, theme.IsDark)

	_, err = ParseTheme("sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSearchHistory(t *testing.T) {
	ctx := context.Background()
	history := NewSearchHistory(zerolog.Nop(), newStorage(t))

	assert.Empty(t, history.List(ctx))

	require.NoError(t, history.Add(ctx, "naruto"))
	require.NoError(t, history.Add(ctx, "bleach"))
	require.NoError(t, history.Add(ctx, " naruto "))
	require.NoError(t, history.Add(ctx, "   "))
	assert.Equal(t, []string{"naruto", "bleach"}, history.List(ctx))

	t.Run("KeepsLastTen", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			require.NoError(t, history.Add(ctx, fmt.Sprintf("term %d", i)))
		}
		terms := history.List(ctx)
		require.Len(t, terms, MaxSearchHistory)
		assert.Equal(t, "term 14", terms[0])
		assert.Equal(t, "term 5", terms[9])
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, history.Clear(ctx))
		assert.Empty(t, history.List(ctx))
	})
}
