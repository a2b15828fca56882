package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/animewatch/internal/domain"
)

func TestSortAnime(t *testing.T) {
	items := []domain.Anime{
		{ID: 1, Title: "Shingeki no Kyojin", TitleEnglish: "Attack on Titan", Score: 8.5},
		{ID: 2, Title: "yuru camp", Score: 0},
		{ID: 3, Title: "Bocchi the Rock!", Score: 8.8},
		{ID: 4, Title: "Kimetsu no Yaiba", TitleEnglish: "Demon Slayer", Score: 8.5},
		{ID: 5, Title: "Zankyou no Terror", TitleEnglish: "Terror in Resonance"},
	}

	tests := []struct {
		name string
		by   SortBy
		want []int
	}{
		{name: "none keeps catalog order", by: SortNone, want: []int{1, 2, 3, 4, 5}},
		{name: "score descending, unscored last, ties stable", by: SortScore, want: []int{3, 1, 4, 2, 5}},
		{name: "name uses english title then default title", by: SortName, want: []int{1, 3, 4, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortAnime(items, tt.by)

			ids := make([]int, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("input untouched", func(t *testing.T) {
		SortAnime(items, SortScore)
		assert.Equal(t, 1, items[0].ID)
	})
}

func TestParseSortBy(t *testing.T) {
	for _, s := range []string{"", "score", "name"} {
		by, err := ParseSortBy(s)
		require.NoError(t, err)
		assert.Equal(t, SortBy(s), by)
	}

	_, err := ParseSortBy("date")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
