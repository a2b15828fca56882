package domain

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnime_KeepsUnknownFields(t *testing.T) {
	in := `{"mal_id":1,"title":"Cowboy Bebop","score":8.75,"rating":"R - 17+","studios":[{"name":"Sunrise"}]}`

	var a Anime
	require.NoError(t, json.Unmarshal([]byte(in), &a))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 8.75, a.Score)

	out, err := json.Marshal([]Anime{a})
	require.NoError(t, err)
	assert.JSONEq(t, "["+in+"]", string(out))
}

func TestAnime_MarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Anime{ID: 7, Title: "Built in code"})
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.EqualValues(t, 7, back["mal_id"])
	assert.Equal(t, "Built in code", back["title"])
}

func TestAnime_DisplayTitle(t *testing.T) {
	tests := []struct {
		name  string
		anime Anime
		want  string
	}{
		{"English", Anime{Title: "Shingeki no Kyojin", TitleEnglish: "Attack on Titan", TitleJapanese: "進撃の巨人"}, "Attack on Titan"},
		{"Japanese", Anime{Title: "Shingeki no Kyojin", TitleJapanese: "進撃の巨人"}, "進撃の巨人"},
		{"Default", Anime{Title: "Shingeki no Kyojin"}, "Shingeki no Kyojin"},
		{"Unknown", Anime{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.anime.DisplayTitle())
		})
	}
}

func TestValidateAnime(t *testing.T) {
	assert.NoError(t, ValidateAnime(Anime{ID: 1, Title: "x"}))
	assert.ErrorIs(t, ValidateAnime(Anime{Title: "x"}), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateAnime(Anime{ID: 1}), ErrInvalidArgument)
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonFall},
		{time.November, SeasonFall},
		{time.December, SeasonWinter},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			year, season := CurrentSeason(time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC))
			assert.Equal(t, 2025, year)
			assert.Equal(t, tt.want, season)
		})
	}
}

func TestCatalogEnums(t *testing.T) {
	assert.True(t, TopFilter("").Valid())
	assert.True(t, TopFilterUpcoming.Valid())
	assert.False(t, TopFilter("newest").Valid())

	assert.True(t, AnimeType("").Valid())
	assert.True(t, AnimeTypeMusic.Valid())
	assert.False(t, AnimeType("manga").Valid())

	assert.True(t, SeasonFall.Valid())
	assert.False(t, Season("").Valid())
}

func TestNetworkError(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		err := errors.Wrap(&NetworkError{URL: "https://api.jikan.moe/v4/anime/0", StatusCode: 404}, "failed to fetch anime")
		assert.ErrorIs(t, err, ErrNetwork)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "status 404")

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, 404, netErr.StatusCode)
	})

	t.Run("Transport", func(t *testing.T) {
		err := &NetworkError{URL: "https://api.jikan.moe/v4/anime", Err: io.ErrUnexpectedEOF}
		assert.ErrorIs(t, err, ErrNetwork)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
