package domain

import (
	"context"
	"time"
)

// TopFilter narrows the top anime list
type TopFilter string

const (
	TopFilterByPopularity TopFilter = "bypopularity"
	TopFilterFavorite     TopFilter = "favorite"
	TopFilterAiring       TopFilter = "airing"
	TopFilterUpcoming     TopFilter = "upcoming"
)

func (f TopFilter) Valid() bool {
	switch f {
	case "", TopFilterByPopularity, TopFilterFavorite, TopFilterAiring, TopFilterUpcoming:
		return true
	}
	return false
}

// AnimeType is the media type accepted by the top list endpoint
type AnimeType string

const (
	AnimeTypeTV      AnimeType = "tv"
	AnimeTypeMovie   AnimeType = "movie"
	AnimeTypeOVA     AnimeType = "ova"
	AnimeTypeSpecial AnimeType = "special"
	AnimeTypeONA     AnimeType = "ona"
	AnimeTypeMusic   AnimeType = "music"
)

func (t AnimeType) Valid() bool {
	switch t {
	case "", AnimeTypeTV, AnimeTypeMovie, AnimeTypeOVA, AnimeTypeSpecial, AnimeTypeONA, AnimeTypeMusic:
		return true
	}
	return false
}

// TopQuery selects a page of the top anime list. Empty Type and Filter mean unfiltered.
type TopQuery struct {
	Type   AnimeType
	Filter TopFilter
	Page   int
}

type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall:
		return true
	}
	return false
}

// CurrentSeason returns the broadcast season t falls in.
// December belongs to winter of the same calendar year.
func CurrentSeason(t time.Time) (int, Season) {
	switch m := t.Month(); {
	case m >= time.March && m < time.June:
		return t.Year(), SeasonSpring
	case m >= time.June && m < time.September:
		return t.Year(), SeasonSummer
	case m >= time.September && m < time.December:
		return t.Year(), SeasonFall
	}
	return t.Year(), SeasonWinter
}

// CatalogService is the read side of the anime catalog
type CatalogService interface {
	Search(ctx context.Context, query string, limit int) ([]Anime, error)
	Anime(ctx context.Context, id int) (Anime, error)
	Recommendations(ctx context.Context, id int) ([]Recommendation, error)
	News(ctx context.Context, id int) ([]News, error)
	Details(ctx context.Context, id int) (*AnimeDetails, error)
	Top(ctx context.Context, q TopQuery) ([]Anime, error)
	Season(ctx context.Context, year int, season Season) ([]Anime, error)
	ClearCache(ctx context.Context) error
}
