package format

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/varoOP/animewatch/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy orders a result list
type SortBy string

const (
	SortNone  SortBy = ""
	SortScore SortBy = "score"
	SortName  SortBy = "name"
)

// ParseSortBy accepts "", "score" or "name"
func ParseSortBy(s string) (SortBy, error) {
	switch by := SortBy(s); by {
	case SortNone, SortScore, SortName:
		return by, nil
	}
	return SortNone, errors.Wrapf(domain.ErrInvalidArgument, "unknown sort %q (must be 'score' or 'name')", s)
}

// SortAnime returns a sorted copy of items. Score sorts highest first with unscored
// anime counted as 0; name sorts by English title, falling back to the default title.
// Equal elements keep their catalog order.
func SortAnime(items []domain.Anime, by SortBy) []domain.Anime {
	out := make([]domain.Anime, len(items))
	copy(out, items)

	switch by {
	case SortScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Score > out[j].Score
		})
	case SortName:
		c := collate.New(language.Und)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(sortTitle(out[i]), sortTitle(out[j])) < 0
		})
	}
	return out
}

func sortTitle(a domain.Anime) string {
	if a.TitleEnglish != "" {
		return a.TitleEnglish
	}
	return a.Title
}
