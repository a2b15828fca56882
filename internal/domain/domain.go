package domain

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Anime stores a catalog record as returned by Jikan.
// Only the fields needed for display are decoded; the full object is kept in raw
// and written back unchanged so stored records never lose data.
type Anime struct {
	ID            int     `json:"mal_id"`
	URL           string  `json:"url,omitempty"`
	Title         string  `json:"title"`
	TitleEnglish  string  `json:"title_english,omitempty"`
	TitleJapanese string  `json:"title_japanese,omitempty"`
	Type          string  `json:"type,omitempty"`
	Status        string  `json:"status,omitempty"`
	Episodes      int     `json:"episodes,omitempty"`
	Duration      string  `json:"duration,omitempty"`
	Score         float64 `json:"score,omitempty"`
	Rank          int     `json:"rank,omitempty"`
	Year          int     `json:"year,omitempty"`
	Season        string  `json:"season,omitempty"`
	Synopsis      string  `json:"synopsis,omitempty"`
	Images        Images  `json:"images"`
	Trailer       Trailer `json:"trailer"`
	Genres        []Genre `json:"genres,omitempty"`

	raw json.RawMessage
}

type Images struct {
	JPG struct {
		ImageURL      string `json:"image_url,omitempty"`
		SmallImageURL string `json:"small_image_url,omitempty"`
		LargeImageURL string `json:"large_image_url,omitempty"`
	} `json:"jpg"`
}

type Trailer struct {
	YoutubeID string `json:"youtube_id,omitempty"`
	URL       string `json:"url,omitempty"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

type Genre struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// animeFields breaks the UnmarshalJSON/MarshalJSON recursion.
type animeFields Anime

func (a *Anime) UnmarshalJSON(b []byte) error {
	var f animeFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}

	*a = Anime(f)
	a.raw = append(json.RawMessage(nil), bytes.TrimSpace(b)...)
	return nil
}

func (a Anime) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	return json.Marshal(animeFields(a))
}

// Raw returns the record exactly as it was decoded, or nil for records built in code.
func (a Anime) Raw() json.RawMessage {
	return a.raw
}

// DisplayTitle returns the best available title for an anime.
func (a Anime) DisplayTitle() string {
	switch {
	case a.TitleEnglish != "":
		return a.TitleEnglish
	case a.TitleJapanese != "":
		return a.TitleJapanese
	case a.Title != "":
		return a.Title
	}
	return "Unknown"
}

// ValidateAnime checks the fields a record needs before it can be saved.
func ValidateAnime(a Anime) error {
	if a.ID <= 0 {
		return errors.Wrap(ErrInvalidArgument, "mal_id is required")
	}
	if a.Title == "" {
		return errors.Wrap(ErrInvalidArgument, "title is required")
	}
	return nil
}

// Recommendation is an entry of /anime/{id}/recommendations.
type Recommendation struct {
	Entry struct {
		MalID  int    `json:"mal_id"`
		URL    string `json:"url"`
		Title  string `json:"title"`
		Images Images `json:"images"`
	} `json:"entry"`
	URL   string `json:"url"`
	Votes int    `json:"votes"`
}

// News is an entry of /anime/{id}/news.
type News struct {
	MalID          int    `json:"mal_id"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	Date           string `json:"date"`
	AuthorUsername string `json:"author_username"`
	Comments       int    `json:"comments"`
	Excerpt        string `json:"excerpt"`
}

// AnimeDetails is everything shown on an anime page.
type AnimeDetails struct {
	Anime           Anime            `json:"anime"`
	Recommendations []Recommendation `json:"recommendations"`
	News            []News           `json:"news"`
}
