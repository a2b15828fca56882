package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/cache"
	"github.com/varoOP/animewatch/internal/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.jikan.moe/v4"
	DefaultTimeout = 15 * time.Second
	// DefaultRatePerSecond matches Jikan's public limit
	DefaultRatePerSecond = 3

	DefaultSearchLimit = 6
	maxSearchLimit     = 25
	minQueryLength     = 2
	maxRecommendations = 6
	maxNews            = 5
)

type service struct {
	log     zerolog.Logger
	baseURL string
	client  *http.Client
	cache   domain.ResponseCache
	limiter *rate.Limiter
	group   singleflight.Group
}

// envelope is the top level of every Jikan response
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type userAgentTransport struct {
	Transport http.RoundTripper
	UserAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	req.Header.Set("User-Agent", t.UserAgent)
	req.Header.Set("Accept", "application/json")
	return transport.RoundTrip(req)
}

// NewService creates a catalog client. Requests are rate limited, bounded by the
// configured timeout and never retried.
func NewService(log zerolog.Logger, config *domain.Config, responseCache domain.ResponseCache) domain.CatalogService {
	baseURL := config.JikanBaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := config.JikanTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	burst := 1
	if config.JikanRatePerSec > 0 {
		limit = rate.Limit(config.JikanRatePerSec)
		burst = max(1, int(config.JikanRatePerSec))
	}

	return &service{
		log:     log.With().Str("module", "jikan").Logger(),
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: &userAgentTransport{UserAgent: "animewatch"},
		},
		cache:   responseCache,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// SanitizeQuery trims the query and strips angle brackets
func SanitizeQuery(q string) string {
	q = strings.TrimSpace(q)
	return strings.NewReplacer("<", "", ">", "").Replace(q)
}

// ValidateQuery checks a sanitized search query
func ValidateQuery(q string) error {
	if q == "" {
		return errors.Wrap(domain.ErrInvalidQuery, "search query is required")
	}
	if utf8.RuneCountInString(q) < minQueryLength {
		return errors.Wrapf(domain.ErrInvalidQuery, "search query must be at least %d characters", minQueryLength)
	}
	return nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]domain.Anime, error) {
	query = SanitizeQuery(query)
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	key := cache.Key("/anime", map[string]any{"q": query, "limit": limit})
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var out []domain.Anime
	if err := s.fetch(ctx, "/anime", params, key, &out); err != nil {
		return nil, errors.Wrap(err, "failed to search anime")
	}
	return nonNil(out), nil
}

func (s *service) Anime(ctx context.Context, id int) (domain.Anime, error) {
	if id <= 0 {
		return domain.Anime{}, errors.Wrapf(domain.ErrInvalidArgument, "invalid anime id %d", id)
	}

	endpoint := fmt.Sprintf("/anime/%d", id)

	var out domain.Anime
	if err := s.fetch(ctx, endpoint, nil, cache.Key(endpoint, nil), &out); err != nil {
		return domain.Anime{}, errors.Wrap(err, "failed to fetch anime details")
	}
	return out, nil
}

func (s *service) Recommendations(ctx context.Context, id int) ([]domain.Recommendation, error) {
	if id <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid anime id %d", id)
	}

	endpoint := fmt.Sprintf("/anime/%d/recommendations", id)

	var out []domain.Recommendation
	if err := s.fetch(ctx, endpoint, nil, cache.Key(endpoint, nil), &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch recommendations")
	}
	return nonNil(head(out, maxRecommendations)), nil
}

func (s *service) News(ctx context.Context, id int) ([]domain.News, error) {
	if id <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid anime id %d", id)
	}

	endpoint := fmt.Sprintf("/anime/%d/news", id)

	var out []domain.News
	if err := s.fetch(ctx, endpoint, nil, cache.Key(endpoint, nil), &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch news")
	}
	return nonNil(head(out, maxNews)), nil
}

// Details loads an anime with its recommendations and news concurrently.
// Any failure fails the whole page.
func (s *service) Details(ctx context.Context, id int) (*domain.AnimeDetails, error) {
	details := &domain.AnimeDetails{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details.Anime, err = s.Anime(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		details.Recommendations, err = s.Recommendations(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		details.News, err = s.News(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *service) Top(ctx context.Context, q domain.TopQuery) ([]domain.Anime, error) {
	if !q.Type.Valid() {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid type %q", q.Type)
	}
	if !q.Filter.Valid() {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid filter %q (must be 'bypopularity', 'favorite', 'airing' or 'upcoming')", q.Filter)
	}
	if q.Page < 1 {
		q.Page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	if q.Type != "" {
		params.Set("type", string(q.Type))
	}
	if q.Filter != "" {
		params.Set("filter", string(q.Filter))
	}

	key := cache.Key("/top/anime", map[string]any{
		"type":   nilIfEmpty(string(q.Type)),
		"filter": nilIfEmpty(string(q.Filter)),
		"page":   q.Page,
	})

	var out []domain.Anime
	if err := s.fetch(ctx, "/top/anime", params, key, &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch top anime")
	}
	return nonNil(out), nil
}

func (s *service) Season(ctx context.Context, year int, season domain.Season) ([]domain.Anime, error) {
	if year <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid year %d", year)
	}
	if !season.Valid() {
		return nil, errors.Wrapf(domain.ErrInvalidArgument, "invalid season %q (must be 'winter', 'spring', 'summer' or 'fall')", season)
	}

	endpoint := fmt.Sprintf("/seasons/%d/%s", year, season)
	key := cache.Key("/seasons", map[string]any{"year": year, "season": string(season)})

	var out []domain.Anime
	if err := s.fetch(ctx, endpoint, nil, key, &out); err != nil {
		return nil, errors.Wrap(err, "failed to fetch seasonal anime")
	}
	return nonNil(out), nil
}

func (s *service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// fetch serves key from the cache or performs the request and caches the data field.
// Concurrent misses for the same key share one request. When ctx ends while the
// request is in flight the result is dropped and ctx.Err() returned.
func (s *service) fetch(ctx context.Context, endpoint string, params url.Values, key string, v any) error {
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		res, err, shared := s.group.Do(key, func() (any, error) {
			return s.request(context.WithoutCancel(ctx), endpoint, params, key)
		})
		if err := ctx.Err(); err != nil {
			s.log.Debug().Str("key", key).Msg("discarding late response")
			return err
		}
		if err != nil {
			return err
		}
		if shared {
			s.log.Trace().Str("key", key).Msg("shared in-flight request")
		}
		payload = res.(json.RawMessage)
	}

	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return errors.Wrap(err, "failed to unmarshal response data")
	}
	return nil
}

func (s *service) request(ctx context.Context, endpoint string, params url.Values, key string) (json.RawMessage, error) {
	u := s.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	s.log.Debug().Str("url", u).Msg("fetching")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.NetworkError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{URL: u, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}

	s.cache.Put(ctx, key, env.Data)
	return env.Data, nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
