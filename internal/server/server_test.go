package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/animewatch/internal/cache"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/jikan"
	"github.com/varoOP/animewatch/internal/preference"
	"github.com/varoOP/animewatch/internal/repository"
	"github.com/varoOP/animewatch/internal/watchlist"
)

type testServer struct {
	*Server
	upstreamCalls *atomic.Int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	var calls atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/anime":
			fmt.Fprint(w, `{"data":[{"mal_id":1,"title":"Cowboy Bebop"},{"mal_id":5,"title":"Cowboy Bebop: The Movie"}]}`)
		case "/anime/1":
			fmt.Fprint(w, `{"data":{"mal_id":1,"title":"Cowboy Bebop"}}`)
		case "/anime/1/recommendations":
			fmt.Fprint(w, `{"data":[{"entry":{"mal_id":205,"title":"Samurai Champloo"},"votes":10}]}`)
		case "/anime/1/news":
			fmt.Fprint(w, `{"data":[]}`)
		case "/top/anime":
			fmt.Fprint(w, `{"data":[{"mal_id":52991,"title":"Sousou no Frieren"}]}`)
		case "/seasons/2024/fall":
			fmt.Fprint(w, `{"data":[{"mal_id":57334,"title":"Dandadan","score":8.6},{"mal_id":1,"title":"unscored"},{"mal_id":58514,"title":"Ao no Hako","title_english":"Blue Box","score":8.1}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	log := zerolog.Nop()
	cfg := &domain.Config{
		JikanBaseURL: upstream.URL,
		JikanTimeout: 2 * time.Second,
		HTTPHost:     "127.0.0.1",
		HTTPPort:     0,
	}
	storage := repository.NewFileRepository(log, domain.NewPaths(t.TempDir()))
	history := preference.NewSearchHistory(log, storage)
	catalog := jikan.NewService(log, cfg, cache.New(log, time.Minute))
	store := watchlist.NewStore(log, storage)
	store.Load(context.Background())

	return &testServer{
		Server:        NewServer(log, cfg, catalog, store, preference.NewThemeStore(log, storage), history),
		upstreamCalls: &calls,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestServer_Catalog(t *testing.T) {
	s := newTestServer(t)

	t.Run("Search", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/search?q=bebop", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 2, body["count"])
	})

	t.Run("SearchTooShort", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/search?q=b", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "at least 2 characters")
	})

	t.Run("SearchBadLimit", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/api/search?q=bebop&limit=many", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Top", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/top?type=tv&filter=airing&page=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("TopInvalidFilter", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/api/top?filter=newest", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Season", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/seasons/2024/fall", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 3, body["count"])
		assert.Equal(t, []float64{57334, 1, 58514}, dataIDs(t, body))
	})

	t.Run("SeasonSorted", func(t *testing.T) {
		tests := []struct {
			sort string
			want []float64
		}{
			{"score", []float64{57334, 58514, 1}},
			{"name", []float64{58514, 57334, 1}},
		}
		for _, tt := range tests {
			rec, body := s.do(t, http.MethodGet, "/api/seasons/2024/fall?sort="+tt.sort, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, dataIDs(t, body), tt.sort)
		}
	})

	t.Run("UnknownSort", func(t *testing.T) {
		for _, target := range []string{"/api/search?q=bebop&sort=date", "/api/top?sort=date", "/api/seasons/2024/fall?sort=date"} {
			rec, _ := s.do(t, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		}
	})

	t.Run("SeasonInvalid", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/api/seasons/2024/monsoon", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Details", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/anime/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["saved"])
		assert.Equal(t, "Cowboy Bebop", body["anime"].(map[string]any)["title"])
		assert.Len(t, body["recommendations"], 1)
		assert.Len(t, body["news"], 0)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		rec, body := s.do(t, http.MethodGet, "/api/anime/2", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.EqualValues(t, http.StatusNotFound, body["upstream_status"])
	})
}

func dataIDs(t *testing.T, body map[string]any) []float64 {
	t.Helper()

	var ids []float64
	for _, item := range body["data"].([]any) {
		ids = append(ids, item.(map[string]any)["mal_id"].(float64))
	}
	return ids
}

func TestServer_SearchRecordsHistory(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	rec, _ := s.do(t, http.MethodGet, "/api/search?q=%20cowboy%20bebop%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cowboy bebop"}, s.history.List(ctx))

	rec, _ = s.do(t, http.MethodGet, "/api/search?q=c", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"cowboy bebop"}, s.history.List(ctx))
}

func TestServer_Watchlist(t *testing.T) {
	s := newTestServer(t)
	bebop := `{"mal_id":1,"title":"Cowboy Bebop","rating":"R - 17+"}`

	rec, body := s.do(t, http.MethodPost, "/api/watchlist", bebop)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["added"])

	rec, body = s.do(t, http.MethodPost, "/api/watchlist", bebop)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["added"])
	assert.EqualValues(t, 1, body["count"])

	rec, _ = s.do(t, http.MethodPost, "/api/watchlist", `{"title":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/watchlist", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodGet, "/api/watchlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := body["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "R - 17+", items[0].(map[string]any)["rating"])

	rec, body = s.do(t, http.MethodGet, "/api/anime/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["saved"])

	rec, body = s.do(t, http.MethodDelete, "/api/watchlist/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["removed"])

	rec, body = s.do(t, http.MethodDelete, "/api/watchlist/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["removed"])
	assert.EqualValues(t, 0, body["count"])

	s.do(t, http.MethodPost, "/api/watchlist", bebop)
	rec, _ = s.do(t, http.MethodDelete, "/api/watchlist", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, s.watchlist.Count())
}

func TestServer_Theme(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["isDark"])

	rec, body = s.do(t, http.MethodPut, "/api/theme", `{"isDark":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["isDark"])

	rec, _ = s.do(t, http.MethodPut, "/api/theme", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, http.MethodPost, "/api/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["isDark"])
}

func TestServer_ClearCache(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/api/search?q=bebop", "")
	s.do(t, http.MethodGet, "/api/search?q=bebop", "")
	assert.EqualValues(t, 1, s.upstreamCalls.Load())

	rec, _ := s.do(t, http.MethodPost, "/api/cache/clear", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	s.do(t, http.MethodGet, "/api/search?q=bebop", "")
	assert.EqualValues(t, 2, s.upstreamCalls.Load())
}

func TestServer_OpenShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Open(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
