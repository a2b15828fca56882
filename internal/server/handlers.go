package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/format"
	"github.com/varoOP/animewatch/internal/jikan"
	"github.com/varoOP/animewatch/internal/preference"
)

type listResponse struct {
	Data  []domain.Anime `json:"data"`
	Count int            `json:"count"`
}

type detailsResponse struct {
	*domain.AnimeDetails
	Saved bool `json:"saved"`
}

// sortParam reads the optional sort query parameter
func sortParam(c echo.Context) (format.SortBy, error) {
	return format.ParseSortBy(c.QueryParam("sort"))
}

// GET /api/search?q=&limit=&sort=
func (s *Server) search(c echo.Context) error {
	sortBy, err := sortParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := intParam("limit", v)
		if err != nil {
			return s.fail(c, err)
		}
		limit = n
	}

	ctx := c.Request().Context()
	query := c.QueryParam("q")
	results, err := s.catalog.Search(ctx, query, limit)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.history.Add(ctx, jikan.SanitizeQuery(query)); err != nil {
		s.log.Warn().Err(err).Msg("failed to record search history")
	}
	return c.JSON(http.StatusOK, listResponse{Data: format.SortAnime(results, sortBy), Count: len(results)})
}

// GET /api/top?type=&filter=&page=&sort=
func (s *Server) top(c echo.Context) error {
	sortBy, err := sortParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	q := domain.TopQuery{
		Type:   domain.AnimeType(c.QueryParam("type")),
		Filter: domain.TopFilter(c.QueryParam("filter")),
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := intParam("page", v)
		if err != nil {
			return s.fail(c, err)
		}
		q.Page = page
	}

	results, err := s.catalog.Top(c.Request().Context(), q)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: format.SortAnime(results, sortBy), Count: len(results)})
}

// GET /api/seasons/:year/:season?sort=
func (s *Server) season(c echo.Context) error {
	sortBy, err := sortParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	year, err := intParam("year", c.Param("year"))
	if err != nil {
		return s.fail(c, err)
	}

	results, err := s.catalog.Season(c.Request().Context(), year, domain.Season(c.Param("season")))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: format.SortAnime(results, sortBy), Count: len(results)})
}

// GET /api/anime/:id
func (s *Server) anime(c echo.Context) error {
	id, err := intParam("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	details, err := s.catalog.Details(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, detailsResponse{AnimeDetails: details, Saved: s.watchlist.Contains(id)})
}

// GET /api/watchlist
func (s *Server) listWatchlist(c echo.Context) error {
	items := s.watchlist.Items()
	return c.JSON(http.StatusOK, listResponse{Data: items, Count: len(items)})
}

// POST /api/watchlist
func (s *Server) addToWatchlist(c echo.Context) error {
	var anime domain.Anime
	if err := json.NewDecoder(c.Request().Body).Decode(&anime); err != nil {
		return s.fail(c, errors.Wrap(domain.ErrInvalidArgument, "body must be an anime object"))
	}
	if err := domain.ValidateAnime(anime); err != nil {
		return s.fail(c, err)
	}

	if !s.watchlist.Add(c.Request().Context(), anime) {
		return c.JSON(http.StatusOK, map[string]any{"added": false, "count": s.watchlist.Count()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"added": true, "count": s.watchlist.Count()})
}

// DELETE /api/watchlist/:id
func (s *Server) removeFromWatchlist(c echo.Context) error {
	id, err := intParam("id", c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	removed := s.watchlist.Remove(c.Request().Context(), id)
	return c.JSON(http.StatusOK, map[string]any{"removed": removed, "count": s.watchlist.Count()})
}

// DELETE /api/watchlist
func (s *Server) clearWatchlist(c echo.Context) error {
	s.watchlist.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// POST /api/cache/clear
func (s *Server) clearCache(c echo.Context) error {
	if err := s.catalog.ClearCache(c.Request().Context()); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/theme
func (s *Server) getTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, s.theme.Get(c.Request().Context()))
}

// PUT /api/theme
func (s *Server) setTheme(c echo.Context) error {
	var body struct {
		IsDark *bool `json:"isDark"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil || body.IsDark == nil {
		return s.fail(c, errors.Wrap(domain.ErrInvalidArgument, `body must be {"isDark": bool}`))
	}

	theme := preference.Theme{IsDark: *body.IsDark}
	if err := s.theme.Set(c.Request().Context(), theme); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, theme)
}

// POST /api/theme/toggle
func (s *Server) toggleTheme(c echo.Context) error {
	theme, err := s.theme.Toggle(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, theme)
}
