package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/preference"
	"github.com/varoOP/animewatch/internal/watchlist"
)

const shutdownTimeout = 5 * time.Second

// Server serves the catalog, watchlist and theme over a JSON API
type Server struct {
	log       zerolog.Logger
	addr      string
	echo      *echo.Echo
	catalog   domain.CatalogService
	watchlist *watchlist.Store
	theme     *preference.ThemeStore
	history   *preference.SearchHistory
}

func NewServer(log zerolog.Logger, config *domain.Config, catalog domain.CatalogService, store *watchlist.Store, theme *preference.ThemeStore, history *preference.SearchHistory) *Server {
	s := &Server{
		log:       log.With().Str("module", "server").Logger(),
		addr:      net.JoinHostPort(config.HTTPHost, strconv.Itoa(config.HTTPPort)),
		catalog:   catalog,
		watchlist: store,
		theme:     theme,
		history:   history,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	api := e.Group("/api")
	api.GET("/search", s.search)
	api.GET("/top", s.top)
	api.GET("/seasons/:year/:season", s.season)
	api.GET("/anime/:id", s.anime)

	api.GET("/watchlist", s.listWatchlist)
	api.POST("/watchlist", s.addToWatchlist)
	api.DELETE("/watchlist", s.clearWatchlist)
	api.DELETE("/watchlist/:id", s.removeFromWatchlist)

	api.POST("/cache/clear", s.clearCache)

	api.GET("/theme", s.getTheme)
	api.PUT("/theme", s.setTheme)
	api.POST("/theme/toggle", s.toggleTheme)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Open listens on the configured address until ctx is done, then shuts down gracefully
func (s *Server) Open(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("Starting HTTP server")
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

type errorResponse struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// fail maps service errors onto HTTP statuses
func (s *Server) fail(c echo.Context, err error) error {
	var netErr *domain.NetworkError
	switch {
	case errors.Is(err, domain.ErrInvalidQuery), errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &netErr):
		s.log.Warn().Err(err).Msg("catalog request failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error(), UpstreamStatus: netErr.StatusCode})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
	}
	s.log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func intParam(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(domain.ErrInvalidArgument, "%s must be a number", name)
	}
	return n, nil
}
