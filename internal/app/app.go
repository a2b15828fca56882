package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/cache"
	"github.com/varoOP/animewatch/internal/config"
	"github.com/varoOP/animewatch/internal/database"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/jikan"
	"github.com/varoOP/animewatch/internal/logger"
	"github.com/varoOP/animewatch/internal/notification"
	"github.com/varoOP/animewatch/internal/preference"
	"github.com/varoOP/animewatch/internal/repository"
	"github.com/varoOP/animewatch/internal/watchlist"
)

// App represents the main application with all dependencies initialized
type App struct {
	log    zerolog.Logger
	config *domain.Config
	paths  *domain.Paths
	db     *database.DB

	storage             domain.Storage
	responseCache       domain.ResponseCache
	exporter            domain.WatchlistExporter
	notificationService domain.NotificationService

	Catalog   domain.CatalogService
	Watchlist *watchlist.Store
	Theme     *preference.ThemeStore
	History   *preference.SearchHistory
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp(ctx context.Context) (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLoggerWithLevel(logger.ParseLevel(cfg.LogLevel))

	return New(ctx, log, cfg)
}

// New wires an App from an explicit logger and configuration
func New(ctx context.Context, log zerolog.Logger, cfg *domain.Config) (*App, error) {
	paths := domain.NewPaths(cfg.DataDir)
	fileRepo := repository.NewFileRepository(log, paths)

	a := &App{
		log:      log,
		config:   cfg,
		paths:    paths,
		exporter: fileRepo,
	}

	// The database is only opened when a backend needs it
	if cfg.StorageBackend == domain.StorageBackendSQLite || cfg.CacheBackend == domain.CacheBackendSQLite {
		db, err := database.NewDB(paths.DBPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
	}

	switch cfg.StorageBackend {
	case domain.StorageBackendFile:
		a.storage = fileRepo
	default:
		a.storage = database.NewStorageRepo(log, a.db)
	}

	switch cfg.CacheBackend {
	case domain.CacheBackendSQLite:
		a.responseCache = database.NewCacheRepo(log, a.db, cfg.CacheTTL)
	default:
		a.responseCache = cache.New(log, cfg.CacheTTL)
	}

	a.Catalog = jikan.NewService(log, cfg, a.responseCache)
	a.Watchlist = watchlist.NewStore(log, a.storage)
	a.Theme = preference.NewThemeStore(log, a.storage)
	a.History = preference.NewSearchHistory(log, a.storage)
	a.notificationService = notification.NewService(log, cfg.DiscordWebhookURL)

	a.Watchlist.Load(ctx)

	a.log.Debug().
		Str("data_dir", cfg.DataDir).
		Str("storage", string(cfg.StorageBackend)).
		Str("cache", string(cfg.CacheBackend)).
		Int("watchlist", a.Watchlist.Count()).
		Msg("Application initialized")

	return a, nil
}

// Config returns the loaded configuration
func (a *App) Config() *domain.Config {
	return a.config
}

// Logger returns the application logger
func (a *App) Logger() zerolog.Logger {
	return a.log
}

// Close releases the database handle, if one was opened
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Search runs a catalog search and records the term in the search history
func (a *App) Search(ctx context.Context, query string, limit int) ([]domain.Anime, error) {
	results, err := a.Catalog.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if err := a.History.Add(ctx, jikan.SanitizeQuery(query)); err != nil {
		a.log.Warn().Err(err).Msg("Failed to record search history")
	}

	return results, nil
}

// AddToWatchlist fetches the anime by id and saves it.
// added is false when the anime was already in the watchlist.
func (a *App) AddToWatchlist(ctx context.Context, id int) (anime domain.Anime, added bool, err error) {
	if existing, ok := a.Watchlist.Get(id); ok {
		return existing, false, nil
	}

	anime, err = a.Catalog.Anime(ctx, id)
	if err != nil {
		return domain.Anime{}, false, err
	}

	if err := domain.ValidateAnime(anime); err != nil {
		return domain.Anime{}, false, err
	}

	return anime, a.Watchlist.Add(ctx, anime), nil
}

// ExportWatchlist writes the current watchlist to path
func (a *App) ExportWatchlist(ctx context.Context, path string, format domain.ExportFormat) (int, error) {
	items := a.Watchlist.Items()
	if err := a.exporter.Export(ctx, path, format, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// ShareWatchlist posts the watchlist to the configured notification channels.
// shared is false when no channel is configured.
func (a *App) ShareWatchlist(ctx context.Context) (shared bool, err error) {
	err = a.notificationService.ShareWatchlist(ctx, a.Watchlist.Items())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, notification.ErrNotConfigured):
		a.log.Debug().Msg("No webhook configured, skipping share")
		return false, nil
	default:
		return false, err
	}
}

// CacheStats reports the response cache counters
func (a *App) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	return a.responseCache.Stats(ctx)
}

// ClearCache empties the response cache
func (a *App) ClearCache(ctx context.Context) error {
	return a.Catalog.ClearCache(ctx)
}
