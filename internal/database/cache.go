package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync/atomic"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// CacheRepo implements domain.ResponseCache on the response_cache table.
// Freshness is checked on read like the in-memory cache; rows are only removed by Clear.
type CacheRepo struct {
	log    zerolog.Logger
	db     *DB
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheRepo creates a new response cache repository
func NewCacheRepo(log zerolog.Logger, db *DB, ttl time.Duration) *CacheRepo {
	return &CacheRepo{
		log: log.With().Str("repo", "cache").Logger(),
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}

var _ domain.ResponseCache = (*CacheRepo)(nil)

// Get returns the cached payload for key if it is still fresh
func (r *CacheRepo) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	payload, fetchedAt, err := r.get(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.log.Warn().Err(err).Str("key", key).Msg("failed to read cache entry")
		}
		r.misses.Add(1)
		return nil, false
	}

	if r.now().Sub(fetchedAt) >= r.ttl {
		r.misses.Add(1)
		return nil, false
	}

	r.hits.Add(1)
	return payload, true
}

func (r *CacheRepo) get(ctx context.Context, key string) (json.RawMessage, time.Time, error) {
	queryBuilder := r.db.squirrel.
		Select("payload", "fetched_at").
		From("response_cache").
		Where(sq.Eq{"cache_key": key})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	var (
		payload   []byte
		fetchedAt int64
	)
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&payload, &fetchedAt); err != nil {
		return nil, time.Time{}, err
	}

	return payload, time.UnixMilli(fetchedAt), nil
}

// Put inserts or replaces the entry for key
func (r *CacheRepo) Put(ctx context.Context, key string, payload json.RawMessage) {
	queryBuilder := r.db.squirrel.
		Replace("response_cache").
		Columns("cache_key", "payload", "fetched_at").
		Values(key, []byte(payload), r.now().UnixMilli())

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		r.log.Warn().Err(err).Msg("error building query")
		return
	}

	r.log.Trace().Str("query", query).Str("key", key).Msg("Put")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
}

// Clear deletes every cached response
func (r *CacheRepo) Clear(ctx context.Context) error {
	query, args, err := r.db.squirrel.Delete("response_cache").ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Msg("Clear")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

// Stats counts stored rows; hits and misses cover this process only
func (r *CacheRepo) Stats(ctx context.Context) (domain.CacheStats, error) {
	query, args, err := r.db.squirrel.Select("COUNT(*)").From("response_cache").ToSql()
	if err != nil {
		return domain.CacheStats{}, errors.Wrap(err, "error building query")
	}

	var count int64
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return domain.CacheStats{}, errors.Wrap(err, "error executing query")
	}

	return domain.CacheStats{
		Entries: count,
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
	}, nil
}
