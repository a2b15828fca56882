package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// StorageRepo implements domain.Storage on the kv_store table
type StorageRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewStorageRepo creates a new slot storage repository
func NewStorageRepo(log zerolog.Logger, db *DB) *StorageRepo {
	return &StorageRepo{
		log: log.With().Str("repo", "storage").Logger(),
		db:  db,
	}
}

var _ domain.Storage = (*StorageRepo)(nil)

// Get returns the value stored in slot
func (r *StorageRepo) Get(ctx context.Context, slot domain.Slot) ([]byte, error) {
	queryBuilder := r.db.squirrel.
		Select("value").
		From("kv_store").
		Where("slot = ?", string(slot))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("Get")

	var value []byte
	if err := r.db.handler.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, errors.Wrap(err, "error executing query")
	}

	return value, nil
}

// Set replaces the value stored in slot in a single statement
func (r *StorageRepo) Set(ctx context.Context, slot domain.Slot, value []byte) error {
	queryBuilder := r.db.squirrel.
		Replace("kv_store").
		Columns("slot", "value", "updated_at").
		Values(string(slot), value, time.Now().Format(time.RFC3339))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Str("slot", string(slot)).Msg("Set")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}
