package domain

import (
	"context"
)

// Storage persists whole values under named slots.
// Get returns ErrSlotNotFound when nothing has been stored yet.
type Storage interface {
	Get(ctx context.Context, slot Slot) ([]byte, error)
	Set(ctx context.Context, slot Slot, value []byte) error
}

// WatchlistExporter writes a watchlist snapshot to a file
type WatchlistExporter interface {
	Export(ctx context.Context, path string, format ExportFormat, anime []Anime) error
}

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)
