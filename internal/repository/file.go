package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileRepository implements domain.Storage with one file per slot and
// domain.WatchlistExporter for snapshots written on request
type FileRepository struct {
	log   zerolog.Logger
	paths *domain.Paths
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger, paths *domain.Paths) *FileRepository {
	return &FileRepository{
		log:   log.With().Str("module", "repository").Logger(),
		paths: paths,
	}
}

var _ domain.Storage = (*FileRepository)(nil)
var _ domain.WatchlistExporter = (*FileRepository)(nil)

// Get reads the value stored in slot
func (r *FileRepository) Get(ctx context.Context, slot domain.Slot) ([]byte, error) {
	path := r.paths.SlotPath(slot)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return b, nil
}

// Set replaces the value stored in slot. The file is written next to the target
// and renamed over it so readers never see a partial value.
func (r *FileRepository) Set(ctx context.Context, slot domain.Slot, value []byte) error {
	path := r.paths.SlotPath(slot)
	if err := writeFileAtomic(path, value); err != nil {
		return err
	}

	r.log.Debug().Str("path", path).Int("bytes", len(value)).Msg("stored slot")
	return nil
}

// Export writes the watchlist to path as JSON or YAML
func (r *FileRepository) Export(ctx context.Context, path string, format domain.ExportFormat, anime []domain.Anime) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case domain.ExportFormatJSON, "":
		b, err = json.MarshalIndent(anime, "", "   ")
		if err != nil {
			return fmt.Errorf("failed to marshal anime data: %w", err)
		}
	case domain.ExportFormatYAML:
		b, err = marshalYAML(anime)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format %q: %w", format, domain.ErrInvalidArgument)
	}

	if err := writeFileAtomic(path, b); err != nil {
		return err
	}

	r.log.Debug().Str("path", path).Int("count", len(anime)).Msg("exported watchlist")
	return nil
}

// marshalYAML goes through the JSON form so every passthrough field of a record
// is exported, not only the decoded ones.
func marshalYAML(anime []domain.Anime) ([]byte, error) {
	j, err := json.Marshal(anime)
	if err != nil {
		return nil, err
	}

	var generic []map[string]any
	if err := json.Unmarshal(j, &generic); err != nil {
		return nil, err
	}

	return yaml.Marshal(generic)
}

func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename %s to %s: %w", tmp, path, err)
	}

	return nil
}
