package domain

import "path/filepath"

// Slot names a durable storage value
type Slot string

const (
	SlotWatchlist     Slot = "anime-watchlist"
	SlotTheme         Slot = "anime-theme"
	SlotSearchHistory Slot = "anime-search-history"
)

const DatabaseFile = "animewatch.db"

// Paths holds the on-disk locations used by the application
type Paths struct {
	RootDir  string
	DBPath   string
	SlotsDir string
}

// NewPaths creates a new Paths instance rooted at dataDir
func NewPaths(dataDir string) *Paths {
	return &Paths{
		RootDir:  dataDir,
		DBPath:   filepath.Join(dataDir, DatabaseFile),
		SlotsDir: filepath.Join(dataDir, "slots"),
	}
}

// SlotPath returns the file backing a slot for file storage
func (p *Paths) SlotPath(slot Slot) string {
	return filepath.Join(p.SlotsDir, string(slot)+".json")
}
