// Package watchlist keeps the user's saved anime, unique by MAL id and in insertion order.
package watchlist

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"
	"github.com/varoOP/animewatch/internal/domain"
)

// Store is the in-memory watchlist mirrored to a storage slot.
// Every mutation rewrites the whole list; a failed write is logged and the
// in-memory change is kept.
type Store struct {
	log     zerolog.Logger
	storage domain.Storage
	slot    domain.Slot

	mu    sync.RWMutex
	items []domain.Anime
}

func NewStore(log zerolog.Logger, storage domain.Storage) *Store {
	return &Store{
		log:     log.With().Str("module", "watchlist").Logger(),
		storage: storage,
		slot:    domain.SlotWatchlist,
		items:   []domain.Anime{},
	}
}

// Load replaces the in-memory list with the stored one.
// A missing or unreadable value leaves an empty watchlist.
func (s *Store) Load(ctx context.Context) {
	items := s.read(ctx)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.log.Debug().Int("count", len(items)).Msg("watchlist loaded")
}

func (s *Store) read(ctx context.Context) []domain.Anime {
	b, err := s.storage.Get(ctx, s.slot)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			s.log.Warn().Err(err).Msg("failed to read watchlist, starting empty")
		}
		return []domain.Anime{}
	}

	var stored []domain.Anime
	if err := json.Unmarshal(b, &stored); err != nil {
		s.log.Warn().Err(err).Msg("stored watchlist is malformed, starting empty")
		return []domain.Anime{}
	}

	items, dropped := dedupe(stored)
	if dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Msg("stored watchlist had duplicate or id-less records")
	}
	return items
}

// dedupe keeps the first record seen for each id and drops records without one
func dedupe(anime []domain.Anime) ([]domain.Anime, int) {
	seen := make(map[int]struct{}, len(anime))
	out := make([]domain.Anime, 0, len(anime))
	for _, a := range anime {
		if a.ID <= 0 {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out, len(anime) - len(out)
}

// Add appends a record unless one with the same id is already saved.
// It reports false for the already-present case.
func (s *Store) Add(ctx context.Context, anime domain.Anime) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(anime.ID) >= 0 {
		return false
	}

	s.items = append(s.items, anime)
	s.persist(ctx)

	s.log.Debug().Int("mal_id", anime.ID).Msg("added to watchlist")
	return true
}

// Remove deletes the record with id, reporting whether it was present.
// The list is persisted either way.
func (s *Store) Remove(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i >= 0 {
		items := make([]domain.Anime, 0, len(s.items)-1)
		items = append(items, s.items[:i]...)
		s.items = append(items, s.items[i+1:]...)
	}

	s.persist(ctx)
	return i >= 0
}

// Clear empties the watchlist
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.Anime{}
	s.persist(ctx)
}

func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.indexOf(id) >= 0
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Items returns a copy of the watchlist in insertion order
func (s *Store) Items() []domain.Anime {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Anime, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the saved record with id
func (s *Store) Get(id int) (domain.Anime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return domain.Anime{}, false
}

// Find returns saved records whose display or romaji title fuzzy-matches query, best match first
func (s *Store) Find(query string) []domain.Anime {
	items := s.Items()

	matches := fuzzy.FindFrom(query, titles(items))
	out := make([]domain.Anime, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}

type titles []domain.Anime

func (t titles) String(i int) string {
	if t[i].Title != "" && t[i].Title != t[i].DisplayTitle() {
		return t[i].DisplayTitle() + " " + t[i].Title
	}
	return t[i].DisplayTitle()
}

func (t titles) Len() int {
	return len(t)
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held
func (s *Store) persist(ctx context.Context) {
	b, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode watchlist")
		return
	}

	if err := s.storage.Set(ctx, s.slot, b); err != nil {
		s.log.Error().Err(err).Int("count", len(s.items)).Msg("failed to persist watchlist")
	}
}
