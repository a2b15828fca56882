package preference

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// MaxSearchHistory is how many recent searches are kept
const MaxSearchHistory = 10

// SearchHistory remembers recent search terms, most recent first
type SearchHistory struct {
	log     zerolog.Logger
	storage domain.Storage
	mu      sync.Mutex
}

func NewSearchHistory(log zerolog.Logger, storage domain.Storage) *SearchHistory {
	return &SearchHistory{
		log:     log.With().Str("module", "history").Logger(),
		storage: storage,
	}
}

// List returns the stored terms; unreadable history is treated as empty
func (h *SearchHistory) List(ctx context.Context) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.list(ctx)
}

func (h *SearchHistory) list(ctx context.Context) []string {
	b, err := h.storage.Get(ctx, domain.SlotSearchHistory)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			h.log.Warn().Err(err).Msg("failed to read search history")
		}
		return []string{}
	}

	var terms []string
	if err := json.Unmarshal(b, &terms); err != nil {
		h.log.Warn().Err(err).Msg("stored search history is malformed")
		return []string{}
	}
	return terms
}

// Add moves term to the front of the history, dropping older duplicates
func (h *SearchHistory) Add(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	terms := []string{term}
	for _, t := range h.list(ctx) {
		if t != term {
			terms = append(terms, t)
		}
	}
	if len(terms) > MaxSearchHistory {
		terms = terms[:MaxSearchHistory]
	}

	return h.save(ctx, terms)
}

func (h *SearchHistory) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.save(ctx, []string{})
}

func (h *SearchHistory) save(ctx context.Context, terms []string) error {
	b, err := json.Marshal(terms)
	if err != nil {
		return errors.Wrap(err, "failed to encode search history")
	}

	if err := h.storage.Set(ctx, domain.SlotSearchHistory, b); err != nil {
		return errors.Wrap(err, "failed to store search history")
	}
	return nil
}
