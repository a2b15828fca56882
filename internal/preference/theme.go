package preference

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// Theme is the stored display preference
type Theme struct {
	IsDark bool `json:"isDark"`
}

func (t Theme) String() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ParseTheme accepts "dark" or "light"
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "dark":
		return Theme{IsDark: true}, nil
	case "light":
		return Theme{IsDark: false}, nil
	}
	return Theme{}, errors.Wrapf(domain.ErrInvalidArgument, "unknown theme %q (must be 'dark' or 'light')", s)
}

// DefaultTheme is used until the user picks one
var DefaultTheme = Theme{IsDark: true}

type ThemeStore struct {
	log     zerolog.Logger
	storage domain.Storage
	mu      sync.Mutex
}

func NewThemeStore(log zerolog.Logger, storage domain.Storage) *ThemeStore {
	return &ThemeStore{
		log:     log.With().Str("module", "theme").Logger(),
		storage: storage,
	}
}

// Get returns the stored theme, or DefaultTheme when none is stored or it cannot be read
func (s *ThemeStore) Get(ctx context.Context) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(ctx)
}

func (s *ThemeStore) get(ctx context.Context) Theme {
	b, err := s.storage.Get(ctx, domain.SlotTheme)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			s.log.Warn().Err(err).Msg("failed to read theme")
		}
		return DefaultTheme
	}

	var t Theme
	if err := json.Unmarshal(b, &t); err != nil {
		s.log.Warn().Err(err).Msg("stored theme is malformed, using default")
		return DefaultTheme
	}
	return t
}

func (s *ThemeStore) Set(ctx context.Context, t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.set(ctx, t)
}

func (s *ThemeStore) set(ctx context.Context, t Theme) error {
	b, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "failed to encode theme")
	}

	if err := s.storage.Set(ctx, domain.SlotTheme, b); err != nil {
		return errors.Wrap(err, "failed to store theme")
	}
	return nil
}

// Toggle flips between dark and light and returns the new theme
func (s *ThemeStore) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Theme{IsDark: !s.get(ctx).IsDark}
	return t, s.set(ctx, t)
}
