package notification

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// ErrNotConfigured is returned when sharing is requested without any channel
var ErrNotConfigured = errors.New("no notification channel configured")

// Service is a composite notification service that can send notifications
// through multiple channels
type Service struct {
	discord *DiscordService
}

// NewService creates a new notification service
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	var discord *DiscordService
	if webhookURL != "" {
		discord = NewDiscordService(log, webhookURL)
	}

	return &Service{
		discord: discord,
	}
}

// ShareWatchlist shares the watchlist through all configured channels
func (s *Service) ShareWatchlist(ctx context.Context, anime []domain.Anime) error {
	if s.discord == nil {
		return ErrNotConfigured
	}
	return s.discord.ShareWatchlist(ctx, anime)
}
