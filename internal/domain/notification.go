package domain

import "context"

// NotificationService defines the interface for notification services
type NotificationService interface {
	// ShareWatchlist posts the current watchlist
	ShareWatchlist(ctx context.Context, anime []Anime) error
}
