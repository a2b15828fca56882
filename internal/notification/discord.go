package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animewatch/internal/domain"
)

// maxEmbedFields is Discord's per-embed field limit
const maxEmbedFields = 25

// DiscordService posts watchlist snapshots to a Discord webhook
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	httpClient *http.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ShareWatchlist sends the watchlist as a single embed
func (s *DiscordService) ShareWatchlist(ctx context.Context, anime []domain.Anime) error {
	if s.webhookURL == "" {
		return nil
	}

	payload := discordWebhook{
		Embeds: []discordEmbed{watchlistEmbed(anime, time.Now())},
	}

	return s.sendWebhook(ctx, payload)
}

func watchlistEmbed(anime []domain.Anime, now time.Time) discordEmbed {
	embed := discordEmbed{
		Title:       "My Anime Watchlist",
		Description: fmt.Sprintf("%d anime saved", len(anime)),
		Color:       0x2e51a2,
		Timestamp:   now.Format(time.RFC3339),
	}

	for i, a := range anime {
		if i == maxEmbedFields-1 && len(anime) > maxEmbedFields {
			embed.Fields = append(embed.Fields, discordField{
				Name:  "…",
				Value: fmt.Sprintf("and %d more", len(anime)-i),
			})
			break
		}

		embed.Fields = append(embed.Fields, discordField{
			Name:   a.DisplayTitle(),
			Value:  fieldValue(a),
			Inline: false,
		})
	}

	return embed
}

func fieldValue(a domain.Anime) string {
	parts := []string{}
	if a.Type != "" {
		parts = append(parts, a.Type)
	}
	if a.Score > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f", a.Score))
	}
	if a.URL != "" {
		parts = append(parts, a.URL)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("MAL #%d", a.ID)
	}
	return strings.Join(parts, " · ")
}

// sendWebhook sends a webhook payload to Discord
func (s *DiscordService) sendWebhook(ctx context.Context, payload discordWebhook) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}

	s.log.Debug().Msg("Discord notification sent successfully")
	return nil
}

// discordWebhook represents a Discord webhook payload
type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

// discordEmbed represents a Discord embed
type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

// discordField represents a Discord embed field
type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
