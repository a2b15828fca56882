package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/preference"
)

type palette struct {
	title  lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	score  lipgloss.Style
	saved  lipgloss.Style
}

func newPalette(theme preference.Theme) palette {
	if theme.IsDark {
		return palette{
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5F5F5")),
			accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#C084FC")),
			muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
			score:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FACC15")),
			saved:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")),
		}
	}
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		score:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B45309")),
		saved:  lipgloss.NewStyle().Foreground(lipgloss.Color("#15803D")),
	}
}

// Renderer writes catalog data using the colors of the stored theme
type Renderer struct {
	w io.Writer
	p palette
}

func NewRenderer(w io.Writer, theme preference.Theme) *Renderer {
	return &Renderer{w: w, p: newPalette(theme)}
}

// AnimeList prints one line per anime. saved marks entries already in the watchlist.
func (r *Renderer) AnimeList(anime []domain.Anime, saved func(id int) bool) {
	if len(anime) == 0 {
		fmt.Fprintln(r.w, r.p.muted.Render("No anime found."))
		return
	}

	for _, a := range anime {
		marker := "  "
		if saved != nil && saved(a.ID) {
			marker = r.p.saved.Render("★ ")
		}

		fmt.Fprintf(r.w, "%s%s %s %s %s\n",
			marker,
			r.p.muted.Render(fmt.Sprintf("[%d]", a.ID)),
			r.p.title.Render(a.DisplayTitle()),
			r.p.accent.Render(strings.TrimSpace(a.Type+" "+yearOf(a))),
			r.p.score.Render(Score(a.Score)),
		)
	}
}

// Details prints the anime page: summary, trailer, recommendations and news
func (r *Renderer) Details(d *domain.AnimeDetails, saved bool) {
	a := d.Anime

	fmt.Fprintln(r.w, r.p.title.Render(a.DisplayTitle()))
	if a.Title != "" && a.Title != a.DisplayTitle() {
		fmt.Fprintln(r.w, r.p.muted.Render(a.Title))
	}

	fmt.Fprintf(r.w, "%s  %s  %s eps  %s  %s\n",
		r.p.score.Render("★ "+Score(a.Score)),
		r.p.accent.Render(a.Type),
		Episodes(a.Episodes),
		Duration(a.Duration),
		a.Status,
	)

	if len(a.Genres) > 0 {
		names := make([]string, 0, len(a.Genres))
		for _, g := range a.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintln(r.w, r.p.muted.Render(strings.Join(names, ", ")))
	}

	if saved {
		fmt.Fprintln(r.w, r.p.saved.Render("In your watchlist"))
	}

	if a.Synopsis != "" {
		fmt.Fprintf(r.w, "\n%s\n", a.Synopsis)
	}

	if a.Trailer.URL != "" {
		fmt.Fprintf(r.w, "\n%s %s\n", r.p.accent.Render("Trailer:"), a.Trailer.URL)
	}

	if len(d.Recommendations) > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.p.title.Render("Recommendations"))
		for _, rec := range d.Recommendations {
			fmt.Fprintf(r.w, "  %s %s\n", r.p.muted.Render(fmt.Sprintf("[%d]", rec.Entry.MalID)), rec.Entry.Title)
		}
	}

	if len(d.News) > 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.p.title.Render("News"))
		for _, n := range d.News {
			fmt.Fprintf(r.w, "  %s %s\n", n.Title, r.p.muted.Render(n.URL))
		}
	}
}

// Lines prints plain values, one per line
func (r *Renderer) Lines(lines []string, empty string) {
	if len(lines) == 0 {
		fmt.Fprintln(r.w, r.p.muted.Render(empty))
		return
	}
	for i, l := range lines {
		fmt.Fprintf(r.w, "%s %s\n", r.p.muted.Render(fmt.Sprintf("%2d.", i+1)), l)
	}
}

// Notice prints an informational message
func (r *Renderer) Notice(msg string) {
	fmt.Fprintln(r.w, r.p.accent.Render(msg))
}

func yearOf(a domain.Anime) string {
	if a.Year == 0 {
		return ""
	}
	return fmt.Sprintf("(%d)", a.Year)
}
