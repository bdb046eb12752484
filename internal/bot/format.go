package bot

import (
	"fmt"
	"html"
	"strings"

	"releasebot/internal/model"
	"releasebot/internal/store"
	"releasebot/internal/tmdb"
)

// FormatSelectionPrompt renders the numbered candidate list that opens a
// selection conversation.
func FormatSelectionPrompt(results []tmdb.Result, kind model.MediaKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please choose the correct %s by replying with the number:\n", mediaNoun(kind))
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, r.Name, yearOf(r.Date))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSeasonList renders the /series listing of new and returning
// seasons, candidates already ranked.
func FormatSeasonList(cands []model.ReleaseCandidate) string {
	blocks := make([]string, 0, len(cands))
	for _, c := range cands {
		emoji := "✨🌟"
		label := seasonLabel(c.Kind)
		if c.Kind == model.ReleasePremiere {
			emoji = "✨🆕"
		}
		blocks = append(blocks, fmt.Sprintf(
			"%s <b>%s</b>\n📅 %s: <b>%s</b>\n⭐ Rating: <b>%.1f</b>\n🔥 Popularity: <b>%d</b>",
			emoji, html.EscapeString(c.Name), label, c.Date, c.Rating, int(c.Popularity)))
	}
	return "<b>New & Returning Seasons (Next 120 Days):</b>\n\n" + strings.Join(blocks, "\n\n")
}

// FormatUpcomingMovies renders the /movies listing.
func FormatUpcomingMovies(results []tmdb.Result) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf(
			"🎬 <b>%s</b>\n📅 Release Date: <b>%s</b>\n⭐ Rating: <b>%.1f</b>\n🔥 Popularity: <b>%.1f</b>",
			html.EscapeString(r.Name), r.Date, r.Rating, r.Popularity))
	}
	return "<b>Upcoming Movies:</b>\n\n" + strings.Join(blocks, "\n\n")
}

// FormatResultLine renders one listing record with an optional poster
// link, joined by sep.
func FormatResultLine(r tmdb.Result, sep string) string {
	date := r.Date
	if date == "" {
		date = "TBA"
	}
	line := fmt.Sprintf("<b>%s</b> (%s)", html.EscapeString(r.Name), date)
	if posterURL := tmdb.PosterURL(r.PosterPath); posterURL != "" {
		line += fmt.Sprintf("%s<a href=\"%s\">Poster</a>", sep, posterURL)
	}
	return line
}

// FormatTitleList renders a stored title list. Tracked entries are stored
// lower-cased, so they are title-cased for display; favourites keep the
// user's casing.
func FormatTitleList(header string, titles []string, applyTitleCase bool) string {
	lines := make([]string, 0, len(titles))
	for _, t := range titles {
		if applyTitleCase {
			t = titleCase(t)
		}
		lines = append(lines, fmt.Sprintf("- <b>%s</b>", html.EscapeString(t)))
	}
	return fmt.Sprintf("<b>%s:</b>\n%s", header, strings.Join(lines, "\n"))
}

// FormatEvents renders the deduplicated event log.
func FormatEvents(events []model.Event) string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("- <b>%s</b> on %s", html.EscapeString(ev.Title), ev.Date))
	}
	return "<b>Your Events:</b>\n" + strings.Join(lines, "\n")
}

func seasonLabel(kind model.ReleaseKind) string {
	if kind == model.ReleasePremiere {
		return "Premiere"
	}
	if n, found := strings.CutPrefix(string(kind), "season:"); found {
		return "Season " + n + " Premiere"
	}
	return string(kind)
}

func yearOf(date string) string {
	if len(date) < 4 {
		return "TBA"
	}
	return date[:4]
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func mediaNoun(kind model.MediaKind) string {
	if kind == model.KindMovie {
		return "movie"
	}
	return "series"
}

func pluralNoun(kind model.MediaKind) string {
	if kind == model.KindMovie {
		return "movies"
	}
	return "series"
}

func listNoun(list store.List) string {
	switch list {
	case store.TrackedMovies, store.FavouriteMovies:
		return "movies"
	default:
		return "series"
	}
}

func singularNoun(list store.List) string {
	switch list {
	case store.TrackedMovies, store.FavouriteMovies:
		return "movie"
	default:
		return "series"
	}
}

func trackedCmdNoun(list store.List) string {
	return singularNoun(list)
}

func faveCmdNoun(list store.List) string {
	return singularNoun(list)
}
