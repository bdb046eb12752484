package notify

import (
	"fmt"
	"html"
	"strings"

	"releasebot/internal/model"
)

// FormatReleaseNotice renders the combined HTML notification message for
// one tick. Callers only invoke it when at least one candidate exists.
func FormatReleaseNotice(series, movies []model.ReleaseCandidate) string {
	var b strings.Builder
	b.WriteString("<b>Upcoming Releases:</b>\n")
	for _, c := range series {
		fmt.Fprintf(&b, "<b>%s</b> - %s releases on <b>%s</b>\n",
			html.EscapeString(c.Name), kindLabel(c.Kind), c.Date)
	}
	for _, c := range movies {
		fmt.Fprintf(&b, "<b>%s</b> releases on <b>%s</b>\n",
			html.EscapeString(c.Name), c.Date)
	}
	return strings.TrimRight(b.String(), "\n")
}

func kindLabel(kind model.ReleaseKind) string {
	switch {
	case kind == model.ReleasePremiere:
		return "Premiere"
	case strings.HasPrefix(string(kind), "season:"):
		return "Season " + strings.TrimPrefix(string(kind), "season:")
	default:
		return string(kind)
	}
}
