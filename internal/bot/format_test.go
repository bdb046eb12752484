package bot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"releasebot/internal/model"
	"releasebot/internal/tmdb"
)

func TestFormatSelectionPrompt(t *testing.T) {
	results := []tmdb.Result{
		{Name: "Dune", Date: "2021-09-15"},
		{Name: "Dune", Date: ""},
	}

	got := FormatSelectionPrompt(results, model.KindMovie)

	want := "Please choose the correct movie by replying with the number:\n" +
		"1. Dune (2021)\n" +
		"2. Dune (TBA)"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSeasonList(t *testing.T) {
	cands := []model.ReleaseCandidate{
		{Name: "New Show", Kind: model.ReleasePremiere, Date: "2026-09-02", Rating: 7.8, Popularity: 120.6},
		{Name: "Severance", Kind: model.SeasonKind(3), Date: "2026-10-01", Rating: 8.7, Popularity: 95.1},
	}

	got := FormatSeasonList(cands)

	for _, fragment := range []string{
		"New & Returning Seasons (Next 120 Days):",
		"✨🆕 <b>New Show</b>",
		"📅 Premiere: <b>2026-09-02</b>",
		"✨🌟 <b>Severance</b>",
		"📅 Season 3 Premiere: <b>2026-10-01</b>",
		"⭐ Rating: <b>8.7</b>",
		"🔥 Popularity: <b>120</b>",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("listing missing %q:\n%s", fragment, got)
		}
	}
}

func TestFormatResultLine(t *testing.T) {
	withPoster := tmdb.Result{Name: "Arcane & Co", Date: "2026-11-01", PosterPath: "/p.jpg"}
	got := FormatResultLine(withPoster, " | ")
	want := `<b>Arcane &amp; Co</b> (2026-11-01) | <a href="https://image.tmdb.org/t/p/w200/p.jpg">Poster</a>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}

	noPoster := tmdb.Result{Name: "Mystery", Date: ""}
	if got := FormatResultLine(noPoster, " | "); got != "<b>Mystery</b> (TBA)" {
		t.Errorf("line = %q", got)
	}
}

func TestFormatTitleList(t *testing.T) {
	got := FormatTitleList("Your Highlight Series List", []string{"the witcher", "arcane"}, true)

	want := "<b>Your Highlight Series List:</b>\n" +
		"- <b>The Witcher</b>\n" +
		"- <b>Arcane</b>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	// Favourites keep the stored casing.
	kept := FormatTitleList("Your Favourite Movies List", []string{"Blade Runner 2049"}, false)
	if !strings.Contains(kept, "<b>Blade Runner 2049</b>") {
		t.Errorf("favourite casing changed:\n%s", kept)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "the last of us", want: "The Last Of Us"},
		{in: "severance (2022)", want: "Severance (2022)"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestYearOf(t *testing.T) {
	if got := yearOf("2026-09-05"); got != "2026" {
		t.Errorf("yearOf = %q", got)
	}
	if got := yearOf(""); got != "TBA" {
		t.Errorf("yearOf of empty date = %q, want TBA", got)
	}
}
