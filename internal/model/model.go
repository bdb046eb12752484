// Package model defines the domain types used across the application.
package model

import "fmt"

// MediaKind distinguishes movie and TV series metadata queries.
type MediaKind string

// Supported media kinds. The values match the TMDB URL path segments.
const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "tv"
)

// ReleaseKind labels a single release event.
type ReleaseKind string

// Release kinds. Season premieres beyond the first use SeasonKind.
const (
	ReleasePremiere ReleaseKind = "premiere"
	ReleaseMovie    ReleaseKind = "movie-release"
)

// SeasonKind returns the release kind for a numbered season premiere.
// Season 1 is the series premiere.
func SeasonKind(n int) ReleaseKind {
	if n == 1 {
		return ReleasePremiere
	}
	return ReleaseKind(fmt.Sprintf("season:%d", n))
}

// ReleaseCandidate is a single matched release event. Candidates are
// transient: produced per query or notification tick, never persisted.
type ReleaseCandidate struct {
	Name       string
	Kind       ReleaseKind
	Date       string // YYYY-MM-DD
	Popularity float64
	Rating     float64
}

// Event is one entry of the personal event log.
type Event struct {
	Title string
	Date  string // YYYY-MM-DD
}
