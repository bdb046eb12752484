// Package matcher resolves tracked titles into upcoming release candidates.
package matcher

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"releasebot/internal/model"
	"releasebot/internal/tmdb"
)

// Titles are resolved concurrently, a few at a time.
const resolveLimit = 4

// Resolver is the metadata lookup interface the matcher consumes.
type Resolver interface {
	Search(ctx context.Context, query string, kind model.MediaKind, max int) ([]tmdb.Result, error)
	SeriesDetails(ctx context.Context, id int) (*tmdb.SeriesDetails, error)
}

// Matcher finds release events for tracked titles within a lookahead
// window. A resolver failure for one title never aborts the others: the
// title is skipped and matching continues.
type Matcher struct {
	resolver Resolver
	log      zerolog.Logger
}

// New creates a Matcher on top of the given resolver.
func New(resolver Resolver, log zerolog.Logger) *Matcher {
	return &Matcher{
		resolver: resolver,
		log:      log.With().Str("component", "matcher").Logger(),
	}
}

// SeriesMatches returns upcoming season premieres for the tracked series
// titles, at most one candidate per show, deduplicated and ranked.
func (m *Matcher) SeriesMatches(ctx context.Context, titles []string, horizonDays int) []model.ReleaseCandidate {
	return m.collect(ctx, titles, func(ctx context.Context, title string) ([]model.ReleaseCandidate, error) {
		return m.seriesCandidates(ctx, title, horizonDays)
	})
}

// MovieMatches returns upcoming releases for the tracked movie titles,
// deduplicated and ranked.
func (m *Matcher) MovieMatches(ctx context.Context, titles []string, horizonDays int) []model.ReleaseCandidate {
	return m.collect(ctx, titles, func(ctx context.Context, title string) ([]model.ReleaseCandidate, error) {
		return m.movieCandidates(ctx, title, horizonDays)
	})
}

type resolveFunc func(ctx context.Context, title string) ([]model.ReleaseCandidate, error)

func (m *Matcher) collect(ctx context.Context, titles []string, resolve resolveFunc) []model.ReleaseCandidate {
	var (
		mu  sync.Mutex
		all []model.ReleaseCandidate
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)
	for _, title := range titles {
		title := title
		g.Go(func() error {
			cands, err := resolve(ctx, title)
			if err != nil {
				// One provider hiccup must not abort the batch.
				m.log.Warn().Err(err).Str("title", title).Msg("skipping title")
				return nil
			}
			mu.Lock()
			all = append(all, cands...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return rank(dedupe(all))
}

// seriesCandidates searches for title and scans the detail record of every
// exact name match. Season air dates only exist in the detail record, so a
// second fetch per show is unavoidable. The first in-window season wins:
// at most one candidate per show per invocation.
func (m *Matcher) seriesCandidates(ctx context.Context, title string, horizonDays int) ([]model.ReleaseCandidate, error) {
	results, err := m.resolver.Search(ctx, title, model.KindSeries, 20)
	if err != nil {
		return nil, err
	}

	today := model.Today()
	var out []model.ReleaseCandidate
	for _, r := range results {
		details, err := m.resolver.SeriesDetails(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if !nameMatches(details.Name, title) {
			continue
		}
		for _, season := range details.Seasons {
			if season.AirDate == "" || season.SeasonNumber == 0 {
				continue
			}
			date, err := model.ParseDate(season.AirDate)
			if err != nil {
				continue
			}
			if !model.InWindow(date, today, horizonDays) {
				continue
			}
			out = append(out, model.ReleaseCandidate{
				Name:       details.Name,
				Kind:       model.SeasonKind(season.SeasonNumber),
				Date:       season.AirDate,
				Popularity: details.Popularity,
				Rating:     details.Rating,
			})
			break
		}
	}
	return out, nil
}

// movieCandidates searches for title and accepts exact name matches whose
// release date falls inside the window. The search record already carries
// the date, so no detail fetch is needed for movies.
func (m *Matcher) movieCandidates(ctx context.Context, title string, horizonDays int) ([]model.ReleaseCandidate, error) {
	results, err := m.resolver.Search(ctx, title, model.KindMovie, 20)
	if err != nil {
		return nil, err
	}

	today := model.Today()
	var out []model.ReleaseCandidate
	for _, r := range results {
		if !nameMatches(r.Name, title) {
			continue
		}
		if r.Date == "" {
			continue
		}
		date, err := model.ParseDate(r.Date)
		if err != nil {
			continue
		}
		if !model.InWindow(date, today, horizonDays) {
			continue
		}
		out = append(out, model.ReleaseCandidate{
			Name:       r.Name,
			Kind:       model.ReleaseMovie,
			Date:       r.Date,
			Popularity: r.Popularity,
			Rating:     r.Rating,
		})
	}
	return out, nil
}

// nameMatches requires the resolved canonical name to equal the tracked
// title exactly, case-insensitively. Provider search is fuzzy; this keeps
// substring false positives out.
func nameMatches(resolved, tracked string) bool {
	return strings.ToLower(strings.TrimSpace(resolved)) == strings.ToLower(strings.TrimSpace(tracked))
}

// dedupe drops repeated (folded name, kind, date) triples, keeping the
// first occurrence. The same title may still appear once as a premiere and
// once as a later season.
func dedupe(cands []model.ReleaseCandidate) []model.ReleaseCandidate {
	type key struct {
		name string
		kind model.ReleaseKind
		date string
	}
	seen := make(map[key]struct{}, len(cands))
	out := cands[:0]
	for _, c := range cands {
		k := key{strings.ToLower(c.Name), c.Kind, c.Date}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// rank sorts candidates by descending popularity, ties broken by
// ascending date.
func rank(cands []model.ReleaseCandidate) []model.ReleaseCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Popularity != cands[j].Popularity {
			return cands[i].Popularity > cands[j].Popularity
		}
		return cands[i].Date < cands[j].Date
	})
	return cands
}
