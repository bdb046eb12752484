// Package tmdb queries The Movie Database API for movie and TV metadata.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"releasebot/internal/model"
)

// ErrMetadata is the single recoverable provider-error sentinel. Non-2xx
// responses, transport failures, and malformed bodies all wrap it, so a
// caller iterating many titles can catch one hiccup per call.
var ErrMetadata = errors.New("metadata provider error")

// Upcoming-movie pagination is capped to keep a single listing cheap.
const maxUpcomingPages = 5

const imageBaseURL = "https://image.tmdb.org/t/p/w200"

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is one normalized search or listing record.
type Result struct {
	ID         int
	Name       string
	Date       string // release date or first air date, YYYY-MM-DD
	Popularity float64
	Rating     float64
	PosterPath string
}

// Season is one season entry of a series detail record.
type Season struct {
	SeasonNumber int
	AirDate      string
}

// SeriesDetails is the full detail record of a TV series. Season-level air
// dates are only present here, not in search results.
type SeriesDetails struct {
	ID           int
	Name         string
	FirstAirDate string
	Popularity   float64
	Rating       float64
	Seasons      []Season
}

// Client is a TMDB API client. One instance is shared across the process
// so the underlying HTTP client can reuse connections.
type Client struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// New creates a Client against baseURL with the given HTTP client.
func New(baseURL, apiKey string, client HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log.With().Str("component", "tmdb").Logger(),
	}
}

// Search runs a free-text title search and returns at most max results
// from the first page.
func (c *Client) Search(ctx context.Context, query string, kind model.MediaKind, max int) ([]Result, error) {
	params := url.Values{}
	params.Set("query", query)

	switch kind {
	case model.KindMovie:
		var page moviePage
		if err := c.get(ctx, "/search/movie", params, &page); err != nil {
			return nil, err
		}
		return movieResults(page.Results, max), nil
	default:
		var page tvPage
		if err := c.get(ctx, "/search/tv", params, &page); err != nil {
			return nil, err
		}
		return tvResults(page.Results, max), nil
	}
}

// UpcomingMovies paginates the provider's upcoming listing and returns
// movies releasing within horizonDays from today. Pagination stops when
// max results are collected, pages run out, or the page cap is hit.
func (c *Client) UpcomingMovies(ctx context.Context, horizonDays, max int) ([]Result, error) {
	today := model.Today()

	var out []Result
	for pageNum := 1; pageNum <= maxUpcomingPages; pageNum++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(pageNum))

		var page moviePage
		if err := c.get(ctx, "/movie/upcoming", params, &page); err != nil {
			return nil, err
		}
		if len(page.Results) == 0 {
			break
		}
		for _, rec := range page.Results {
			date, err := model.ParseDate(rec.ReleaseDate)
			if err != nil {
				continue
			}
			if !model.InWindow(date, today, horizonDays) {
				continue
			}
			out = append(out, rec.toResult())
			if len(out) >= max {
				return out, nil
			}
		}
	}
	return out, nil
}

// UpcomingSeries lists series premiering within horizonDays from today,
// most popular first. Date filtering is server-side; premiere dates in a
// discover listing are provider-validated, so there is no client re-check.
func (c *Client) UpcomingSeries(ctx context.Context, horizonDays, max int) ([]Result, error) {
	today := model.Today()
	cutoff := today.AddDate(0, 0, horizonDays)

	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("first_air_date.gte", today.Format(model.DateLayout))
	params.Set("first_air_date.lte", cutoff.Format(model.DateLayout))

	var page tvPage
	if err := c.get(ctx, "/discover/tv", params, &page); err != nil {
		return nil, err
	}
	return tvResults(page.Results, max), nil
}

// Trending returns this week's trending titles, first page only.
func (c *Client) Trending(ctx context.Context, kind model.MediaKind, max int) ([]Result, error) {
	path := fmt.Sprintf("/trending/%s/week", kind)
	return c.listPage(ctx, path, kind, nil, max)
}

// Popular returns one page of the popularity-ranked listing. The page is
// caller-chosen so random-pick commands can sample deep pages.
func (c *Client) Popular(ctx context.Context, kind model.MediaKind, pageNum, max int) ([]Result, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(pageNum))
	path := fmt.Sprintf("/%s/popular", kind)
	return c.listPage(ctx, path, kind, params, max)
}

// OnTheAir returns series currently on the air, first page only.
func (c *Client) OnTheAir(ctx context.Context, max int) ([]Result, error) {
	return c.listPage(ctx, "/tv/on_the_air", model.KindSeries, nil, max)
}

// SeriesDetails fetches the full detail record for a series, including
// per-season air dates.
func (c *Client) SeriesDetails(ctx context.Context, id int) (*SeriesDetails, error) {
	var rec tvDetailsRecord
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), nil, &rec); err != nil {
		return nil, err
	}

	details := &SeriesDetails{
		ID:           rec.ID,
		Name:         rec.Name,
		FirstAirDate: rec.FirstAirDate,
		Popularity:   rec.Popularity,
		Rating:       rec.VoteAverage,
		Seasons:      make([]Season, 0, len(rec.Seasons)),
	}
	for _, s := range rec.Seasons {
		details.Seasons = append(details.Seasons, Season{
			SeasonNumber: s.SeasonNumber,
			AirDate:      s.AirDate,
		})
	}
	return details, nil
}

// PosterURL returns the full image URL for a poster path, or "" if none.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

func (c *Client) listPage(ctx context.Context, path string, kind model.MediaKind, params url.Values, max int) ([]Result, error) {
	if kind == model.KindMovie {
		var page moviePage
		if err := c.get(ctx, path, params, &page); err != nil {
			return nil, err
		}
		return movieResults(page.Results, max), nil
	}
	var page tvPage
	if err := c.get(ctx, path, params, &page); err != nil {
		return nil, err
	}
	return tvResults(page.Results, max), nil
}

// get performs an HTTP GET against the API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMetadata, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorRecord
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.StatusMessage != "" {
			c.log.Debug().Int("status", resp.StatusCode).Str("message", apiErr.StatusMessage).Str("path", path).Msg("api error")
		}
		return fmt.Errorf("%w: %s: status %d", ErrMetadata, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode body: %v", ErrMetadata, path, err)
	}
	return nil
}
