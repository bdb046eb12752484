package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"releasebot/internal/model"
)

// mockTransport routes requests to a handler so tests control every
// response without a network.
type mockTransport struct {
	handler  func(req *http.Request) (*http.Response, error)
	requests []*http.Request
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return m.handler(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(handler func(req *http.Request) (*http.Response, error)) (*Client, *mockTransport) {
	transport := &mockTransport{handler: handler}
	c := New("https://api.example.test/3", "test-key", transport, zerolog.Nop())
	return c, transport
}

func TestSearchSeries(t *testing.T) {
	c, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/3/search/tv" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{
			"page": 1,
			"results": [
				{"id": 1, "name": "Severance", "first_air_date": "2022-02-18", "popularity": 120.5, "vote_average": 8.7, "poster_path": "/sev.jpg"},
				{"id": 2, "name": "Severance Pay", "first_air_date": "2010-01-01", "popularity": 3.2, "vote_average": 5.0, "poster_path": ""}
			]
		}`), nil
	})

	got, err := c.Search(context.Background(), "severance", model.KindSeries, 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []Result{
		{ID: 1, Name: "Severance", Date: "2022-02-18", Popularity: 120.5, Rating: 8.7, PosterPath: "/sev.jpg"},
		{ID: 2, Name: "Severance Pay", Date: "2010-01-01", Popularity: 3.2, Rating: 5.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	query := transport.requests[0].URL.Query()
	if query.Get("query") != "severance" {
		t.Errorf("query param = %q, want %q", query.Get("query"), "severance")
	}
	if query.Get("api_key") != "test-key" {
		t.Error("api_key param missing")
	}
}

func TestSearchCapsResults(t *testing.T) {
	c, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"results": [
				{"id": 1, "title": "A"},
				{"id": 2, "title": "B"},
				{"id": 3, "title": "C"}
			]
		}`), nil
	})

	got, err := c.Search(context.Background(), "a", model.KindMovie, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestUpcomingMoviesFiltersWindow(t *testing.T) {
	today := model.Today()
	inWindow := today.AddDate(0, 0, 5).Format(model.DateLayout)
	tooFar := today.AddDate(0, 0, 60).Format(model.DateLayout)
	past := today.AddDate(0, 0, -1).Format(model.DateLayout)

	c, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("page") != "1" {
			return jsonResponse(http.StatusOK, `{"results": []}`), nil
		}
		body := fmt.Sprintf(`{"results": [
			{"id": 1, "title": "Soon", "release_date": %q, "popularity": 10},
			{"id": 2, "title": "Later", "release_date": %q, "popularity": 99},
			{"id": 3, "title": "Released", "release_date": %q, "popularity": 50},
			{"id": 4, "title": "No Date", "release_date": ""}
		]}`, inWindow, tooFar, past)
		return jsonResponse(http.StatusOK, body), nil
	})

	got, err := c.UpcomingMovies(context.Background(), 30, 50)
	if err != nil {
		t.Fatalf("upcoming movies: %v", err)
	}

	want := []Result{{ID: 1, Name: "Soon", Date: inWindow, Popularity: 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestUpcomingMoviesStopsAtPageCap(t *testing.T) {
	date := model.Today().AddDate(0, 0, 1).Format(model.DateLayout)

	var pages []string
	c, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		pages = append(pages, req.URL.Query().Get("page"))
		// Every page is full and in-window, so only the cap stops us.
		body := fmt.Sprintf(`{"results": [{"id": 1, "title": "M", "release_date": %q}]}`, date)
		return jsonResponse(http.StatusOK, body), nil
	})

	if _, err := c.UpcomingMovies(context.Background(), 30, 1000); err != nil {
		t.Fatalf("upcoming movies: %v", err)
	}

	want := []string{"1", "2", "3", "4", "5"}
	if diff := cmp.Diff(want, pages); diff != "" {
		t.Errorf("requested pages mismatch (-want +got):\n%s", diff)
	}
}

func TestUpcomingMoviesStopsAtMax(t *testing.T) {
	date := model.Today().AddDate(0, 0, 1).Format(model.DateLayout)

	c, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		body := fmt.Sprintf(`{"results": [
			{"id": 1, "title": "A", "release_date": %q},
			{"id": 2, "title": "B", "release_date": %q},
			{"id": 3, "title": "C", "release_date": %q}
		]}`, date, date, date)
		return jsonResponse(http.StatusOK, body), nil
	})

	got, err := c.UpcomingMovies(context.Background(), 30, 2)
	if err != nil {
		t.Fatalf("upcoming movies: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
	if len(transport.requests) != 1 {
		t.Errorf("made %d requests, want 1", len(transport.requests))
	}
}

func TestUpcomingSeriesSendsDateBounds(t *testing.T) {
	c, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"results": []}`), nil
	})

	if _, err := c.UpcomingSeries(context.Background(), 120, 50); err != nil {
		t.Fatalf("upcoming series: %v", err)
	}

	query := transport.requests[0].URL.Query()
	today := model.Today()
	if got := query.Get("first_air_date.gte"); got != today.Format(model.DateLayout) {
		t.Errorf("first_air_date.gte = %q, want today", got)
	}
	wantCutoff := today.AddDate(0, 0, 120).Format(model.DateLayout)
	if got := query.Get("first_air_date.lte"); got != wantCutoff {
		t.Errorf("first_air_date.lte = %q, want %q", got, wantCutoff)
	}
	if got := query.Get("sort_by"); got != "popularity.desc" {
		t.Errorf("sort_by = %q", got)
	}
}

func TestSeriesDetails(t *testing.T) {
	c, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"id": 95396,
			"name": "Severance",
			"first_air_date": "2022-02-18",
			"popularity": 120.5,
			"vote_average": 8.7,
			"seasons": [
				{"season_number": 1, "air_date": "2022-02-18"},
				{"season_number": 2, "air_date": "2025-01-17"}
			]
		}`), nil
	})

	got, err := c.SeriesDetails(context.Background(), 95396)
	if err != nil {
		t.Fatalf("series details: %v", err)
	}

	want := &SeriesDetails{
		ID:           95396,
		Name:         "Severance",
		FirstAirDate: "2022-02-18",
		Popularity:   120.5,
		Rating:       8.7,
		Seasons: []Season{
			{SeasonNumber: 1, AirDate: "2022-02-18"},
			{SeasonNumber: 2, AirDate: "2025-01-17"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
	if path := transport.requests[0].URL.Path; path != "/3/tv/95396" {
		t.Errorf("path = %q", path)
	}
}

func TestErrorsWrapSentinel(t *testing.T) {
	tests := []struct {
		name    string
		handler func(req *http.Request) (*http.Response, error)
	}{
		{
			name: "non-200 status",
			handler: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusUnauthorized, `{"status_code": 7, "status_message": "Invalid API key"}`), nil
			},
		},
		{
			name: "transport failure",
			handler: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name: "malformed body",
			handler: func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{not json`), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(tt.handler)
			_, err := c.Search(context.Background(), "x", model.KindSeries, 5)
			if !errors.Is(err, ErrMetadata) {
				t.Errorf("error %v does not wrap ErrMetadata", err)
			}
		})
	}
}

func TestPosterURL(t *testing.T) {
	if got := PosterURL("/abc.jpg"); got != "https://image.tmdb.org/t/p/w200/abc.jpg" {
		t.Errorf("PosterURL = %q", got)
	}
	if got := PosterURL(""); got != "" {
		t.Errorf("PosterURL of empty path = %q, want empty", got)
	}
}
