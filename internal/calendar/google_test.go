package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestCreateEvent(t *testing.T) {
	var gotBody wireEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendars/primary/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(wireEvent{
			ID:       "ev1",
			Summary:  gotBody.Summary,
			Start:    gotBody.Start,
			End:      gotBody.End,
			HTMLLink: "https://calendar.example/ev1",
		})
	}))
	defer srv.Close()

	g := NewGoogleWithClient(srv.Client(), srv.URL, zerolog.Nop())

	got, err := g.CreateEvent(context.Background(), "Movie Night", "2026-09-05")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	want := &Event{ID: "ev1", Title: "Movie Night", Date: "2026-09-05", Link: "https://calendar.example/ev1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}

	// All-day events end the following day.
	if gotBody.End.Date != "2026-09-06" {
		t.Errorf("end date = %q, want 2026-09-06", gotBody.End.Date)
	}
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	g := NewGoogleWithClient(http.DefaultClient, "http://unused.example", zerolog.Nop())

	if _, err := g.CreateEvent(context.Background(), "Movie Night", "05.09.2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestListEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("singleEvents") != "true" || q.Get("orderBy") != "startTime" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(wireEventList{Items: []wireEvent{
			{ID: "a", Summary: "Premiere", Start: wireDate{Date: "2026-09-10"}},
			{ID: "b", Summary: "Concert", Start: wireDate{Date: "2026-09-12"}},
		}})
	}))
	defer srv.Close()

	g := NewGoogleWithClient(srv.Client(), srv.URL, zerolog.Nop())

	got, err := g.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("list events: %v", err)
	}

	want := []Event{
		{ID: "a", Title: "Premiere", Date: "2026-09-10"},
		{ID: "b", Title: "Concert", Date: "2026-09-12"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteEventsMatchesSubstring(t *testing.T) {
	var deleted []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(wireEventList{Items: []wireEvent{
				{ID: "a", Summary: "Dune Premiere", Start: wireDate{Date: "2026-09-10"}},
				{ID: "b", Summary: "Concert", Start: wireDate{Date: "2026-09-12"}},
				{ID: "c", Summary: "dune watch party", Start: wireDate{Date: "2026-09-14"}},
			}})
		case http.MethodDelete:
			deleted = append(deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	g := NewGoogleWithClient(srv.Client(), srv.URL, zerolog.Nop())

	got, err := g.DeleteEvents(context.Background(), "Dune")
	if err != nil {
		t.Fatalf("delete events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("deleted %d events, want 2", len(got))
	}

	wantPaths := []string{"/calendars/primary/events/a", "/calendars/primary/events/c"}
	if diff := cmp.Diff(wantPaths, deleted); diff != "" {
		t.Errorf("delete paths mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogleWithClient(srv.Client(), srv.URL, zerolog.Nop())

	if _, err := g.ListEvents(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}
