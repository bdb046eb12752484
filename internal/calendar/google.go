package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"releasebot/internal/model"
)

const (
	defaultBaseURL = "https://www.googleapis.com/calendar/v3"
	scope          = "https://www.googleapis.com/auth/calendar.events"
)

// Google talks to the Google Calendar v3 REST API through an oauth2
// client that refreshes the cached token on expiry.
type Google struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewGoogle builds a client from the OAuth client-secret file and the
// cached token file. The token file is the one-time authorization
// artifact; its absence is a configuration error, not a retry case.
func NewGoogle(ctx context.Context, credentialsFile, tokenFile string, log zerolog.Logger) (*Google, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	conf, err := google.ConfigFromJSON(creds, scope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	tokData, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token file %s (run the one-time authorization first): %w", tokenFile, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokData, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", tokenFile, err)
	}

	return &Google{
		client:  conf.Client(ctx, &tok),
		baseURL: defaultBaseURL,
		log:     log.With().Str("component", "calendar").Logger(),
	}, nil
}

// NewGoogleWithClient builds a client on a caller-provided HTTP client and
// base URL. Used by tests.
func NewGoogleWithClient(client *http.Client, baseURL string, log zerolog.Logger) *Google {
	return &Google{
		client:  client,
		baseURL: baseURL,
		log:     log.With().Str("component", "calendar").Logger(),
	}
}

type wireDate struct {
	Date string `json:"date"`
}

type wireEvent struct {
	ID       string   `json:"id,omitempty"`
	Summary  string   `json:"summary"`
	Start    wireDate `json:"start"`
	End      wireDate `json:"end"`
	HTMLLink string   `json:"htmlLink,omitempty"`
}

type wireEventList struct {
	Items []wireEvent `json:"items"`
}

// CreateEvent inserts an all-day event and returns it with the external
// link filled in.
func (g *Google) CreateEvent(ctx context.Context, title, date string) (*Event, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", date, err)
	}

	body := wireEvent{
		Summary: title,
		Start:   wireDate{Date: date},
		End:     wireDate{Date: day.AddDate(0, 0, 1).Format(model.DateLayout)},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/calendars/primary/events", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created wireEvent
	if err := g.do(req, &created); err != nil {
		return nil, err
	}

	g.log.Info().Str("title", title).Str("date", date).Msg("created calendar event")
	return &Event{
		ID:    created.ID,
		Title: created.Summary,
		Date:  created.Start.Date,
		Link:  created.HTMLLink,
	}, nil
}

// ListEvents returns upcoming events on the primary calendar.
func (g *Google) ListEvents(ctx context.Context) ([]Event, error) {
	params := url.Values{}
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	params.Set("timeMin", time.Now().UTC().Format(time.RFC3339))
	params.Set("maxResults", "250")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/calendars/primary/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var list wireEventList
	if err := g.do(req, &list); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(list.Items))
	for _, item := range list.Items {
		events = append(events, Event{
			ID:    item.ID,
			Title: item.Summary,
			Date:  item.Start.Date,
			Link:  item.HTMLLink,
		})
	}
	return events, nil
}

// DeleteEvents removes every upcoming event whose title contains the given
// substring, case-insensitively, and returns the deleted events.
func (g *Google) DeleteEvents(ctx context.Context, titleSubstring string) ([]Event, error) {
	events, err := g.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(titleSubstring)
	var deleted []Event
	for _, ev := range events {
		if !strings.Contains(strings.ToLower(ev.Title), needle) {
			continue
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
			g.baseURL+"/calendars/primary/events/"+url.PathEscape(ev.ID), nil)
		if err != nil {
			return deleted, fmt.Errorf("create request: %w", err)
		}
		if err := g.do(req, nil); err != nil {
			return deleted, err
		}
		deleted = append(deleted, ev)
	}

	g.log.Info().Str("match", titleSubstring).Int("deleted", len(deleted)).Msg("deleted calendar events")
	return deleted, nil
}

func (g *Google) do(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calendar request: status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode calendar response: %w", err)
	}
	return nil
}
