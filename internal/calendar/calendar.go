// Package calendar mirrors personal events to an external calendar
// service. Google Calendar is the only backend.
package calendar

import "context"

// Event is one calendar entry as the external service reports it.
type Event struct {
	ID    string
	Title string
	Date  string // YYYY-MM-DD, all-day events only
	Link  string
}

// Service is the external calendar sink: create, list, and delete-by-title.
type Service interface {
	CreateEvent(ctx context.Context, title, date string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	DeleteEvents(ctx context.Context, titleSubstring string) ([]Event, error)
}
