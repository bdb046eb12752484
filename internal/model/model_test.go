package model

import (
	"testing"
	"time"
)

func TestSeasonKind(t *testing.T) {
	if got := SeasonKind(1); got != ReleasePremiere {
		t.Errorf("SeasonKind(1) = %q, want premiere", got)
	}
	if got := SeasonKind(4); got != ReleaseKind("season:4") {
		t.Errorf("SeasonKind(4) = %q", got)
	}
}

func TestInWindow(t *testing.T) {
	from := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		days int
		want bool
	}{
		{name: "same day", date: from, days: 3, want: true},
		{name: "last day inclusive", date: from.AddDate(0, 0, 3), days: 3, want: true},
		{name: "one past cutoff", date: from.AddDate(0, 0, 4), days: 3, want: false},
		{name: "before window", date: from.AddDate(0, 0, -1), days: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InWindow(tt.date, from, tt.days); got != tt.want {
				t.Errorf("InWindow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-29")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.August || d.Day() != 29 {
		t.Errorf("parsed %v", d)
	}

	if _, err := ParseDate("29.08.2026"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
