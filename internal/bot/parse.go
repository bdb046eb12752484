package bot

import (
	"fmt"
	"strings"

	"releasebot/internal/model"
)

// ParseEventArgs splits "/addevent" arguments of the form
// "title - YYYY-MM-DD". The last " - " separates title from date, so
// titles may themselves contain the separator.
func ParseEventArgs(args string) (title, date string, err error) {
	args = strings.TrimSpace(args)
	idx := strings.LastIndex(args, " - ")
	if idx <= 0 {
		return "", "", fmt.Errorf("expected: title - YYYY-MM-DD")
	}

	title = strings.TrimSpace(args[:idx])
	date = strings.TrimSpace(args[idx+3:])
	if title == "" {
		return "", "", fmt.Errorf("event title is empty")
	}
	if _, perr := model.ParseDate(date); perr != nil {
		return "", "", fmt.Errorf("invalid date %q: %w", date, perr)
	}
	return title, date, nil
}

// SplitNames splits a '+'-separated multi-add argument into trimmed,
// non-empty names.
func SplitNames(args string) []string {
	var names []string
	for _, part := range strings.Split(args, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}
