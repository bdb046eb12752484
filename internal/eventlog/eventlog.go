// Package eventlog stores personal "title - date" events in a flat file.
package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"releasebot/internal/model"
)

const separator = " - "

// Log is an append-only flat text file of one event per line. Writes never
// deduplicate; duplicates and unparseable lines are dropped at read time.
type Log struct {
	mu   sync.Mutex
	path string
}

// New creates a Log backed by the file at path. The file is created on
// first append.
func New(path string) *Log {
	return &Log{path: path}
}

// Append adds one event line. The date must be a valid YYYY-MM-DD date.
func (l *Log) Append(title, date string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("event title is empty")
	}
	if _, err := model.ParseDate(date); err != nil {
		return fmt.Errorf("invalid event date %q: %w", date, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create event log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s%s%s\n", title, separator, date); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Entries reads the log, dropping malformed lines and keeping the first
// occurrence of each (title, date) pair.
func (l *Log) Entries() ([]model.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[model.Event]struct{})
	var events []model.Event

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		ev, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, dup := seen[ev]; dup {
			continue
		}
		seen[ev] = struct{}{}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return events, nil
}

// parseLine splits on the last separator occurrence, so titles may
// themselves contain " - ".
func parseLine(line string) (model.Event, bool) {
	line = strings.TrimSpace(line)
	idx := strings.LastIndex(line, separator)
	if idx <= 0 {
		return model.Event{}, false
	}

	title := strings.TrimSpace(line[:idx])
	date := strings.TrimSpace(line[idx+len(separator):])
	if title == "" {
		return model.Event{}, false
	}
	if _, err := model.ParseDate(date); err != nil {
		return model.Event{}, false
	}
	return model.Event{Title: title, Date: date}, true
}
