// Package store persists the highlighted and favourite title lists.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// List names one of the four persisted title sets.
type List string

// The four persisted sets. The values are the JSON keys of the store file.
const (
	TrackedSeries   List = "series"
	TrackedMovies   List = "movies"
	FavouriteSeries List = "favourite_series"
	FavouriteMovies List = "favourite_movies"
)

// ErrEmptyEntry is returned when an add or remove receives a blank title.
var ErrEmptyEntry = errors.New("entry is empty")

// Store holds the four title sets and mirrors every mutation to a JSON
// file, so the durable copy is never more than one operation behind.
//
// Tracked sets store entries lower-cased; favourite sets keep the original
// case and are compared case-insensitively. The asymmetry is inherited
// behavior and is kept on purpose.
type Store struct {
	mu   sync.Mutex
	path string
	sets map[List][]string
}

type fileLayout struct {
	Series          *[]string `json:"series"`
	Movies          *[]string `json:"movies"`
	FavouriteSeries *[]string `json:"favourite_series"`
	FavouriteMovies *[]string `json:"favourite_movies"`
}

// Open loads the store file at path, falling back to the compiled-in seed
// lists for any set the file does not carry. A missing file yields the
// seeds; a malformed file is an error, never a silent reset.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		sets: map[List][]string{
			TrackedSeries:   append([]string(nil), seedSeries...),
			TrackedMovies:   append([]string(nil), seedMovies...),
			FavouriteSeries: nil,
			FavouriteMovies: nil,
		},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var layout fileLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	if layout.Series != nil {
		s.sets[TrackedSeries] = *layout.Series
	}
	if layout.Movies != nil {
		s.sets[TrackedMovies] = *layout.Movies
	}
	if layout.FavouriteSeries != nil {
		s.sets[FavouriteSeries] = *layout.FavouriteSeries
	}
	if layout.FavouriteMovies != nil {
		s.sets[FavouriteMovies] = *layout.FavouriteMovies
	}
	return s, nil
}

// Add inserts entry into the named set if it is not already present and
// persists the store. It reports whether the entry was newly added.
func (s *Store) Add(list List, entry string) (bool, error) {
	entry = normalize(list, entry)
	if entry == "" {
		return false, ErrEmptyEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(list, entry) {
		return false, nil
	}
	s.sets[list] = append(s.sets[list], entry)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the first case-insensitive match of entry from the named
// set and persists the store. It reports whether a match was found.
func (s *Store) Remove(list List, entry string) (bool, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return false, ErrEmptyEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, have := range s.sets[list] {
		if strings.EqualFold(have, entry) {
			s.sets[list] = append(s.sets[list][:i], s.sets[list][i+1:]...)
			if err := s.save(); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Contains reports whether entry is in the named set, using the set's own
// membership rule.
func (s *Store) Contains(list List, entry string) bool {
	entry = normalize(list, entry)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(list, entry)
}

// Entries returns a sorted snapshot of the named set. Favourite sets sort
// case-insensitively since they keep original casing.
func (s *Store) Entries(list List) []string {
	s.mu.Lock()
	out := append([]string(nil), s.sets[list]...)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

func (s *Store) contains(list List, entry string) bool {
	for _, have := range s.sets[list] {
		if list == FavouriteSeries || list == FavouriteMovies {
			if strings.EqualFold(have, entry) {
				return true
			}
		} else if have == entry {
			return true
		}
	}
	return false
}

// normalize trims the entry and lower-cases it for the tracked sets.
func normalize(list List, entry string) string {
	entry = strings.TrimSpace(entry)
	if list == TrackedSeries || list == TrackedMovies {
		entry = strings.ToLower(entry)
	}
	return entry
}

// save writes the full store atomically. Caller holds s.mu.
func (s *Store) save() error {
	layout := map[string][]string{}
	for list, entries := range s.sets {
		sorted := append([]string(nil), entries...)
		sort.Strings(sorted)
		if sorted == nil {
			sorted = []string{}
		}
		layout[string(list)] = sorted
	}

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
