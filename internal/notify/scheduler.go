// Package notify runs the per-chat daily release notification jobs.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"releasebot/internal/model"
	"releasebot/internal/store"
)

// Default job parameters: one tick per day, releases within 3 days qualify.
const (
	DefaultInterval = 24 * time.Hour
	LookaheadDays   = 3
)

// Matcher finds upcoming releases for tracked titles.
type Matcher interface {
	SeriesMatches(ctx context.Context, titles []string, horizonDays int) []model.ReleaseCandidate
	MovieMatches(ctx context.Context, titles []string, horizonDays int) []model.ReleaseCandidate
}

// Sender is the interface for delivering notification messages.
type Sender interface {
	SendHTML(chatID int64, text string)
}

// Scheduler keeps at most one recurring notification job per chat. Jobs
// fire immediately on enable and every interval after that. Job state is
// in-memory only; a restart drops all subscriptions.
type Scheduler struct {
	sched    gocron.Scheduler
	store    *store.Store
	matcher  Matcher
	sender   Sender
	log      zerolog.Logger
	interval time.Duration

	mu   sync.Mutex
	jobs map[int64]gocron.Job
}

// New creates a Scheduler. Call Start to begin firing jobs and Stop to
// tear the scheduler down.
func New(st *store.Store, m Matcher, sender Sender, log zerolog.Logger) (*Scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{
		sched:    gs,
		store:    st,
		matcher:  m,
		sender:   sender,
		log:      log.With().Str("component", "notify").Logger(),
		interval: DefaultInterval,
		jobs:     make(map[int64]gocron.Job),
	}, nil
}

// SetInterval overrides the default daily interval for jobs enabled
// afterwards. Useful in tests.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.interval = d
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop cancels all jobs and shuts the scheduler down. In-flight ticks
// finish on their own; they are simply not rescheduled.
func (s *Scheduler) Stop() error {
	return s.sched.Shutdown()
}

// Enable installs the recurring job for chatID, replacing any existing
// one. Enabling twice never yields two jobs.
func (s *Scheduler) Enable(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.jobs[chatID]; ok {
		if err := s.sched.RemoveJob(old.ID()); err != nil {
			s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("remove stale job")
		}
		delete(s.jobs, chatID)
	}

	job, err := s.sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.runTick(context.Background(), chatID) }),
		gocron.WithName(strconv.FormatInt(chatID, 10)),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule job for chat %d: %w", chatID, err)
	}
	s.jobs[chatID] = job

	s.log.Info().Int64("chat_id", chatID).Dur("interval", s.interval).Msg("notifications enabled")
	return nil
}

// Disable cancels the job for chatID. It reports whether a job existed.
func (s *Scheduler) Disable(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[chatID]
	if !ok {
		return false
	}
	if err := s.sched.RemoveJob(job.ID()); err != nil {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Msg("remove job")
	}
	delete(s.jobs, chatID)

	s.log.Info().Int64("chat_id", chatID).Msg("notifications disabled")
	return true
}

// JobCount returns the number of active notification jobs.
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// runTick is one firing of a chat's job: match both tracked sets against
// the lookahead window and send a combined message when anything is due.
// A release stays in the window across several daily ticks and is
// reported on each one; the job keeps no memory of past notices.
func (s *Scheduler) runTick(ctx context.Context, chatID int64) {
	series := s.matcher.SeriesMatches(ctx, s.store.Entries(store.TrackedSeries), LookaheadDays)
	movies := s.matcher.MovieMatches(ctx, s.store.Entries(store.TrackedMovies), LookaheadDays)

	if len(series) == 0 && len(movies) == 0 {
		s.log.Debug().Int64("chat_id", chatID).Msg("silent tick")
		return
	}

	s.sender.SendHTML(chatID, FormatReleaseNotice(series, movies))
	s.log.Info().
		Int64("chat_id", chatID).
		Int("series", len(series)).
		Int("movies", len(movies)).
		Msg("sent release notice")
}
