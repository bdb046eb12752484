package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"releasebot/internal/bot"
	"releasebot/internal/calendar"
	"releasebot/internal/config"
	"releasebot/internal/eventlog"
	"releasebot/internal/matcher"
	"releasebot/internal/notify"
	"releasebot/internal/store"
	"releasebot/internal/tmdb"
)

func main() {
	log := newLogger("info")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = newLogger(cfg.LogLevel)

	st, err := store.Open(cfg.HighlightsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.HighlightsPath).Msg("open highlight store")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One shared HTTP client so every provider call reuses connections.
	httpClient := &http.Client{Timeout: 30 * time.Second}
	resolver := tmdb.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey, httpClient, log)
	m := matcher.New(resolver, log)
	events := eventlog.New(cfg.EventLogPath)

	var cal calendar.Service
	if cfg.CalendarEnabled() {
		gc, err := calendar.NewGoogle(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, log)
		if err != nil {
			log.Fatal().Err(err).Msg("configure calendar")
		}
		cal = gc
	}

	b, err := bot.New(cfg.TelegramToken, bot.Deps{
		Store:    st,
		Resolver: resolver,
		Matcher:  m,
		Events:   events,
		Calendar: cal,
		Config:   cfg,
		Log:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}

	sched, err := notify.New(st, m, b, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create notification scheduler")
	}
	b.AttachNotifier(sched)

	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("stop scheduler")
		}
	}()

	log.Info().Msg("starting bot")
	b.Run(ctx)
	log.Info().Msg("bot stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
