// Package bot implements the Telegram front end: command dispatch, the
// add-title selection conversations, and message formatting.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"releasebot/internal/calendar"
	"releasebot/internal/config"
	"releasebot/internal/eventlog"
	"releasebot/internal/model"
	"releasebot/internal/store"
	"releasebot/internal/tmdb"
)

// Per-command limits, inherited from the original bot behavior.
const (
	selectionLimit    = 5   // candidates offered per add-title search
	listingLimit      = 10  // trending and top listings
	upcomingLimit     = 50  // /movies listing
	upcomingMovieDays = 30  // /movies lookahead
	seriesLookahead   = 120 // /series lookahead
	randomMaxPage     = 100 // random picks sample pages 1..randomMaxPage
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Resolver is the metadata lookup surface the command handlers use.
type Resolver interface {
	Search(ctx context.Context, query string, kind model.MediaKind, max int) ([]tmdb.Result, error)
	UpcomingMovies(ctx context.Context, horizonDays, max int) ([]tmdb.Result, error)
	Trending(ctx context.Context, kind model.MediaKind, max int) ([]tmdb.Result, error)
	Popular(ctx context.Context, kind model.MediaKind, page, max int) ([]tmdb.Result, error)
}

// Matcher serves the /series listing.
type Matcher interface {
	SeriesMatches(ctx context.Context, titles []string, horizonDays int) []model.ReleaseCandidate
}

// Notifier toggles the per-chat notification job.
type Notifier interface {
	Enable(chatID int64) error
	Disable(chatID int64) bool
}

// Bot is the Telegram bot that handles user commands and sends
// notifications.
type Bot struct {
	api        telegramAPI
	store      *store.Store
	resolver   Resolver
	matcher    Matcher
	notifier   Notifier
	events     *eventlog.Log
	cal        calendar.Service // nil when the calendar is not configured
	cfg        *config.Config
	log        zerolog.Logger
	selections *selections
}

// Deps carries the bot's collaborators. Calendar may be nil.
type Deps struct {
	Store    *store.Store
	Resolver Resolver
	Matcher  Matcher
	Events   *eventlog.Log
	Calendar calendar.Service
	Config   *config.Config
	Log      zerolog.Logger
}

// New creates a Bot with the given Telegram token and collaborators.
// The notification scheduler is attached separately since it sends
// through the bot itself.
func New(token string, d Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return newWithAPI(api, d), nil
}

func newWithAPI(api telegramAPI, d Deps) *Bot {
	return &Bot{
		api:        api,
		store:      d.Store,
		resolver:   d.Resolver,
		matcher:    d.Matcher,
		events:     d.Events,
		cal:        d.Calendar,
		cfg:        d.Config,
		log:        d.Log.With().Str("component", "bot").Logger(),
		selections: newSelections(),
	}
}

// AttachNotifier wires the notification scheduler in after construction.
func (b *Bot) AttachNotifier(n Notifier) {
	b.notifier = n
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.cfg.IsUserAllowed(msg.From.ID) {
		b.reply(msg.Chat.ID, "Access denied.")
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if strings.TrimSpace(msg.Text) != "" {
		b.handleSelectionReply(msg.Chat.ID, msg.Text)
	}
}

// SendHTML sends an HTML-formatted message to the given chat. It also
// serves as the notification scheduler's delivery sink.
func (b *Bot) SendHTML(chatID int64, text string) {
	b.send(chatID, text, tgbotapi.ModeHTML, false)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(chatID, text, "", false)
}

func (b *Bot) replyHTML(chatID int64, text string) {
	b.send(chatID, text, tgbotapi.ModeHTML, false)
}

// replyHTMLPreview keeps link previews on, for messages with poster links.
func (b *Bot) replyHTMLPreview(chatID int64, text string) {
	b.send(chatID, text, tgbotapi.ModeHTML, true)
}

func (b *Bot) send(chatID int64, text, parseMode string, preview bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	msg.DisableWebPagePreview = !preview
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	b.log.Debug().Str("cmd", cmd).Str("args", args).Int64("chat_id", chatID).Msg("command")

	switch cmd {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(chatID)
	case "chatid":
		b.reply(chatID, fmt.Sprintf("Your chat ID is: %d", chatID))
	case "movies":
		b.handleMovies(ctx, chatID)
	case "series":
		b.handleSeries(ctx, chatID)
	case "addseries":
		b.handleAddTitle(ctx, chatID, args, store.TrackedSeries, model.KindSeries)
	case "addmovie":
		b.handleAddTitle(ctx, chatID, args, store.TrackedMovies, model.KindMovie)
	case "listseries":
		b.handleListTracked(chatID, store.TrackedSeries)
	case "listmovies":
		b.handleListTracked(chatID, store.TrackedMovies)
	case "removeseries":
		b.handleRemoveTracked(chatID, args, store.TrackedSeries)
	case "removemovie":
		b.handleRemoveTracked(chatID, args, store.TrackedMovies)
	case "randomseries":
		b.handleRandom(ctx, chatID, model.KindSeries)
	case "randommovie":
		b.handleRandom(ctx, chatID, model.KindMovie)
	case "trendingseries", "topseries":
		b.handleTrending(ctx, chatID, model.KindSeries)
	case "trendingmovies", "topmovies":
		b.handleTrending(ctx, chatID, model.KindMovie)
	case "notifyon":
		b.handleNotifyOn(chatID)
	case "notifyoff":
		b.handleNotifyOff(chatID)
	case "addfaveseries":
		b.handleAddFavourites(chatID, args, store.FavouriteSeries)
	case "addfavemovie":
		b.handleAddFavourites(chatID, args, store.FavouriteMovies)
	case "removefaveseries":
		b.handleRemoveFavourite(chatID, args, store.FavouriteSeries)
	case "removefavemovie":
		b.handleRemoveFavourite(chatID, args, store.FavouriteMovies)
	case "listfaveseries":
		b.handleListFavourites(chatID, store.FavouriteSeries)
	case "listfavemovies":
		b.handleListFavourites(chatID, store.FavouriteMovies)
	case "addevent":
		b.handleAddEvent(ctx, chatID, args)
	case "events":
		b.handleListEvents(ctx, chatID)
	case "removeevent":
		b.handleRemoveEvent(ctx, chatID, args)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}
