package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"math/rand"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"releasebot/internal/model"
	"releasebot/internal/store"
)

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, fmt.Sprintf(`Hello %s!

Use /movies or /series to see upcoming movies or your highlight TV series.
Use /addseries [title] to add a new series to your highlight list.
Use /chatid to get your chat ID.
Use /help to see all commands.

To get daily release notifications, use /notifyon. To stop, use /notifyoff.`,
		msg.From.FirstName))
}

func (b *Bot) handleHelp(chatID int64) {
	b.replyHTML(chatID, `<b>Available Commands</b>
====================

<b>General</b>
/start - Show welcome message.
/series - Show new/returning seasons for your highlight series in the next 120 days.
/addseries [title] - Add a new series to your highlight list.
/movies - Show upcoming movies in the next 30 days.
/addmovie [title] - Add a new movie to your highlight list.
/chatid - Show your chat ID.
/help - Show this help message.
/listseries - List all your highlight series.
/listmovies - List all your highlight movies.
/removeseries [title] - Remove a series from your highlight list.
/removemovie [title] - Remove a movie from your highlight list.
/randomseries - Pick a random series.
/randommovie - Pick a random movie.
/trendingseries - Show trending TV series.
/trendingmovies - Show trending movies.
/notifyon - Enable daily release notifications.
/notifyoff - Disable daily release notifications.

<b>Favourites</b>
/addfaveseries [name] - Add a series to your favourites.
/addfavemovie [name] - Add a movie to your favourites.
/removefaveseries [name] - Remove a series from your favourites.
/removefavemovie [name] - Remove a movie from your favourites.
/listfaveseries - List all your favourite series.
/listfavemovies - List all your favourite movies.

<b>Events</b>
/addevent [title] - [YYYY-MM-DD] - Log a personal event.
/events - List logged events.
/removeevent [text] - Delete matching calendar events.`)
}

func (b *Bot) handleMovies(ctx context.Context, chatID int64) {
	b.reply(chatID, "Fetching upcoming movies...")

	results, err := b.resolver.UpcomingMovies(ctx, upcomingMovieDays, upcomingLimit)
	if err != nil {
		b.log.Error().Err(err).Msg("fetch upcoming movies")
		b.reply(chatID, "Sorry, an error occurred while fetching movie data.")
		return
	}
	if len(results) == 0 {
		b.reply(chatID, "No upcoming movies found.")
		return
	}
	b.replyHTML(chatID, FormatUpcomingMovies(results))
}

func (b *Bot) handleSeries(ctx context.Context, chatID int64) {
	b.reply(chatID, "Fetching new/returning seasons for your highlight series in the next 120 days...")

	matches := b.matcher.SeriesMatches(ctx, b.store.Entries(store.TrackedSeries), seriesLookahead)
	if len(matches) == 0 {
		b.reply(chatID, "No new or returning seasons found for your highlight series in the next 120 days.")
		return
	}
	b.replyHTML(chatID, FormatSeasonList(matches))
}

func (b *Bot) handleAddTitle(ctx context.Context, chatID int64, args string, list store.List, kind model.MediaKind) {
	if args == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /add%s [title]", mediaNoun(kind)))
		return
	}

	results, err := b.resolver.Search(ctx, args, kind, selectionLimit)
	if err != nil {
		b.log.Error().Err(err).Str("query", args).Msg("search")
		b.reply(chatID, fmt.Sprintf("Sorry, an error occurred while searching for %s.", mediaNoun(kind)))
		return
	}
	if len(results) == 0 {
		b.reply(chatID, fmt.Sprintf("No matching %s found.", pluralNoun(kind)))
		return
	}

	b.selections.start(chatID, list, kind, results)
	b.reply(chatID, FormatSelectionPrompt(results, kind))
}

func (b *Bot) handleListTracked(chatID int64, list store.List) {
	entries := b.store.Entries(list)
	noun := listNoun(list)
	if len(entries) == 0 {
		b.reply(chatID, fmt.Sprintf("Your highlight %s list is empty.", noun))
		return
	}
	b.replyHTML(chatID, FormatTitleList(
		fmt.Sprintf("Your Highlight %s List", titleCase(noun)), entries, true))
}

func (b *Bot) handleRemoveTracked(chatID int64, args string, list store.List) {
	if args == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /remove%s [title]", trackedCmdNoun(list)))
		return
	}

	found, err := b.store.Remove(list, args)
	if err != nil {
		b.log.Error().Err(err).Msg("remove tracked title")
		b.reply(chatID, "Sorry, an error occurred while updating your list.")
		return
	}
	display := html.EscapeString(titleCase(strings.ToLower(strings.TrimSpace(args))))
	noun := listNoun(list)
	if !found {
		b.replyHTML(chatID, fmt.Sprintf("'%s' is not in your highlight %s list.", display, noun))
		return
	}
	b.replyHTML(chatID, fmt.Sprintf("Removed '%s' from your highlight %s list.", display, noun))
}

func (b *Bot) handleRandom(ctx context.Context, chatID int64, kind model.MediaKind) {
	b.reply(chatID, fmt.Sprintf("Picking a random %s...", mediaNoun(kind)))

	page := rand.Intn(randomMaxPage) + 1
	results, err := b.resolver.Popular(ctx, kind, page, listingLimit)
	if err != nil {
		b.log.Error().Err(err).Str("kind", string(kind)).Msg("fetch popular")
		b.reply(chatID, fmt.Sprintf("Sorry, an error occurred while picking a random %s.", mediaNoun(kind)))
		return
	}
	if len(results) == 0 {
		b.reply(chatID, fmt.Sprintf("No %s found.", pluralNoun(kind)))
		return
	}
	pick := results[rand.Intn(len(results))]
	b.replyHTMLPreview(chatID, FormatResultLine(pick, "\n"))
}

func (b *Bot) handleTrending(ctx context.Context, chatID int64, kind model.MediaKind) {
	b.reply(chatID, fmt.Sprintf("Fetching trending %s...", pluralNoun(kind)))

	results, err := b.resolver.Trending(ctx, kind, listingLimit)
	if err != nil {
		b.log.Error().Err(err).Str("kind", string(kind)).Msg("fetch trending")
		b.reply(chatID, fmt.Sprintf("Sorry, an error occurred while fetching trending %s.", pluralNoun(kind)))
		return
	}
	if len(results) == 0 {
		b.reply(chatID, fmt.Sprintf("No trending %s found.", pluralNoun(kind)))
		return
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, FormatResultLine(r, " | "))
	}
	header := fmt.Sprintf("<b>Trending %s:</b>\n", titleCase(pluralNoun(kind)))
	b.replyHTMLPreview(chatID, header+strings.Join(lines, "\n"))
}

func (b *Bot) handleNotifyOn(chatID int64) {
	if err := b.notifier.Enable(chatID); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("enable notifications")
		b.reply(chatID, "Sorry, an error occurred while enabling notifications.")
		return
	}
	b.reply(chatID, "🔔 Daily release notifications enabled! You'll get a message when a highlight series or movie is about to be released.")
}

func (b *Bot) handleNotifyOff(chatID int64) {
	b.notifier.Disable(chatID)
	b.reply(chatID, "🔕 Daily release notifications disabled.")
}

func (b *Bot) handleAddFavourites(chatID int64, args string, list store.List) {
	noun := listNoun(list)
	if args == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /addfave%s [name]", faveCmdNoun(list)))
		return
	}

	names := SplitNames(args)
	if len(names) == 0 {
		b.reply(chatID, fmt.Sprintf("Please provide a valid %s name.", singularNoun(list)))
		return
	}

	var added, already []string
	for _, name := range names {
		ok, err := b.store.Add(list, name)
		if err != nil {
			if errors.Is(err, store.ErrEmptyEntry) {
				continue
			}
			b.log.Error().Err(err).Msg("add favourite")
			b.reply(chatID, "Sorry, an error occurred while updating your list.")
			return
		}
		if ok {
			added = append(added, name)
		} else {
			already = append(already, name)
		}
	}

	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("Added to your favourite %s list:\n%s", noun, bulleted(added)))
	}
	if len(already) > 0 {
		parts = append(parts, fmt.Sprintf("Already in your favourite %s list:\n%s", noun, bulleted(already)))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("No valid %s names provided.", singularNoun(list)))
	}
	b.reply(chatID, strings.Join(parts, "\n"))
}

func (b *Bot) handleRemoveFavourite(chatID int64, args string, list store.List) {
	if args == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /removefave%s [name]", faveCmdNoun(list)))
		return
	}

	found, err := b.store.Remove(list, args)
	if err != nil {
		b.log.Error().Err(err).Msg("remove favourite")
		b.reply(chatID, "Sorry, an error occurred while updating your list.")
		return
	}
	noun := listNoun(list)
	if !found {
		b.reply(chatID, fmt.Sprintf("'%s' is not in your favourite %s list.", args, noun))
		return
	}
	b.reply(chatID, fmt.Sprintf("Removed '%s' from your favourite %s list.", args, noun))
}

func (b *Bot) handleListFavourites(chatID int64, list store.List) {
	entries := b.store.Entries(list)
	noun := listNoun(list)
	if len(entries) == 0 {
		b.reply(chatID, fmt.Sprintf("Your favourite %s list is empty.", noun))
		return
	}
	b.replyHTML(chatID, FormatTitleList(
		fmt.Sprintf("Your Favourite %s List", titleCase(noun)), entries, false))
}

func (b *Bot) handleAddEvent(ctx context.Context, chatID int64, args string) {
	title, date, err := ParseEventArgs(args)
	if err != nil {
		b.reply(chatID, "Usage: /addevent [title] - [YYYY-MM-DD]")
		return
	}

	if err := b.events.Append(title, date); err != nil {
		b.log.Error().Err(err).Msg("append event")
		b.reply(chatID, "Sorry, an error occurred while saving the event.")
		return
	}

	if b.cal == nil {
		b.reply(chatID, fmt.Sprintf("Logged '%s' on %s.", title, date))
		return
	}

	ev, err := b.cal.CreateEvent(ctx, title, date)
	if err != nil {
		b.log.Error().Err(err).Msg("create calendar event")
		b.reply(chatID, fmt.Sprintf("Logged '%s' on %s, but the calendar update failed.", title, date))
		return
	}
	b.replyHTML(chatID, fmt.Sprintf("Logged '%s' on %s.\n<a href=\"%s\">Open in calendar</a>",
		html.EscapeString(title), date, ev.Link))
}

func (b *Bot) handleListEvents(_ context.Context, chatID int64) {
	events, err := b.events.Entries()
	if err != nil {
		b.log.Error().Err(err).Msg("read event log")
		b.reply(chatID, "Sorry, an error occurred while reading your events.")
		return
	}
	if len(events) == 0 {
		b.reply(chatID, "You have no logged events. Use /addevent [title] - [YYYY-MM-DD] to add one.")
		return
	}
	b.replyHTML(chatID, FormatEvents(events))
}

func (b *Bot) handleRemoveEvent(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.reply(chatID, "Usage: /removeevent [text]")
		return
	}
	if b.cal == nil {
		b.reply(chatID, "The external calendar is not configured.")
		return
	}

	deleted, err := b.cal.DeleteEvents(ctx, args)
	if err != nil {
		b.log.Error().Err(err).Msg("delete calendar events")
		b.reply(chatID, "Sorry, an error occurred while deleting calendar events.")
		return
	}
	if len(deleted) == 0 {
		b.reply(chatID, fmt.Sprintf("No calendar events matching '%s'.", args))
		return
	}

	lines := make([]string, 0, len(deleted))
	for _, ev := range deleted {
		lines = append(lines, fmt.Sprintf("- %s (%s)", ev.Title, ev.Date))
	}
	b.reply(chatID, "Deleted calendar events:\n"+strings.Join(lines, "\n"))
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}
