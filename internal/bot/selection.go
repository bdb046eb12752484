package bot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"releasebot/internal/model"
	"releasebot/internal/store"
	"releasebot/internal/tmdb"
)

// pendingSelection is one in-flight add-title conversation. Abandoned
// selections stay in the map until the user finishes or restarts one;
// there is no timeout.
type pendingSelection struct {
	list    store.List
	kind    model.MediaKind
	results []tmdb.Result
}

type selections struct {
	mu      sync.Mutex
	pending map[int64]*pendingSelection
}

func newSelections() *selections {
	return &selections{pending: make(map[int64]*pendingSelection)}
}

func (s *selections) start(chatID int64, list store.List, kind model.MediaKind, results []tmdb.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = &pendingSelection{list: list, kind: kind, results: results}
}

func (s *selections) get(chatID int64) *pendingSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[chatID]
}

func (s *selections) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}

// handleSelectionReply processes a plain-text message as the numeric
// answer to a pending selection. Invalid input re-prompts; only a valid
// pick or a fresh /addseries//addmovie ends the conversation.
func (b *Bot) handleSelectionReply(chatID int64, text string) {
	pending := b.selections.get(chatID)
	if pending == nil {
		b.reply(chatID, "No selection in progress. Use /addseries or /addmovie to start.")
		return
	}

	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || choice < 1 || choice > len(pending.results) {
		b.reply(chatID, "Invalid choice. Please reply with a number from the list.")
		return
	}

	picked := pending.results[choice-1]
	entry := fmt.Sprintf("%s (%s)", picked.Name, yearOf(picked.Date))

	if _, err := b.store.Add(pending.list, entry); err != nil {
		b.log.Error().Err(err).Str("entry", entry).Msg("add tracked title")
		b.reply(chatID, "Sorry, an error occurred while updating your list.")
		return
	}
	b.selections.clear(chatID)
	b.reply(chatID, fmt.Sprintf("Added '%s' to your highlight %s list.", entry, listNoun(pending.list)))
}
