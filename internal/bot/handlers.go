package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/family"
	"urmovies-bot/internal/menu"
	"urmovies-bot/internal/tg"
	"urmovies-bot/internal/title"
)

const (
	msgNotFound     = "Not found."
	msgSearchFailed = "Something went wrong. Try again later."
)

// HandleUpdate is the single entry point for both the poller and the
// webhook route. Safe to call concurrently.
func (b *Bot) HandleUpdate(ctx context.Context, upd tg.Update) {
	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tg.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/start") {
		b.handleStart(ctx, msg, text)
		return
	}
	if b.opts.AdminChatID != 0 && msg.Chat.ID == b.opts.AdminChatID && strings.HasPrefix(text, "/") {
		b.handleAdmin(ctx, msg, text)
		return
	}

	switch {
	case msg.Chat.IsPrivate():
		b.handlePrivateSearch(ctx, msg, text)
	case msg.Chat.IsGroup():
		b.handleGroupSearch(ctx, msg, text)
	}
}

// handleStart serves /start, with the movie_<id> deep link bypassing
// search and going straight to delivery.
func (b *Bot) handleStart(ctx context.Context, msg *tg.Message, text string) {
	fields := strings.Fields(text)
	if len(fields) > 1 && strings.HasPrefix(fields[1], "movie_") {
		id, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "movie_"), 10, 64)
		if err != nil || id < 0 {
			return
		}
		row, err := b.cat.Row(ctx, id)
		if err != nil {
			_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: msgNotFound})
			return
		}
		b.Deliver(ctx, msg.Chat.ID, *row)
		return
	}

	welcome := fmt.Sprintf(
		"Hi! I am @%s.\nSend me a movie or series name and I will find it for you.",
		b.opts.Username)
	_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: welcome})
}

// handlePrivateSearch runs the full pipeline for a private chat query.
func (b *Bot) handlePrivateSearch(ctx context.Context, msg *tg.Message, text string) {
	if strings.HasPrefix(text, "/") {
		return
	}
	query := title.Normalize(text)
	if len([]rune(query)) < 3 {
		return
	}

	row, score, err := b.cat.FuzzyMatch(ctx, query)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: msgNotFound})
			return
		}
		b.logger.Error("fuzzy match", "query", query, "err", err)
		_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: msgSearchFailed})
		return
	}
	if score < b.opts.Threshold {
		_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: msgNotFound})
		return
	}

	fam, err := family.Gather(ctx, b.cat, title.Parse(row.Title).Base)
	if err != nil {
		b.logger.Error("gather family", "row", row.ID, "err", err)
		_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: msgSearchFailed})
		return
	}

	_, err = b.tr.SendMessage(ctx, tg.SendMessageRequest{
		ChatID:      msg.Chat.ID,
		Text:        row.Title,
		ReplyMarkup: renderMarkup(menu.Dispatch(fam, *row)),
	})
	if err != nil {
		b.logger.Warn("send menu", "chat", msg.Chat.ID, "err", err)
	}
}

// handleGroupSearch listens passively in groups and offers a one-button
// confirmation prompt instead of a full menu.
func (b *Bot) handleGroupSearch(ctx context.Context, msg *tg.Message, text string) {
	if strings.HasPrefix(text, "/") || len([]rune(text)) < 3 {
		return
	}

	row, _, err := b.cat.FuzzyMatch(ctx, title.Normalize(text))
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			b.logger.Error("group fuzzy match", "err", err)
		}
		return
	}

	// Rows without a direct artifact route through the season flow; the
	// router degrades seas_1 to a quality menu when season 1 is empty.
	token := menu.QualityToken(row.ID)
	if strings.TrimSpace(row.Artifact) == "" {
		token = menu.SeasonToken(1, row.ID)
	}

	markup := renderMarkup([]menu.ButtonRow{{{Text: "🎬 Get it", Token: token}}})
	_, err = b.tr.SendMessage(ctx, tg.SendMessageRequest{
		ChatID:           msg.Chat.ID,
		Text:             fmt.Sprintf("Are you searching for %s?", row.Title),
		ReplyMarkup:      markup,
		ReplyToMessageID: msg.MessageID,
	})
	if err != nil {
		b.logger.Warn("send group prompt", "chat", msg.Chat.ID, "err", err)
	}
}
