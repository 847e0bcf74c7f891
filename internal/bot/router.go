package bot

import (
	"context"
	"fmt"

	"urmovies-bot/internal/family"
	"urmovies-bot/internal/menu"
	"urmovies-bot/internal/tg"
	"urmovies-bot/internal/title"
)

const (
	msgNoSeasonFiles  = "No files found for this season."
	msgNoEpisodeFiles = "No files found for this episode."
)

// handleCallback resolves one callback token. All state is rebuilt from
// the token and the catalog; menu transitions edit the message in place.
func (b *Bot) handleCallback(ctx context.Context, cq *tg.CallbackQuery) {
	defer func() { _ = b.tr.AnswerCallbackQuery(ctx, cq.ID, "") }()

	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID

	switch dec := menu.DecodeToken(cq.Data); dec.Action {
	case menu.ActionCancel:
		if err := b.tr.DeleteMessage(ctx, chatID, messageID); err != nil {
			b.logger.Debug("delete menu", "chat", chatID, "err", err)
		}

	case menu.ActionSeason:
		b.routeSeason(ctx, chatID, messageID, dec.Season, dec.AnchorID)

	case menu.ActionEpisode:
		b.routeEpisode(ctx, chatID, messageID, dec.RowID)

	case menu.ActionQuality:
		row, err := b.cat.Row(ctx, dec.RowID)
		if err != nil {
			b.logger.Warn("quality row lookup", "row", dec.RowID, "err", err)
			return
		}
		// Files always go to the invoking user's private chat, even when
		// the menu lives in a group.
		b.Deliver(ctx, cq.From.ID, *row)
		_ = b.tr.DeleteMessage(ctx, chatID, messageID)

	default:
		// Unknown token: no-op.
	}
}

func (b *Bot) routeSeason(ctx context.Context, chatID int64, messageID int, season int, anchorID int64) {
	anchor, err := b.cat.Row(ctx, anchorID)
	if err != nil {
		b.editText(ctx, chatID, messageID, msgNoSeasonFiles)
		return
	}
	fam, err := family.Gather(ctx, b.cat, title.Parse(anchor.Title).Base)
	if err != nil {
		b.logger.Error("gather family", "anchor", anchorID, "err", err)
		b.editText(ctx, chatID, messageID, msgNoSeasonFiles)
		return
	}

	if picks := fam.EpisodePicks(season); len(picks) > 0 {
		b.editMenu(ctx, chatID, messageID,
			fmt.Sprintf("Season %d - select episode:", season), menu.EpisodeMenu(picks))
		return
	}

	// Season-level rows only: jump straight to qualities.
	qualities := fam.UniqueQualities(family.Filter{Season: &season})
	if len(qualities) == 0 {
		b.editText(ctx, chatID, messageID, msgNoSeasonFiles)
		return
	}
	b.editMenu(ctx, chatID, messageID,
		fmt.Sprintf("Season %d - choose quality:", season), menu.QualityMenu(qualities))
}

func (b *Bot) routeEpisode(ctx context.Context, chatID int64, messageID int, rowID int64) {
	row, err := b.cat.Row(ctx, rowID)
	if err != nil {
		b.editText(ctx, chatID, messageID, msgNoEpisodeFiles)
		return
	}
	p := title.Parse(row.Title)
	fam, err := family.Gather(ctx, b.cat, p.Base)
	if err != nil {
		b.logger.Error("gather family", "row", rowID, "err", err)
		b.editText(ctx, chatID, messageID, msgNoEpisodeFiles)
		return
	}

	qualities := fam.UniqueQualities(family.Filter{Season: &p.Season, Episode: &p.Episode})
	if len(qualities) == 0 {
		b.editText(ctx, chatID, messageID, msgNoEpisodeFiles)
		return
	}
	b.editMenu(ctx, chatID, messageID, "Choose quality:", menu.QualityMenu(qualities))
}

func (b *Bot) editMenu(ctx context.Context, chatID int64, messageID int, text string, rows []menu.ButtonRow) {
	err := b.tr.EditMessageText(ctx, tg.EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: renderMarkup(rows),
	})
	if err != nil {
		b.logger.Debug("edit menu", "chat", chatID, "err", err)
	}
}

func (b *Bot) editText(ctx context.Context, chatID int64, messageID int, text string) {
	err := b.tr.EditMessageText(ctx, tg.EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		b.logger.Debug("edit text", "chat", chatID, "err", err)
	}
}
