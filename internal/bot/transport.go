// Package bot wires the search-and-delivery pipeline: session entry
// points feed the fuzzy matcher, menus navigate families, and the
// dispatcher sends the chosen artifact back through the transport.
package bot

import (
	"context"

	"urmovies-bot/internal/menu"
	"urmovies-bot/internal/tg"
)

// Transport is the chat-platform surface the bot consumes. *tg.Client
// implements it; tests substitute a recorder.
type Transport interface {
	SendMessage(ctx context.Context, req tg.SendMessageRequest) (int, error)
	SendDocument(ctx context.Context, req tg.SendDocumentRequest) (int, error)
	CopyMessage(ctx context.Context, req tg.CopyMessageRequest) (int, error)
	EditMessageText(ctx context.Context, req tg.EditMessageTextRequest) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallbackQuery(ctx context.Context, callbackQueryID, text string) error
}

// renderMarkup converts the abstract menu shape into Telegram inline
// keyboard markup.
func renderMarkup(rows []menu.ButtonRow) *tg.InlineKeyboardMarkup {
	out := make([][]tg.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		line := make([]tg.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			line = append(line, tg.InlineKeyboardButton{Text: b.Text, CallbackData: b.Token})
		}
		out = append(out, line)
	}
	kb := tg.NewInlineKeyboardMarkup(out)
	return &kb
}
