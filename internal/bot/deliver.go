package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/tg"
)

const (
	msgPreparing   = "Preparing your file…"
	msgUnavailable = "File not available."
	msgSendFailed  = "Could not send file. Try again later."
)

// Deliver sends a row's artifact to a chat: placeholder first, then the
// artifact by whichever strategy its classification picks, then the
// auto-delete timer. Failures surface as a generic text reply.
func (b *Bot) Deliver(ctx context.Context, chatID int64, row catalog.Row) {
	placeholderID, err := b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: chatID, Text: msgPreparing})
	if err != nil {
		b.logger.Warn("send placeholder", "chat", chatID, "err", err)
	}

	msgID, err := b.send(ctx, chatID, row)

	if placeholderID != 0 {
		_ = b.tr.DeleteMessage(ctx, chatID, placeholderID)
	}

	if err != nil {
		b.logger.Error("deliver", "chat", chatID, "row", row.ID, "err", err)
		_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: chatID, Text: msgSendFailed})
		return
	}
	if msgID != 0 {
		b.scheduleAutoDelete(chatID, msgID)
	}
}

// send issues the transport call matching the artifact kind and returns
// the delivered message id.
func (b *Bot) send(ctx context.Context, chatID int64, row catalog.Row) (int, error) {
	caption := b.caption(row.Title)

	switch a := ClassifyArtifact(row.Artifact); a.Kind {
	case ArtifactStoredHandle:
		return b.tr.SendDocument(ctx, tg.SendDocumentRequest{
			ChatID:    chatID,
			Document:  a.Handle,
			Caption:   caption,
			ParseMode: "HTML",
		})

	case ArtifactChatLink:
		msgID, err := b.tr.CopyMessage(ctx, tg.CopyMessageRequest{
			ChatID:     chatID,
			FromChatID: a.FromChat,
			MessageID:  a.MessageID,
			Caption:    caption,
			ParseMode:  "HTML",
		})
		if err == nil {
			return msgID, nil
		}
		// The source message may be gone or the bot may lack access;
		// hand out the link itself instead.
		b.logger.Warn("copy message failed, falling back to link", "row", row.ID, "err", err)
		return b.tr.SendMessage(ctx, tg.SendMessageRequest{
			ChatID:    chatID,
			Text:      a.URL + "\n\n" + caption,
			ParseMode: "HTML",
		})

	case ArtifactExternalURL:
		body := fmt.Sprintf("<b>%s</b>\n\n%s\n\n%s", html.EscapeString(row.Title), a.URL, caption)
		return b.tr.SendMessage(ctx, tg.SendMessageRequest{
			ChatID:    chatID,
			Text:      body,
			ParseMode: "HTML",
		})

	default:
		return b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: chatID, Text: msgUnavailable})
	}
}

// scheduleAutoDelete removes a delivered message after the configured
// delay. Fire-and-forget: the task outlives the request context and
// never blocks the caller.
func (b *Bot) scheduleAutoDelete(chatID int64, messageID int) {
	go func() {
		time.Sleep(b.opts.AutoDelete)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := b.tr.DeleteMessage(ctx, chatID, messageID); err != nil && !isAlreadyGone(err) {
			b.logger.Warn("auto delete", "chat", chatID, "message", messageID, "err", err)
		}
	}()
}

// isAlreadyGone reports whether a delete failed because the message no
// longer exists, which auto-delete treats as success.
func isAlreadyGone(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "message to delete not found") ||
		strings.Contains(msg, "message can't be deleted")
}
