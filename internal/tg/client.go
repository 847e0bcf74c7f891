// Package tg is a thin Telegram Bot API client covering the calls the
// bot needs: sending text and documents, copying messages out of storage
// chats, editing menus and deleting messages.
package tg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", token),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

func NewInlineKeyboardMarkup(rows [][]InlineKeyboardButton) InlineKeyboardMarkup {
	return InlineKeyboardMarkup{InlineKeyboard: rows}
}

type SendMessageRequest struct {
	ChatID                int64                 `json:"chat_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	ReplyToMessageID      int                   `json:"reply_to_message_id,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (int, error) {
	return c.postForMessageID(ctx, "/sendMessage", req)
}

type SendDocumentRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Document    string                `json:"document"`
	Caption     string                `json:"caption,omitempty"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// SendDocument sends a stored file handle. Document must be a file_id
// already known to the bot's token.
func (c *Client) SendDocument(ctx context.Context, req SendDocumentRequest) (int, error) {
	return c.postForMessageID(ctx, "/sendDocument", req)
}

type CopyMessageRequest struct {
	ChatID     int64  `json:"chat_id"`
	FromChatID any    `json:"from_chat_id"` // int64 chat id or "@channelname"
	MessageID  int    `json:"message_id"`
	Caption    string `json:"caption,omitempty"`
	ParseMode  string `json:"parse_mode,omitempty"`
}

func (c *Client) CopyMessage(ctx context.Context, req CopyMessageRequest) (int, error) {
	return c.postForMessageID(ctx, "/copyMessage", req)
}

type EditMessageTextRequest struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int                   `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

func (c *Client) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	return c.post(ctx, "/editMessageText", req)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return c.post(ctx, "/deleteMessage", map[string]any{"chat_id": chatID, "message_id": messageID})
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	payload := map[string]any{"callback_query_id": callbackQueryID}
	if text != "" {
		payload["text"] = text
	}
	return c.post(ctx, "/answerCallbackQuery", payload)
}

func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.post(ctx, "/deleteWebhook", map[string]any{"drop_pending_updates": true})
}

func (c *Client) post(ctx context.Context, method string, payload any) error {
	_, err := c.postWithResult(ctx, method, payload)
	return err
}

func (c *Client) postForMessageID(ctx context.Context, method string, payload any) (int, error) {
	resp, err := c.postWithResult(ctx, method, payload)
	if err != nil {
		return 0, err
	}
	var result struct {
		MessageID int `json:"message_id"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return 0, err
	}
	return result.MessageID, nil
}

func (c *Client) postWithResult(ctx context.Context, method string, payload any) ([]byte, error) {
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("telegram api %s status %d: %s", method, resp.StatusCode, string(body))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Ok     bool            `json:"ok"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Ok {
		return wrapper.Result, nil
	}
	return body, nil
}
