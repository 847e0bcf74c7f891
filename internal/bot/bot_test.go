package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/tg"
)

type memCatalog struct {
	rows []catalog.Row
}

func (m *memCatalog) AllRows(context.Context) ([]catalog.Row, error) { return m.rows, nil }

func (m *memCatalog) Row(_ context.Context, id int64) (*catalog.Row, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return &m.rows[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (m *memCatalog) FuzzyMatch(_ context.Context, q string) (*catalog.Row, int, error) {
	row, score := catalog.BestMatch(q, m.rows)
	if row == nil {
		return nil, 0, catalog.ErrNotFound
	}
	return row, score, nil
}

type deletedMsg struct {
	Chat    int64
	Message int
}

// fakeTransport records every outbound call and hands out incrementing
// message ids. Safe for the auto-delete goroutine to call concurrently.
type fakeTransport struct {
	mu     sync.Mutex
	nextID int

	messages  []tg.SendMessageRequest
	documents []tg.SendDocumentRequest
	copies    []tg.CopyMessageRequest
	edits     []tg.EditMessageTextRequest
	deleted   []deletedMsg
	answered  []string

	failCopy bool
}

func (f *fakeTransport) SendMessage(_ context.Context, req tg.SendMessageRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.messages = append(f.messages, req)
	return f.nextID, nil
}

func (f *fakeTransport) SendDocument(_ context.Context, req tg.SendDocumentRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.documents = append(f.documents, req)
	return f.nextID, nil
}

func (f *fakeTransport) CopyMessage(_ context.Context, req tg.CopyMessageRequest) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCopy {
		return 0, errors.New("Bad Request: message to copy not found")
	}
	f.nextID++
	f.copies = append(f.copies, req)
	return f.nextID, nil
}

func (f *fakeTransport) EditMessageText(_ context.Context, req tg.EditMessageTextRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, req)
	return nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, deletedMsg{Chat: chatID, Message: messageID})
	return nil
}

func (f *fakeTransport) AnswerCallbackQuery(_ context.Context, id, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answered = append(f.answered, id)
	return nil
}

func (f *fakeTransport) sentMessages() []tg.SendMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tg.SendMessageRequest(nil), f.messages...)
}

func (f *fakeTransport) deletedMessages() []deletedMsg {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]deletedMsg(nil), f.deleted...)
}

func newTestBot(rows []catalog.Row, opts Options) (*Bot, *fakeTransport) {
	if opts.Username == "" {
		opts.Username = "urmoviebot"
	}
	if opts.AutoDelete == 0 {
		opts.AutoDelete = time.Minute
	}
	tr := &fakeTransport{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&memCatalog{rows: rows}, nil, tr, opts, logger), tr
}

func lokiRows() []catalog.Row {
	return []catalog.Row{
		{ID: 1, Title: "Loki S01E01 720p", Artifact: "BQAC1"},
		{ID: 2, Title: "Loki S01E02 720p", Artifact: "BQAC2"},
		{ID: 3, Title: "Loki S02E01 1080p", Artifact: "BQAC3"},
		{ID: 4, Title: "Loki S01E01 1080p Hindi", Artifact: "BQAC4"},
		{ID: 5, Title: "Matrix 1080p Hindi", Artifact: "BQAC5"},
	}
}
