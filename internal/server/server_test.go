package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"urmovies-bot/internal/tg"
)

func TestHealthProbe(t *testing.T) {
	h := New(nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestWebhookDisabledWithoutHandler(t *testing.T) {
	h := New(nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{}")))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	var (
		mu  sync.Mutex
		got []tg.Update
	)
	h := New(nil, func(_ context.Context, upd tg.Update) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, upd)
	})

	body := `{"update_id":7,"message":{"message_id":1,"chat":{"id":10,"type":"private"},"text":"loki"}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1 && got[0].UpdateID == 7 && got[0].Message != nil
	}, time.Second, 5*time.Millisecond)
}

func TestWebhookRejectsBadJSON(t *testing.T) {
	called := false
	h := New(nil, func(context.Context, tg.Update) { called = true })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called)
}
