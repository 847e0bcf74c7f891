// Package server exposes the HTTP surface: a keep-alive probe for
// hosting platforms that idle out, and the optional webhook route.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"urmovies-bot/internal/tg"
)

// New builds the router. handle may be nil, which disables the webhook
// route (long-polling deployments).
func New(logger *slog.Logger, handle func(context.Context, tg.Update)) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if handle != nil {
		r.Post("/webhook", func(w http.ResponseWriter, req *http.Request) {
			body, err := io.ReadAll(io.LimitReader(req.Body, 2<<20))
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			var upd tg.Update
			if err := json.Unmarshal(body, &upd); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			// Ack immediately; the update is processed off the request
			// goroutine so Telegram doesn't retry slow deliveries.
			go handle(context.WithoutCancel(req.Context()), upd)
			w.WriteHeader(http.StatusOK)
		})
	}

	return r
}
