package tg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Poller is a long-polling update source. Each update is dispatched on
// its own goroutine so slow deliveries don't stall the poll loop.
type Poller struct {
	baseURL string
	hc      *http.Client
	logger  *slog.Logger
	handle  func(context.Context, Update)
}

func NewPoller(token string, logger *slog.Logger, handle func(context.Context, Update)) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", token),
		hc:      &http.Client{Timeout: 45 * time.Second},
		logger:  logger,
		handle:  handle,
	}
}

// Run polls getUpdates until the context is canceled. Transient errors
// back off for two seconds and the loop continues.
func (p *Poller) Run(ctx context.Context) error {
	allowed, _ := json.Marshal([]string{"message", "callback_query"})

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		u := fmt.Sprintf("%s/getUpdates?timeout=30&allowed_updates=%s&offset=%d",
			p.baseURL, url.QueryEscape(string(allowed)), offset)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		resp, err := p.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("polling error", "err", err)
			sleep(ctx, 2*time.Second)
			continue
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		_ = resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			p.logger.Warn("polling status", "status", resp.StatusCode, "body", string(body))
			sleep(ctx, 2*time.Second)
			continue
		}

		var out struct {
			OK     bool     `json:"ok"`
			Result []Update `json:"result"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			p.logger.Warn("polling decode error", "err", err)
			sleep(ctx, 2*time.Second)
			continue
		}

		for _, upd := range out.Result {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			go p.handle(ctx, upd)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
