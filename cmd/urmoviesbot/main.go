package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"urmovies-bot/internal/bot"
	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/config"
	"urmovies-bot/internal/server"
	"urmovies-bot/internal/tg"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	store, err := catalog.OpenStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	defer func() { _ = store.Close() }()

	client := tg.NewClient(cfg.BotToken)
	b := bot.New(store, store, client, bot.Options{
		Username:    cfg.BotUsername,
		ChannelLink: cfg.ChannelLink,
		GroupLink:   cfg.GroupLink,
		AutoDelete:  time.Duration(cfg.AutoDeleteSec) * time.Second,
		Threshold:   cfg.SimilarityThreshold,
		AdminChatID: cfg.AdminChatID,
	}, logger.With("component", "bot"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	var webhook func(context.Context, tg.Update)
	if cfg.UseWebhook {
		webhook = b.HandleUpdate
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.New(logger.With("component", "http"), webhook),
	}
	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr, "webhook", cfg.UseWebhook)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if !cfg.UseWebhook {
		g.Go(func() error {
			if err := client.DeleteWebhook(ctx); err != nil {
				logger.Warn("delete webhook", "err", err)
			}
			logger.Info("polling started", "bot", cfg.BotUsername)
			return tg.NewPoller(cfg.BotToken, logger.With("component", "poller"), b.HandleUpdate).Run(ctx)
		})
	}

	return g.Wait()
}
