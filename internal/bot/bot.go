package bot

import (
	"log/slog"
	"time"

	"urmovies-bot/internal/catalog"
)

// Options carries the per-deployment knobs the handlers need.
type Options struct {
	Username    string
	ChannelLink string
	GroupLink   string
	AutoDelete  time.Duration
	Threshold   int // fuzzy-match score floor for private search
	AdminChatID int64
}

// Bot holds the injected capabilities. It keeps no per-user state; every
// navigation step is reconstructed from the callback token and the
// catalog.
type Bot struct {
	cat    catalog.Catalog
	admin  *catalog.Store // write side for admin commands; nil disables them
	tr     Transport
	opts   Options
	logger *slog.Logger
}

func New(cat catalog.Catalog, admin *catalog.Store, tr Transport, opts Options, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AutoDelete <= 0 {
		opts.AutoDelete = 60 * time.Second
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 60
	}
	return &Bot{cat: cat, admin: admin, tr: tr, opts: opts, logger: logger}
}
