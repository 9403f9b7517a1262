package main

import (
	"context"
	"leonardo-backend/services/timetable"
	"leonardo-backend/services/watcher"
	"leonardo-backend/services/watcher/db"
	"log/slog"
)

// InitWatcher returns nil if the watcher is disabled.
func InitWatcher(cfg Config, service timetable.Service) (*watcher.Watcher, error) {
	if !cfg.Watcher.Enabled {
		return nil, nil
	}

	database, err := cfg.Watcher.Database.OpenDB(db.Schema)
	if err != nil {
		return nil, err
	}
	store := watcher.NewStore(database)

	var notifiers []watcher.Notifier
	if cfg.Watcher.Email.Enabled() {
		notifiers = append(notifiers, watcher.NewEmailNotifier(cfg.Watcher.Email))
	}
	if cfg.Watcher.Telegram.Enabled() {
		bot, err := watcher.NewTelegramBot(cfg.Watcher.Telegram.Token, "")
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, watcher.NewTelegramNotifier(bot, cfg.Watcher.Telegram, store))
	}
	if len(notifiers) == 0 {
		slog.Warn("watcher has no notifiers configured, changes are only recorded")
	}

	w := watcher.New(service, store, notifiers, watcher.Options{
		Filter:       cfg.Watcher.Class,
		Schedule:     cfg.Watcher.Schedule,
		Username:     cfg.Timetable.Username,
		Password:     cfg.Timetable.Password,
		ReportErrors: cfg.Watcher.ReportErrors,
	})
	return &w, nil
}

func RunWatcher(ctx context.Context, w *watcher.Watcher) {
	err := w.Run(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "watcher stopped", "err", err)
	}
}
