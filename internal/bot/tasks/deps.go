// Package tasks implements the bot's scheduled background jobs: the daily
// reading push to subscribers and periodic database maintenance.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"astrobot/internal/bot/handlers"
	"astrobot/internal/config"
	"astrobot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	TG       *tgbot.Bot
	Sessions *handlers.Sessions
}
