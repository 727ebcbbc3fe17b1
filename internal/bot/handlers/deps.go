package handlers

import (
	"log/slog"

	"astrobot/internal/config"
	"astrobot/internal/database"
)

// HandlerDeps provides dependencies for Telegram command handlers.
// Handlers receive everything they need explicitly; there is no shared
// global bot state.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Sessions *Sessions
}
