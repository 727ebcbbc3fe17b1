package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatsHandler returns a handler for the admin /stats command.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Stats handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	users, err := h.deps.Store.CountUsers(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to count users", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	facts, err := h.deps.Store.CountFacts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to count facts", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	subscribers, err := h.deps.Store.ListSubscriberIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list subscribers", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	replyWithMenu(ctx, b, log, chatID, fmt.Sprintf("Bot Statistics\n\nUsers: %d\nFacts: %d\nSubscribers: %d",
		users, facts, len(subscribers)))
}
