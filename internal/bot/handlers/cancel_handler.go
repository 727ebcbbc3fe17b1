package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCancelHandler returns a handler for the /cancel command. It discards
// any in-progress conversation and pending compatibility check without
// writing anything to the database.
func NewCancelHandler(deps HandlerDeps) bot.HandlerFunc {
	return cancelHandler{deps}.Handle
}

type cancelHandler struct {
	deps HandlerDeps
}

func (h cancelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "cancel")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Cancel handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	h.deps.Sessions.Clear(chatID)
	replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.Cancelled)
}
