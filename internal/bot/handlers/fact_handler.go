package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewFactHandler returns a handler for the /randomfact command.
func NewFactHandler(deps HandlerDeps) bot.HandlerFunc {
	return factHandler{deps}.Handle
}

type factHandler struct {
	deps HandlerDeps
}

func (h factHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "fact")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Fact handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	now := time.Now()

	fact, err := h.deps.Store.GetRandomFact(ctx, now.Day(), int(now.Month()))
	if err != nil {
		log.ErrorContext(ctx, "Failed to load random fact", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if fact == nil {
		replyWithMenu(ctx, b, log, chatID, "The universe is full of mysteries!")
		return
	}

	replyWithMenu(ctx, b, log, chatID, fmt.Sprintf("Zodiac Secret\n\n%s %s", factEmoji(fact.Type), fact.FactText))
}
