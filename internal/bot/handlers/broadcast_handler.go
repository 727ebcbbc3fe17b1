package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewBroadcastHandler returns a handler for the admin /broadcast command.
// The message text after the command is sent to every registered user,
// capped by MaxBroadcastUsers and paced by BroadcastSendDelay so a large
// user list does not trip Telegram's rate limits.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Broadcast handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	parts := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		replyWithMenu(ctx, b, log, chatID, "Usage: /broadcast <message>")
		return
	}
	message := strings.TrimSpace(parts[1])

	userIDs, err := h.deps.Store.ListUserIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list users for broadcast", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	total := len(userIDs)
	if max := h.deps.Config.Bot.MaxBroadcastUsers; total > max {
		log.WarnContext(ctx, "Broadcast user list truncated", "total", total, "max", max)
		userIDs = userIDs[:max]
	}

	log.InfoContext(ctx, "Starting broadcast", "admin_id", update.Message.From.ID, "recipients", len(userIDs))

	sent := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Broadcast interrupted", "sent", sent)
			break
		}

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: userID, Text: message})
		if err != nil {
			log.WarnContext(ctx, "Failed to send broadcast message", "error", err, "user_id", userID)
		} else {
			sent++
		}

		time.Sleep(h.deps.Config.Bot.BroadcastSendDelay)
	}

	replyWithMenu(ctx, b, log, chatID, fmt.Sprintf("Broadcast sent to %d/%d users.", sent, total))
}
