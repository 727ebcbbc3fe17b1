package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewSubscribeHandler returns a handler for the /subscribe command. A
// birth date must be set first: the daily push has nothing to send
// without a profile.
func NewSubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return subscribeHandler{deps}.Handle
}

type subscribeHandler struct {
	deps HandlerDeps
}

func (h subscribeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "subscribe")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Subscribe handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	profile, err := h.deps.Store.GetUserProfile(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load user profile", "error", err, "user_id", userID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if profile == nil {
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.DOBNotSet)
		return
	}

	already, err := h.deps.Store.IsSubscribed(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to check subscription", "error", err, "user_id", userID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if already {
		replyWithMenu(ctx, b, log, chatID, "You're already subscribed to daily readings.")
		return
	}

	if err := h.deps.Store.Subscribe(ctx, userID); err != nil {
		log.ErrorContext(ctx, "Failed to subscribe user", "error", err, "user_id", userID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "User subscribed to daily readings", "user_id", userID)
	replyWithMenu(ctx, b, log, chatID, "✨ Subscribed! You'll receive your daily reading each morning.")
}

// NewUnsubscribeHandler returns a handler for the /unsubscribe command.
func NewUnsubscribeHandler(deps HandlerDeps) bot.HandlerFunc {
	return unsubscribeHandler{deps}.Handle
}

type unsubscribeHandler struct {
	deps HandlerDeps
}

func (h unsubscribeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "unsubscribe")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Unsubscribe handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if err := h.deps.Store.Unsubscribe(ctx, userID); err != nil {
		log.ErrorContext(ctx, "Failed to unsubscribe user", "error", err, "user_id", userID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "User unsubscribed from daily readings", "user_id", userID)
	replyWithMenu(ctx, b, log, chatID, "You've been unsubscribed from daily readings.")
}
