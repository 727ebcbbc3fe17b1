// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Recover creates a middleware that converts a handler panic into a logged
// error and a generic apology reply. One bad update must never take down
// the dispatch loop.
func Recover(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				log := deps.Logger.With("middleware", "Recover")
				log.ErrorContext(ctx, "Handler panicked", "panic", r, "update_id", update.ID)

				if update.Message == nil {
					return
				}
				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: update.Message.Chat.ID,
					Text:   deps.Config.Messages.GeneralError,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send recovery message", "error", err)
				}
			}()

			next(ctx, bot, update)
		}
	}
}

// AdminOnly creates a middleware that checks if the message sender is one
// of the configured admin users. If not, it sends a "Not Authorized"
// message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				next(ctx, bot, update)
				return
			}

			if !deps.Config.Telegram.IsAdmin(update.Message.From.ID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", update.Message.From.ID, "chat_id", chatID)

				_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
					ChatID: chatID,
					Text:   deps.Config.Messages.NotAuthorized,
				})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}
