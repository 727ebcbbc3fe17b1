package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainKeyboard returns the fixed reply-menu layout shown with most replies.
func MainKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "🎂 Set DOB"}, {Text: "🌟 Today's Reading"}},
			{{Text: "🔢 Numerology"}, {Text: "💕 Compatibility"}},
			{{Text: "🎲 Zodiac Secret"}, {Text: "❓ Help"}},
		},
		ResizeKeyboard: true,
	}
}

// removeKeyboard hides the reply menu during a conversation so free-text
// answers are not crowded out by the buttons.
func removeKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}

// factEmoji picks the display emoji for a fact category.
func factEmoji(factType string) string {
	switch factType {
	case "psychology":
		return "🧠"
	case "science":
		return "🔬"
	case "numerology":
		return "🔢"
	case "general":
		return "💡"
	default:
		return "🎲"
	}
}

// replyWithMenu sends a text reply with the main menu attached, logging
// failures instead of propagating them: a lost reply must never take down
// the dispatch loop.
func replyWithMenu(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	sendReply(ctx, b, log, chatID, text, MainKeyboard())
}

// replyBare sends a text reply with the reply menu removed.
func replyBare(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	sendReply(ctx, b, log, chatID, text, removeKeyboard())
}

func sendReply(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}
