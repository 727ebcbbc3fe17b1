package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"astrobot/internal/astro"
	"astrobot/internal/database"
)

// NewNumerologyHandler returns a handler for the /numerology command.
func NewNumerologyHandler(deps HandlerDeps) bot.HandlerFunc {
	return numerologyHandler{deps}.Handle
}

type numerologyHandler struct {
	deps HandlerDeps
}

func (h numerologyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "numerology")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Numerology handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	profile, err := h.deps.Store.GetUserProfile(ctx, update.Message.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load user profile", "error", err, "user_id", update.Message.From.ID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if profile == nil {
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.DOBNotSet)
		return
	}

	text, err := buildNumerologyProfile(profile)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build numerology profile", "error", err, "user_id", profile.UserID)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	replyWithMenu(ctx, b, log, chatID, text)
}

// buildNumerologyProfile renders the life path number with its full
// digit-by-digit calculation and meaning.
func buildNumerologyProfile(profile *database.UserProfile) (string, error) {
	birthDate, err := profile.BirthDate()
	if err != nil {
		return "", fmt.Errorf("parsing stored birth date: %w", err)
	}

	return fmt.Sprintf("Your Numerology Profile\n\nLife Path Number: %d\n\nCalculation:\n%s\n\nMeaning:\n%s",
		profile.LifePathNumber,
		astro.FormatLifePathSteps(birthDate),
		astro.LifePathMeaning(profile.LifePathNumber)), nil
}
