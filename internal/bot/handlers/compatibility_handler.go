package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"astrobot/internal/astro"
)

// NewCompatibilityHandler returns a handler for the /compatibility command.
// It records a pending marker with the caller's own sign and life path;
// the partner's date arrives as a follow-up text message handled by the
// dispatch handler.
func NewCompatibilityHandler(deps HandlerDeps) bot.HandlerFunc {
	return compatibilityHandler{deps}.Handle
}

type compatibilityHandler struct {
	deps HandlerDeps
}

func (h compatibilityHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "compatibility")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Compatibility handler received update with nil message or sender", "update_id", update.ID)
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

	h.deps.Sessions.SetCompatPending(chatID, CompatPending{
		Sign:     astro.Sign(profile.ZodiacSign),
		LifePath: profile.LifePathNumber,
	})

	msg := fmt.Sprintf("Compatibility Check\n\nYour sign: %s\nYour life path: %d\n\nSend partner's birth date (DD-MM-YYYY):",
		profile.ZodiacSign, profile.LifePathNumber)
	replyBare(ctx, b, log, chatID, msg)
}

// compatReply scores a consumed pending marker against the partner's date.
// The marker is already gone by the time this runs: a malformed date does
// not get a second attempt, the user starts a fresh check instead.
func compatReply(pending CompatPending, text string, today time.Time) string {
	date, err := astro.ParseDateInput(text, today)
	if err != nil {
		return fmt.Sprintf("Invalid date: %v\nStart a new check with 💕 Compatibility.", err)
	}

	otherSign := astro.SignForDate(date)
	otherLifePath := astro.LifePath(date)
	result := astro.Compatibility(pending.Sign, pending.LifePath, otherSign, otherLifePath)

	return fmt.Sprintf("Compatibility Analysis\n\nYou: %s (%s) - Path %d\nPartner: %s (%s) - Path %d\n\nZodiac: %d%%\nNumerology: %d%%\n\nOverall: %d%% - %s",
		pending.Sign, astro.ElementOf(pending.Sign), pending.LifePath,
		otherSign, astro.ElementOf(otherSign), otherLifePath,
		result.ZodiacScore, result.NumerologyScore, result.OverallScore, result.Label)
}
