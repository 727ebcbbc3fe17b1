package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"astrobot/internal/astro"
	"astrobot/internal/database"
)

// NewTodayHandler returns a handler for the /today command, combining the
// daily horoscope, lucky number, and a random insight.
func NewTodayHandler(deps HandlerDeps) bot.HandlerFunc {
	return todayHandler{deps}.Handle
}

type todayHandler struct {
	deps HandlerDeps
}

func (h todayHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "today")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Today handler received update with nil message or sender", "update_id", update.ID)
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

	replyWithMenu(ctx, b, log, chatID, BuildTodayReading(ctx, log, h.deps.Store, profile, time.Now()))
}

// BuildTodayReading assembles the daily reading text for a stored profile.
// The daily push task reuses it so subscribers see the same reading they
// would get from the command. A missing or failing fact lookup degrades to
// a fixed insight rather than dropping the whole reading.
func BuildTodayReading(ctx context.Context, log *slog.Logger, store database.Store, profile *database.UserProfile, now time.Time) string {
	sign := astro.Sign(profile.ZodiacSign)
	horoscope := astro.Horoscope(sign)
	lucky := astro.LuckyNumber(profile.LifePathNumber, now)

	insight := "Believe in yourself!"
	fact, err := store.GetRandomFact(ctx, now.Day(), int(now.Month()))
	if err != nil {
		log.WarnContext(ctx, "Failed to load random fact", "error", err)
	} else if fact != nil {
		insight = fact.FactText
	}

	return fmt.Sprintf("Today's Reading for %s\n\nHoroscope:\n%s\n\nLucky Number: %d\n\nDaily Insight:\n%s",
		sign, horoscope, lucky, insight)
}
