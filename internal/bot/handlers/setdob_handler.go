package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"astrobot/internal/astro"
	"astrobot/internal/database"
)

const dobDayPrompt = "Let's set your birth date!\n\nEnter the DAY (1-31):"

// NewSetDOBHandler returns a handler for the /setdob command. It starts the
// day/month/year conversation; subsequent answers arrive as plain text and
// are routed by the dispatch handler.
func NewSetDOBHandler(deps HandlerDeps) bot.HandlerFunc {
	return setDOBHandler{deps}.Handle
}

type setDOBHandler struct {
	deps HandlerDeps
}

func (h setDOBHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "setdob")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "SetDOB handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Starting birth date conversation", "chat_id", chatID, "user_id", update.Message.From.ID)

	h.deps.Sessions.BeginDOB(chatID)
	replyBare(ctx, b, log, chatID, dobDayPrompt)
}

// dobDayReply processes the day answer and returns the next prompt.
// Invalid input keeps the conversation on the day step.
func dobDayReply(deps HandlerDeps, chatID int64, text string) string {
	text = strings.TrimSpace(text)

	day, err := strconv.Atoi(text)
	if err != nil || len(text) > 2 {
		deps.Sessions.Keep(chatID)
		return "Enter a valid day (1-31):"
	}
	if day < 1 || day > 31 {
		deps.Sessions.Keep(chatID)
		return "Day must be between 1 and 31:"
	}

	deps.Sessions.SetDay(chatID, day)
	return fmt.Sprintf("Day: %d ✓\n\nNow enter the MONTH (1-12 or name):", day)
}

// dobMonthReply processes the month answer and returns the next prompt.
func dobMonthReply(deps HandlerDeps, chatID int64, text string) string {
	month, ok := astro.ParseMonth(text)
	if !ok {
		deps.Sessions.Keep(chatID)
		return "Enter valid month (1-12 or name like 'January'):"
	}

	deps.Sessions.SetMonth(chatID, int(month))
	day, _, _ := deps.Sessions.Pending(chatID)
	return fmt.Sprintf("Day: %d\nMonth: %s ✓\n\nFinally, enter your birth YEAR (e.g., 1990):", day, month)
}

// dobYearReply processes the year answer. On a valid year it validates the
// full date, derives the zodiac sign and life path number, and persists the
// profile in one write. The conversation ends on success, save failure, or
// session expiry; format and validation errors re-prompt.
func dobYearReply(ctx context.Context, deps HandlerDeps, chatID, userID int64, text string, today time.Time) string {
	log := deps.Logger.With("handler", "setdob")

	text = strings.TrimSpace(text)
	year, err := strconv.Atoi(text)
	if err != nil || len(text) != 4 {
		deps.Sessions.Keep(chatID)
		return "Enter valid 4-digit year (e.g., 1990):"
	}

	day, month, ok := deps.Sessions.Pending(chatID)
	if !ok {
		deps.Sessions.ClearDOB(chatID)
		return "Session expired. Please start over with /setdob"
	}

	birthDate, err := astro.ValidateBirthDate(day, month, year, today)
	if err != nil {
		log.InfoContext(ctx, "Rejected birth date", "chat_id", chatID, "day", day, "month", month, "year", year, "reason", err)
		deps.Sessions.Keep(chatID)
		return fmt.Sprintf("Error: %v\nEnter year again:", err)
	}

	sign := astro.SignForDate(birthDate)
	lifePath := astro.LifePath(birthDate)

	profile := &database.UserProfile{
		UserID:         userID,
		DOB:            birthDate.Format(database.DateLayout),
		ZodiacSign:     string(sign),
		LifePathNumber: lifePath,
	}
	if err := deps.Store.SaveUserProfile(ctx, profile); err != nil {
		log.ErrorContext(ctx, "Failed to save user profile", "error", err, "user_id", userID)
		deps.Sessions.ClearDOB(chatID)
		return "❌ Failed to save your birth date.\n\nPlease try again later."
	}

	log.InfoContext(ctx, "Saved birth date", "user_id", userID, "zodiac", sign, "life_path", lifePath)
	deps.Sessions.ClearDOB(chatID)

	return fmt.Sprintf("✅ Birth date saved successfully!\n\n📅 Date: %s\n♈ Zodiac: %s\n🔢 Life Path: %d\n\nYou can now use all features!",
		birthDate.Format("January 2, 2006"), sign, lifePath)
}
