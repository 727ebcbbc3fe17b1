package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"astrobot/internal/database"
)

const addFactUsage = "Usage: /addfact [day month] <type> <text>\nExample: /addfact 14 2 psychology Your brain loves patterns."

// NewAddFactHandler returns a handler for the admin /addfact command.
func NewAddFactHandler(deps HandlerDeps) bot.HandlerFunc {
	return addFactHandler{deps}.Handle
}

type addFactHandler struct {
	deps HandlerDeps
}

func (h addFactHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "addfact")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "AddFact handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID

	parts := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 2)
	var args string
	if len(parts) == 2 {
		args = parts[1]
	}

	fact, err := parseAddFactArgs(args)
	if err != nil {
		replyWithMenu(ctx, b, log, chatID, fmt.Sprintf("%v\n\n%s", err, addFactUsage))
		return
	}

	if err := h.deps.Store.AddFact(ctx, fact); err != nil {
		log.ErrorContext(ctx, "Failed to add fact", "error", err)
		replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Fact added", "fact_id", fact.ID, "type", fact.Type, "admin_id", update.Message.From.ID)
	replyWithMenu(ctx, b, log, chatID, fmt.Sprintf("Fact #%d added (%s).", fact.ID, fact.Type))
}

// parseAddFactArgs parses the /addfact argument string. When the first two
// tokens are numeric they are taken as the day and month the fact is tied
// to; the next token is the fact type and everything after it is the text.
func parseAddFactArgs(args string) (*database.Fact, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return nil, errors.New("a fact needs a type and text")
	}

	fact := &database.Fact{}

	if len(fields) >= 4 {
		day, dayErr := strconv.Atoi(fields[0])
		month, monthErr := strconv.Atoi(fields[1])
		if dayErr == nil && monthErr == nil {
			if day < 1 || day > 31 {
				return nil, fmt.Errorf("day %d is out of range (1-31)", day)
			}
			if month < 1 || month > 12 {
				return nil, fmt.Errorf("month %d is out of range (1-12)", month)
			}
			fact.Day = sql.NullInt64{Int64: int64(day), Valid: true}
			fact.Month = sql.NullInt64{Int64: int64(month), Valid: true}
			fields = fields[2:]
		}
	}

	fact.Type = strings.ToLower(fields[0])
	fact.FactText = strings.Join(fields[1:], " ")
	if fact.FactText == "" {
		return nil, errors.New("a fact needs a type and text")
	}
	return fact, nil
}
