package handlers

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// compatDateRe matches the strict partner-date format a pending
// compatibility check waits for.
var compatDateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// dispatchRoute maps a set of keywords to the handler that serves them.
// Routes are checked in order; the first keyword hit wins.
type dispatchRoute struct {
	keywords []string
	handler  bot.HandlerFunc
}

// NewDispatchHandler returns the default handler for plain text messages.
// It feeds answers into an in-progress birth date conversation, consumes
// pending compatibility dates, and otherwise routes menu-button presses
// and free text by keyword.
func NewDispatchHandler(deps HandlerDeps) bot.HandlerFunc {
	return dispatchHandler{
		deps:   deps,
		cancel: NewCancelHandler(deps),
		routes: []dispatchRoute{
			{[]string{"set dob", "birth", "birthday"}, NewSetDOBHandler(deps)},
			{[]string{"today", "reading", "horoscope"}, NewTodayHandler(deps)},
			{[]string{"numerology", "life path"}, NewNumerologyHandler(deps)},
			{[]string{"fact", "secret"}, NewFactHandler(deps)},
			{[]string{"compatibility"}, NewCompatibilityHandler(deps)},
			{[]string{"help", "commands"}, NewHelpHandler(deps)},
		},
	}.Handle
}

type dispatchHandler struct {
	deps   HandlerDeps
	cancel bot.HandlerFunc
	routes []dispatchRoute
}

func (h dispatchHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "dispatch")

	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	lower := strings.ToLower(text)

	if lower == "cancel" || lower == "stop" {
		h.cancel(ctx, b, update)
		return
	}

	// An in-progress birth date conversation owns the chat's text input.
	switch h.deps.Sessions.State(chatID) {
	case StateAwaitingDay:
		replyBare(ctx, b, log, chatID, dobDayReply(h.deps, chatID, text))
		return
	case StateAwaitingMonth:
		replyBare(ctx, b, log, chatID, dobMonthReply(h.deps, chatID, text))
		return
	case StateAwaitingYear:
		reply := dobYearReply(ctx, h.deps, chatID, update.Message.From.ID, text, time.Now())
		if h.deps.Sessions.State(chatID) == StateNone {
			replyWithMenu(ctx, b, log, chatID, reply)
		} else {
			replyBare(ctx, b, log, chatID, reply)
		}
		return
	}

	if compatDateRe.MatchString(text) {
		if pending, ok := h.deps.Sessions.TakeCompatPending(chatID); ok {
			replyWithMenu(ctx, b, log, chatID, compatReply(pending, text, time.Now()))
			return
		}
	}

	for _, route := range h.routes {
		for _, keyword := range route.keywords {
			if strings.Contains(lower, keyword) {
				route.handler(ctx, b, update)
				return
			}
		}
	}

	replyWithMenu(ctx, b, log, chatID, h.deps.Config.Messages.Unknown)
}
