package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	command := func(pattern string, handler tgbot.HandlerFunc, middleware ...tgbot.Middleware) {
		handlers["/"+pattern] = RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  middleware,
		}
	}

	command("start", NewStartHandler(deps))
	command("help", NewHelpHandler(deps))
	command("setdob", NewSetDOBHandler(deps))
	command("today", NewTodayHandler(deps))
	command("numerology", NewNumerologyHandler(deps))
	command("compatibility", NewCompatibilityHandler(deps))
	command("randomfact", NewFactHandler(deps))
	command("subscribe", NewSubscribeHandler(deps))
	command("unsubscribe", NewUnsubscribeHandler(deps))
	command("cancel", NewCancelHandler(deps))

	adminMiddleware := AdminOnly(deps)
	command("broadcast", NewBroadcastHandler(deps), adminMiddleware)
	command("addfact", NewAddFactHandler(deps), adminMiddleware)
	command("stats", NewStatsHandler(deps), adminMiddleware)

	return handlers
}
