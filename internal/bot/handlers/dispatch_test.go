package handlers

import (
	"context"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func textUpdate(chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			Text: text,
			Chat: models.Chat{ID: chatID},
			From: &models.User{ID: chatID},
		},
	}
}

// newRecordingDispatch builds a dispatch handler whose routes record which
// one fired instead of talking to Telegram.
func newRecordingDispatch(deps HandlerDeps, fired *string) dispatchHandler {
	record := func(name string) bot.HandlerFunc {
		return func(context.Context, *bot.Bot, *models.Update) { *fired = name }
	}
	return dispatchHandler{
		deps:   deps,
		cancel: record("cancel"),
		routes: []dispatchRoute{
			{[]string{"set dob", "birth", "birthday"}, record("setdob")},
			{[]string{"today", "reading", "horoscope"}, record("today")},
			{[]string{"numerology", "life path"}, record("numerology")},
			{[]string{"fact", "secret"}, record("fact")},
			{[]string{"compatibility"}, record("compatibility")},
			{[]string{"help", "commands"}, record("help")},
		},
	}
}

func TestDispatchKeywordRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"🎂 Set DOB", "setdob"},
		{"my birthday", "setdob"},
		{"when is your birth date", "setdob"},
		{"🌟 Today's Reading", "today"},
		{"show me my horoscope", "today"},
		{"🔢 Numerology", "numerology"},
		{"what is my life path", "numerology"},
		{"🎲 Zodiac Secret", "fact"},
		{"tell me a fact", "fact"},
		{"💕 Compatibility", "compatibility"},
		{"❓ Help", "help"},
		{"list your commands", "help"},
		// Earlier routes win when keywords overlap.
		{"birthday horoscope facts", "setdob"},
		{"horoscope compatibility", "today"},
		{"cancel", "cancel"},
		{"STOP", "cancel"},
	}

	for _, tt := range tests {
		deps := newTestDeps(t)
		var fired string
		h := newRecordingDispatch(deps, &fired)

		h.Handle(context.Background(), nil, textUpdate(1, tt.text))

		if fired != tt.want {
			t.Errorf("dispatch(%q) fired %q, want %q", tt.text, fired, tt.want)
		}
	}
}

func TestDispatchIgnoresNonMessageUpdates(t *testing.T) {
	t.Parallel()

	deps := newTestDeps(t)
	var fired string
	h := newRecordingDispatch(deps, &fired)

	h.Handle(context.Background(), nil, &models.Update{})
	h.Handle(context.Background(), nil, &models.Update{Message: &models.Message{Chat: models.Chat{ID: 1}}})

	if fired != "" {
		t.Fatalf("dispatch fired %q for non-message update", fired)
	}
}
