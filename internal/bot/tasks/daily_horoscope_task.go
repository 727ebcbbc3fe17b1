package tasks

import (
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"

	"astrobot/internal/bot/handlers"
)

// newDailyHoroscopeTask creates the scheduled task that pushes each
// subscriber their personal daily reading. Subscribers without a profile
// are skipped; individual send failures are logged and do not abort the
// rest of the run.
func newDailyHoroscopeTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_horoscope")

	return func(ctx context.Context) error {
		start := time.Now()

		subscriberIDs, err := deps.Store.ListSubscriberIDs(ctx)
		if err != nil {
			return fmt.Errorf("listing subscribers: %w", err)
		}
		if len(subscriberIDs) == 0 {
			log.InfoContext(ctx, "No subscribers for daily reading push")
			return nil
		}

		now := time.Now()
		sent := 0
		for _, userID := range subscriberIDs {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			profile, err := deps.Store.GetUserProfile(ctx, userID)
			if err != nil {
				log.ErrorContext(ctx, "Failed to load subscriber profile", "error", err, "user_id", userID)
				continue
			}
			if profile == nil {
				log.WarnContext(ctx, "Subscriber has no profile, skipping", "user_id", userID)
				continue
			}

			reading := "🌅 Good morning!\n\n" + handlers.BuildTodayReading(ctx, log, deps.Store, profile, now)
			_, err = deps.TG.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: userID, Text: reading})
			if err != nil {
				log.WarnContext(ctx, "Failed to push daily reading", "error", err, "user_id", userID)
				continue
			}
			sent++

			time.Sleep(deps.Config.Bot.BroadcastSendDelay)
		}

		log.InfoContext(ctx, "Daily reading push completed", "sent", sent, "subscribers", len(subscriberIDs), "duration", time.Since(start))
		return nil
	}
}
