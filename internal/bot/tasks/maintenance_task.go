package tasks

import (
	"context"
	"fmt"
	"time"
)

// newDBMaintenanceTask creates the scheduled task for periodic database and
// session housekeeping: orphaned subscriptions are removed, expired
// conversations are swept, and the database is vacuumed.
func newDBMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "db_maintenance")

	return func(ctx context.Context) error {
		start := time.Now()

		removed, err := deps.Store.DeleteOrphanedSubscriptions(ctx)
		if err != nil {
			return fmt.Errorf("cleaning orphaned subscriptions: %w", err)
		}
		if removed > 0 {
			log.InfoContext(ctx, "Removed orphaned subscriptions", "count", removed)
		}

		if swept := deps.Sessions.Sweep(); swept > 0 {
			log.InfoContext(ctx, "Swept expired conversations", "count", swept)
		}

		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("database maintenance: %w", err)
		}

		log.InfoContext(ctx, "Maintenance task completed", "duration", time.Since(start))
		return nil
	}
}
