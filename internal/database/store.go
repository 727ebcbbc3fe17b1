package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts. Absent
// rows are reported as nil results, not errors; everything else is a
// wrapped error the caller is expected to log and translate into a
// generic user-facing reply.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveUserProfile inserts or fully overwrites a user profile in a
	// single upsert statement keyed on user_id.
	SaveUserProfile(ctx context.Context, profile *UserProfile) error

	// GetUserProfile retrieves a user profile by user ID. Returns nil, nil
	// if not found.
	GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error)

	// CountUsers returns the number of stored user profiles.
	CountUsers(ctx context.Context) (int, error)

	// ListUserIDs returns all registered user IDs, for broadcasting.
	ListUserIDs(ctx context.Context) ([]int64, error)

	// GetRandomFact picks a fact at random. A non-zero day/month filters
	// to facts tied to that day (and month), falling back to generic
	// facts when no tied fact exists. Returns nil, nil only when the
	// facts table is empty.
	GetRandomFact(ctx context.Context, day, month int) (*Fact, error)

	// AddFact inserts a new fact. Day and month may be unset.
	AddFact(ctx context.Context, fact *Fact) error

	// CountFacts returns the number of stored facts.
	CountFacts(ctx context.Context) (int, error)

	// SeedFacts inserts the built-in fact list if the facts table is
	// empty. Idempotent: re-running on a non-empty table is a no-op.
	SeedFacts(ctx context.Context) error

	// Subscribe marks a user as receiving the daily horoscope push.
	Subscribe(ctx context.Context, userID int64) error

	// Unsubscribe removes a user's daily push subscription.
	Unsubscribe(ctx context.Context, userID int64) error

	// IsSubscribed reports whether a user receives the daily push.
	IsSubscribed(ctx context.Context, userID int64) (bool, error)

	// ListSubscriberIDs returns the IDs of all subscribed users.
	ListSubscriberIDs(ctx context.Context) ([]int64, error)

	// DeleteOrphanedSubscriptions removes subscriptions whose user no
	// longer has a profile. Returns the number of rows removed.
	DeleteOrphanedSubscriptions(ctx context.Context) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveUserProfile inserts or fully overwrites a user profile. All derived
// fields are always supplied in full, so a single upsert statement is
// sufficient and concurrent writers degrade to last-writer-wins without a
// read-modify-write gap.
func (s *sqlxStore) SaveUserProfile(ctx context.Context, profile *UserProfile) error {
	if profile == nil {
		return fmt.Errorf("cannot save nil user profile")
	}
	if profile.UserID == 0 {
		return fmt.Errorf("user profile must have a non-zero user_id")
	}
	if profile.DOB == "" {
		return fmt.Errorf("user profile must have a birth date")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	query := `
        INSERT INTO users (user_id, dob, zodiac_sign, life_path_number, created_at, updated_at)
        VALUES (:user_id, :dob, :zodiac_sign, :life_path_number, :created_at, :updated_at)
        ON CONFLICT(user_id) DO UPDATE SET
            dob = excluded.dob,
            zodiac_sign = excluded.zodiac_sign,
            life_path_number = excluded.life_path_number,
            updated_at = excluded.updated_at;
    `

	result, err := s.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving user profile", "user_id", profile.UserID, "error", err)
		return fmt.Errorf("failed to save user profile for user ID %d: %w", profile.UserID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when saving profile",
			"user_id", profile.UserID, "affected", affected)
	}

	s.logger.DebugContext(ctx, "User profile saved successfully",
		"user_id", profile.UserID, "zodiac", profile.ZodiacSign, "life_path", profile.LifePathNumber)
	return nil
}

// GetUserProfile retrieves a user profile by user ID. Returns nil, nil if
// not found, which callers use to gate the "set your birth date first"
// prompt.
func (s *sqlxStore) GetUserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var profile UserProfile
	query := `SELECT user_id, dob, zodiac_sign, life_path_number, created_at, updated_at
	          FROM users WHERE user_id = ?`

	err := s.db.GetContext(ctx, &profile, query, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No user profile found", "user_id", userID)
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching user profile",
			"user_id", userID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting user profile by ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user profile for user ID %d: %w", userID, err)
	}

	return &profile, nil
}

// CountUsers returns the number of stored user profiles.
func (s *sqlxStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting users", "error", err)
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// ListUserIDs returns all registered user IDs, for broadcasting.
func (s *sqlxStore) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM users ORDER BY user_id`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing user IDs", "error", err)
		return nil, fmt.Errorf("failed to list user IDs: %w", err)
	}
	return ids, nil
}

// GetRandomFact picks a fact uniformly at random among the best-matching
// tier: facts tied to the exact (day, month), then facts tied to the day
// alone, then generic facts, then anything. An impossible (day, month)
// pairing simply falls through the tiers rather than erroring.
func (s *sqlxStore) GetRandomFact(ctx context.Context, day, month int) (*Fact, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	type tier struct {
		query string
		args  []any
	}
	var tiers []tier

	switch {
	case day != 0 && month != 0:
		tiers = append(tiers, tier{
			query: `SELECT id, day, month, type, fact_text, created_at FROM facts
			        WHERE day = ? AND month = ? ORDER BY RANDOM() LIMIT 1`,
			args: []any{day, month},
		})
		fallthrough
	case day != 0:
		tiers = append(tiers, tier{
			query: `SELECT id, day, month, type, fact_text, created_at FROM facts
			        WHERE day = ? AND month IS NULL ORDER BY RANDOM() LIMIT 1`,
			args: []any{day},
		})
		tiers = append(tiers, tier{
			query: `SELECT id, day, month, type, fact_text, created_at FROM facts
			        WHERE day IS NULL AND month IS NULL ORDER BY RANDOM() LIMIT 1`,
		})
	}
	tiers = append(tiers, tier{
		query: `SELECT id, day, month, type, fact_text, created_at FROM facts
		        ORDER BY RANDOM() LIMIT 1`,
	})

	for _, tr := range tiers {
		var fact Fact
		err := s.db.GetContext(ctx, &fact, tr.query, tr.args...)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "Error getting random fact", "day", day, "month", month, "error", err)
			return nil, fmt.Errorf("failed to get random fact: %w", err)
		}
		return &fact, nil
	}

	s.logger.WarnContext(ctx, "Facts table is empty", "day", day, "month", month)
	return nil, nil
}

// AddFact inserts a new fact. Day and month may be unset.
func (s *sqlxStore) AddFact(ctx context.Context, fact *Fact) error {
	if fact == nil {
		return fmt.Errorf("cannot add nil fact")
	}
	if fact.FactText == "" {
		return fmt.Errorf("fact must have non-empty text")
	}
	if fact.Type == "" {
		fact.Type = "general"
	}
	fact.CreatedAt = time.Now().UTC()

	query := `INSERT INTO facts (day, month, type, fact_text, created_at)
	          VALUES (:day, :month, :type, :fact_text, :created_at)`

	result, err := s.db.NamedExecContext(ctx, query, fact)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error adding fact", "type", fact.Type, "error", err)
		return fmt.Errorf("failed to add fact: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		fact.ID = id
	}

	s.logger.DebugContext(ctx, "Fact added successfully", "fact_id", fact.ID, "type", fact.Type)
	return nil
}

// CountFacts returns the number of stored facts.
func (s *sqlxStore) CountFacts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM facts`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting facts", "error", err)
		return 0, fmt.Errorf("failed to count facts: %w", err)
	}
	return count, nil
}

// SeedFacts inserts the built-in fact list if the facts table is empty.
// The emptiness check is a count, so re-running on a seeded (or manually
// populated) table is always a safe no-op.
func (s *sqlxStore) SeedFacts(ctx context.Context) error {
	count, err := s.CountFacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to check facts before seeding: %w", err)
	}
	if count > 0 {
		s.logger.DebugContext(ctx, "Facts table already populated, skipping seed", "count", count)
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for fact seeding", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	now := time.Now().UTC()
	query := `INSERT INTO facts (day, month, type, fact_text, created_at)
	          VALUES (:day, :month, :type, :fact_text, :created_at)`
	for _, seed := range seedFacts {
		fact := seed
		fact.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, fact); err != nil {
			s.logger.ErrorContext(ctx, "Error seeding fact", "type", fact.Type, "error", err)
			return fmt.Errorf("failed to seed facts: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit fact seeding transaction", "error", err)
		return fmt.Errorf("failed to commit fact seeding: %w", err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Seeded facts table", "count", len(seedFacts))
	return nil
}

// Subscribe marks a user as receiving the daily horoscope push.
func (s *sqlxStore) Subscribe(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	query := `INSERT INTO subscriptions (user_id, subscribed_at) VALUES (?, ?)
	          ON CONFLICT(user_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, time.Now().UTC()); err != nil {
		s.logger.ErrorContext(ctx, "Error subscribing user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to subscribe user %d: %w", userID, err)
	}

	s.logger.DebugContext(ctx, "User subscribed", "user_id", userID)
	return nil
}

// Unsubscribe removes a user's daily push subscription.
func (s *sqlxStore) Unsubscribe(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE user_id = ?`, userID); err != nil {
		s.logger.ErrorContext(ctx, "Error unsubscribing user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to unsubscribe user %d: %w", userID, err)
	}

	s.logger.DebugContext(ctx, "User unsubscribed", "user_id", userID)
	return nil
}

// IsSubscribed reports whether a user receives the daily push.
func (s *sqlxStore) IsSubscribed(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT 1 FROM subscriptions WHERE user_id = ? LIMIT 1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error checking subscription", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check subscription for user %d: %w", userID, err)
	}
	return exists, nil
}

// ListSubscriberIDs returns the IDs of all subscribed users.
func (s *sqlxStore) ListSubscriberIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.SelectContext(ctx, &ids, `SELECT user_id FROM subscriptions ORDER BY user_id`); err != nil {
		s.logger.ErrorContext(ctx, "Error listing subscriber IDs", "error", err)
		return nil, fmt.Errorf("failed to list subscriber IDs: %w", err)
	}
	return ids, nil
}

// DeleteOrphanedSubscriptions removes subscriptions whose user no longer
// has a profile.
func (s *sqlxStore) DeleteOrphanedSubscriptions(ctx context.Context) (int64, error) {
	query := `DELETE FROM subscriptions WHERE user_id NOT IN (SELECT user_id FROM users)`
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting orphaned subscriptions", "error", err)
		return 0, fmt.Errorf("failed to delete orphaned subscriptions: %w", err)
	}

	count, _ := result.RowsAffected()
	if count > 0 {
		s.logger.InfoContext(ctx, "Deleted orphaned subscriptions", "count", count)
	}
	return count, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
// VACUUM must run outside a transaction in SQLite.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
