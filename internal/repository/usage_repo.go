package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
)

const (
	// FreeSermonLimit is the number of free generations per calendar month.
	FreeSermonLimit = 10

	freeSermonCounterKey = "sermon_free_monthly"
)

// QuotaExceededError is returned when admission is refused because the
// user already consumed the monthly free quota. It is an expected,
// user-facing outcome, not a system fault.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly sermon limit reached (%d/%d)", e.Used, e.Limit)
}

// UsageRepository enforces the per-user monthly generation quota.
//
// Admission and increment are a single operation on a caller-held
// transaction. There is deliberately no separate "check" method: the
// read-check-write must not be two independently callable steps.
type UsageRepository interface {
	// ConsumeFreeSermon atomically admits one generation for the user in
	// the current calendar month and increments the counter. Concurrent
	// callers serialize on the locked counter row, so the sequence of
	// Used values across successful calls is gapless and never exceeds
	// the limit. Returns *QuotaExceededError with no mutation when the
	// counter is already at the limit.
	ConsumeFreeSermon(ctx context.Context, tx pgx.Tx, userID string) (model.Usage, error)
}

type usageRepo struct{}

func NewUsageRepo() UsageRepository {
	return &usageRepo{}
}

// monthlyPeriodBounds returns the UTC calendar month containing t as
// [first instant of month, first instant of next month).
func monthlyPeriodBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (r *usageRepo) ConsumeFreeSermon(ctx context.Context, tx pgx.Tx, userID string) (model.Usage, error) {
	periodStart, periodEnd := monthlyPeriodBounds(time.Now())

	const lockQ = `
		SELECT id, counter_value
		FROM usage_counters
		WHERE user_id = $1
		  AND counter_key = $2
		  AND period_start = $3
		FOR UPDATE
	`
	selectForUpdate := func() (string, int, bool, error) {
		var id string
		var value int
		err := tx.QueryRow(ctx, lockQ, userID, freeSermonCounterKey, periodStart).Scan(&id, &value)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, false, nil
		}
		if err != nil {
			return "", 0, false, fmt.Errorf("locking usage counter for user %s: %w", userID, err)
		}
		return id, value, true, nil
	}

	counterID, value, found, err := selectForUpdate()
	if err != nil {
		return model.Usage{}, err
	}
	if !found {
		// First generation this period. The uniqueness constraint on
		// (user_id, counter_key, period_start) makes concurrent first
		// callers converge on one row; the fresh locked read below picks
		// up whichever insert won.
		const insertQ = `
			INSERT INTO usage_counters (user_id, counter_key, counter_value, period_start, period_end)
			VALUES ($1, $2, 0, $3, $4)
			ON CONFLICT (user_id, counter_key, period_start) DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertQ, userID, freeSermonCounterKey, periodStart, periodEnd); err != nil {
			return model.Usage{}, fmt.Errorf("initializing usage counter for user %s: %w", userID, err)
		}
		counterID, value, found, err = selectForUpdate()
		if err != nil {
			return model.Usage{}, err
		}
		if !found {
			return model.Usage{}, fmt.Errorf("usage counter for user %s missing after insert", userID)
		}
	}

	if value >= FreeSermonLimit {
		return model.Usage{Used: value, Limit: FreeSermonLimit},
			&QuotaExceededError{Used: value, Limit: FreeSermonLimit}
	}

	const updateQ = `
		UPDATE usage_counters
		SET counter_value = counter_value + 1,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING counter_value
	`
	var updated int
	if err := tx.QueryRow(ctx, updateQ, counterID).Scan(&updated); err != nil {
		return model.Usage{}, fmt.Errorf("incrementing usage counter for user %s: %w", userID, err)
	}
	return model.Usage{Used: updated, Limit: FreeSermonLimit}, nil
}
