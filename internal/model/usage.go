package model

import "time"

// Usage reports a user's position against the free-tier quota after an
// admission attempt.
type Usage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// UsageCounter mirrors one row of the usage_counters table: a single
// counter per (user, counter key, calendar period).
type UsageCounter struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	CounterKey  string    `db:"counter_key" json:"counter_key"`
	Value       int       `db:"counter_value" json:"counter_value"`
	PeriodStart time.Time `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time `db:"period_end" json:"period_end"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
