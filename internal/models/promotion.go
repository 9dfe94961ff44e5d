package models

import "time"

// Promotion grants a flat discount once a rental reaches a minimum
// number of whole weeks. Tiers are always read ordered by
// DurationWeeks ascending and the first qualifying tier wins.
type Promotion struct {
	ID            string    `db:"id"`
	DurationWeeks int       `db:"duration_weeks"`
	Discount      int64     `db:"discount"`
	CreatedAt     time.Time `db:"created_at"`
}
