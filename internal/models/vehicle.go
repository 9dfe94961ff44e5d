package models

import (
	"database/sql"
	"time"
)

type Vehicle struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Model       string         `db:"model"`
	PricePerDay int64          `db:"price_per_day"`
	ImageURL    sql.NullString `db:"image_url"`
	Available   bool           `db:"available"`
	IsPopular   bool           `db:"is_popular"`
	CreatedAt   time.Time      `db:"created_at"`
}
