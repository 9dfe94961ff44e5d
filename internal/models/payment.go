package models

import "time"

// Payment records a reconciled deposit. One row is written when an
// administrator attaches a receipt to a reservation.
type Payment struct {
	ID            string    `db:"id"`
	ReservationID string    `db:"reservation_id"`
	Amount        int64     `db:"amount"`
	ReceiptURL    string    `db:"receipt_url"`
	CreatedAt     time.Time `db:"created_at"`
}
