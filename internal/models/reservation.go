package models

import (
	"database/sql"
	"time"
)

// DepositStatus tracks the 50% upfront payment on a reservation. The
// only transition is pending -> received, made when an administrator
// attaches a payment receipt.
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositReceived DepositStatus = "received"
)

func (s DepositStatus) IsValid() bool {
	switch s {
	case DepositPending, DepositReceived:
		return true
	}
	return false
}

type Reservation struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"`
	VehicleID          string         `db:"vehicle_id"`
	StartDate          time.Time      `db:"start_date"`
	EndDate            time.Time      `db:"end_date"`
	DeliveryLocationID sql.NullString `db:"delivery_location_id"`
	WithDriver         bool           `db:"with_driver"`
	DriverFee          int64          `db:"driver_fee"`
	TotalPrice         int64          `db:"total_price"`
	DepositAmount      int64          `db:"deposit_amount"`
	DepositStatus      DepositStatus  `db:"deposit_status"`
	ReceiptURL         sql.NullString `db:"receipt_url"`
	CreatedAt          time.Time      `db:"created_at"`

	// Populated by joined reads only.
	Vehicle          *Vehicle          `db:"-"`
	User             *User             `db:"-"`
	DeliveryLocation *DeliveryLocation `db:"-"`
}
