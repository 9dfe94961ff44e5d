package models

import "time"

// DeliveryLocation is a pickup point we deliver vehicles to, with a
// flat surcharge added to the rental price. Clients who collect the
// vehicle themselves pay no surcharge.
type DeliveryLocation struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Price     int64     `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}
