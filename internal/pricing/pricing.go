// Package pricing computes rental quotes. It is a pure function over
// the reservation inputs: same inputs always produce the same quote,
// nothing is read or written anywhere else.
package pricing

import (
	"errors"
	"time"

	"github.com/wilkadeals/locauto/internal/models"
)

// DriverFee is the flat FCFA surcharge for renting with a driver.
// It is not prorated by duration.
const DriverFee int64 = 10_000

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrInvalidPrice     = errors.New("price per day must be positive")

	// ErrNegativeTotal means a configured promotion discount exceeds the
	// rental base plus fees. That is an invalid tier configuration and we
	// surface it instead of clamping the total to zero.
	ErrNegativeTotal = errors.New("discount exceeds rental total")
)

type QuoteInput struct {
	StartDate   time.Time
	EndDate     time.Time
	PricePerDay int64

	// Promotions must be ordered by DurationWeeks ascending; the first
	// qualifying tier wins.
	Promotions []models.Promotion

	// SelfPickup waives the delivery surcharge. When set, DeliveryFee is
	// ignored entirely so a stale location selection cannot leak into
	// the total.
	SelfPickup  bool
	DeliveryFee int64

	WithDriver bool
}

type Quote struct {
	Days          int   `json:"days"`
	Discount      int64 `json:"discount"`
	DeliveryFee   int64 `json:"delivery_fee"`
	DriverFee     int64 `json:"driver_fee"`
	TotalPrice    int64 `json:"total_price"`
	DepositAmount int64 `json:"deposit_amount"`
}

// Calculate produces the rental quote:
// days (ceiling of the date range), the first qualifying week-tier
// discount, delivery and driver surcharges, the total, and the 50%
// deposit rounded up.
func Calculate(in QuoteInput) (*Quote, error) {
	if in.PricePerDay <= 0 {
		return nil, ErrInvalidPrice
	}

	duration := in.EndDate.Sub(in.StartDate)
	if duration <= 0 {
		return nil, ErrInvalidDateRange
	}

	days := int(duration / (24 * time.Hour))
	if duration%(24*time.Hour) != 0 {
		days++
	}

	// Whole weeks only; a 13-day rental is still one week for tiering.
	weeks := days / 7

	var discount int64
	if weeks >= 1 {
		for _, p := range in.Promotions {
			if weeks >= p.DurationWeeks {
				discount = p.Discount
				break
			}
		}
	}

	var deliveryFee int64
	if !in.SelfPickup {
		deliveryFee = in.DeliveryFee
	}

	var driverFee int64
	if in.WithDriver {
		driverFee = DriverFee
	}

	total := int64(days)*in.PricePerDay + deliveryFee + driverFee - discount
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	return &Quote{
		Days:          days,
		Discount:      discount,
		DeliveryFee:   deliveryFee,
		DriverFee:     driverFee,
		TotalPrice:    total,
		DepositAmount: (total + 1) / 2,
	}, nil
}
