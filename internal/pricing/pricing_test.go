package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wilkadeals/locauto/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_TenDayRentalWithDelivery(t *testing.T) {
	// 10 days at 100,000/day, delivery 15,000, no driver. The only tier
	// requires 2 weeks so no discount applies.
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 11),
		PricePerDay: 100_000,
		Promotions: []models.Promotion{
			{DurationWeeks: 2, Discount: 10_000},
		},
		DeliveryFee: 15_000,
	})
	require.NoError(t, err)

	require.Equal(t, 10, quote.Days)
	require.Equal(t, int64(0), quote.Discount)
	require.Equal(t, int64(1_015_000), quote.TotalPrice)
	require.Equal(t, int64(507_500), quote.DepositAmount)
}

func TestCalculate_TwoWeekRentalWithDriverSelfPickup(t *testing.T) {
	// 14 days, self-pickup, with driver. Both tiers qualify; the first
	// one in ascending order wins, so the discount is 5,000 even though
	// the 2-week tier offers more.
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 15),
		PricePerDay: 100_000,
		Promotions: []models.Promotion{
			{DurationWeeks: 1, Discount: 5_000},
			{DurationWeeks: 2, Discount: 10_000},
		},
		SelfPickup: true,
		WithDriver: true,
	})
	require.NoError(t, err)

	require.Equal(t, 14, quote.Days)
	require.Equal(t, int64(5_000), quote.Discount)
	require.Equal(t, DriverFee, quote.DriverFee)
	require.Equal(t, int64(1_405_000), quote.TotalPrice)
	require.Equal(t, int64(702_500), quote.DepositAmount)
}

func TestCalculate_RejectsEmptyAndInvertedDateRanges(t *testing.T) {
	start := date(2025, time.March, 1)

	_, err := Calculate(QuoteInput{
		StartDate:   start,
		EndDate:     start,
		PricePerDay: 100_000,
	})
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = Calculate(QuoteInput{
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, -1),
		PricePerDay: 100_000,
	})
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCalculate_OneDayBoundary(t *testing.T) {
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 2),
		PricePerDay: 50_000,
		SelfPickup:  true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, quote.Days)
	require.Equal(t, int64(50_000), quote.TotalPrice)
	require.Equal(t, int64(25_000), quote.DepositAmount)
}

func TestCalculate_PartialDaysRoundUp(t *testing.T) {
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 2).Add(6 * time.Hour),
		PricePerDay: 50_000,
		SelfPickup:  true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, quote.Days)
}

func TestCalculate_PromotionWeekBoundary(t *testing.T) {
	// Exactly 7 days qualifies for the 1-week tier but not a 2-week tier.
	oneWeek := QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 8),
		PricePerDay: 100_000,
		SelfPickup:  true,
		Promotions: []models.Promotion{
			{DurationWeeks: 1, Discount: 5_000},
		},
	}

	quote, err := Calculate(oneWeek)
	require.NoError(t, err)
	require.Equal(t, int64(5_000), quote.Discount)

	oneWeek.Promotions = []models.Promotion{
		{DurationWeeks: 2, Discount: 10_000},
	}
	quote, err = Calculate(oneWeek)
	require.NoError(t, err)
	require.Equal(t, int64(0), quote.Discount)
}

func TestCalculate_SixDaysGetsNoDiscount(t *testing.T) {
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 7),
		PricePerDay: 100_000,
		SelfPickup:  true,
		Promotions: []models.Promotion{
			{DurationWeeks: 1, Discount: 5_000},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), quote.Discount)
}

func TestCalculate_SelfPickupIgnoresStaleLocationFee(t *testing.T) {
	// A delivery fee left over from a previous selection must not count
	// once self-pickup is chosen.
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 4),
		PricePerDay: 100_000,
		SelfPickup:  true,
		DeliveryFee: 15_000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), quote.DeliveryFee)
	require.Equal(t, int64(300_000), quote.TotalPrice)
}

func TestCalculate_DepositRoundsUpOnOddTotals(t *testing.T) {
	quote, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 2),
		PricePerDay: 101,
		SelfPickup:  true,
	})
	require.NoError(t, err)
	require.Equal(t, int64(101), quote.TotalPrice)
	require.Equal(t, int64(51), quote.DepositAmount)
}

func TestCalculate_IsIdempotent(t *testing.T) {
	in := QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 15),
		PricePerDay: 100_000,
		Promotions: []models.Promotion{
			{DurationWeeks: 1, Discount: 5_000},
			{DurationWeeks: 2, Discount: 10_000},
		},
		DeliveryFee: 15_000,
		WithDriver:  true,
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCalculate_RejectsNonPositivePrice(t *testing.T) {
	_, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 2),
		PricePerDay: 0,
	})
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCalculate_DiscountExceedingTotalIsAnError(t *testing.T) {
	_, err := Calculate(QuoteInput{
		StartDate:   date(2025, time.March, 1),
		EndDate:     date(2025, time.March, 8),
		PricePerDay: 1,
		SelfPickup:  true,
		Promotions: []models.Promotion{
			{DurationWeeks: 1, Discount: 1_000_000},
		},
	})
	require.ErrorIs(t, err, ErrNegativeTotal)
}
