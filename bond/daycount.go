package bond

import (
	"fmt"
	"time"

	"github.com/dhkang/bondmath/utils"
)

// DayCountConvention names a rule for converting a date span into a
// fraction of a year.
type DayCountConvention string

const (
	// ACT365 divides actual elapsed days by a fixed 365.
	ACT365 DayCountConvention = "ACT/365"
	// ACT360 divides actual elapsed days by 360 (money-market basis).
	ACT360 DayCountConvention = "ACT/360"
	// ACTACT is the ICMA period-relative convention: elapsed days over
	// the actual length of the current coupon period.
	ACTACT DayCountConvention = "ACT/ACT"
	// Thirty360 is the US bond basis with 30-day months.
	Thirty360 DayCountConvention = "30/360"
)

// ActualDays counts calendar days from start to end.
func ActualDays(start, end time.Time) int {
	return int(utils.Days(start, end))
}

// YearFraction converts the span [start, end] into years under the given
// convention. ACT/ACT requires the next coupon date to size the period
// and fails with ErrMissingParameter without it.
func YearFraction(start, end time.Time, convention DayCountConvention, nextCoupon *time.Time) (float64, error) {
	switch convention {
	case ACT365:
		return float64(ActualDays(start, end)) / 365.0, nil

	case ACT360:
		return float64(ActualDays(start, end)) / 360.0, nil

	case ACTACT:
		if nextCoupon == nil {
			return 0, fmt.Errorf("bond: ACT/ACT needs the next coupon date: %w", ErrMissingParameter)
		}
		period := ActualDays(start, *nextCoupon)
		if period == 0 {
			return 0, nil
		}
		return float64(ActualDays(start, end)) / float64(period), nil

	case Thirty360:
		return float64(days30360(start, end)) / 360.0, nil
	}
	return 0, fmt.Errorf("bond: day count convention %q: %w", convention, ErrUnsupportedConvention)
}

// days30360 counts days on the US 30/360 bond basis: a day-of-month of 31
// clamps to 30, on the end date only when the start was clamped too.
func days30360(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}

	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}

// AccrualRatio is the share of the coupon period [previous, next] elapsed
// by settlement, in actual days (ICMA). Zero-length periods yield 0.
func AccrualRatio(previous, settlement, next time.Time) float64 {
	daysInPeriod := ActualDays(previous, next)
	if daysInPeriod == 0 {
		return 0
	}
	return float64(ActualDays(previous, settlement)) / float64(daysInPeriod)
}
