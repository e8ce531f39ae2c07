package bond

import (
	"fmt"
	"time"

	"github.com/dhkang/bondmath/utils"
)

// CouponIntervalMonths maps coupons-per-year to the number of months
// between payments. Frequency 0 (zero-coupon, no periodic schedule)
// maps to 0.
func CouponIntervalMonths(frequency int) (int, error) {
	switch frequency {
	case 0:
		return 0, nil
	case 1:
		return 12, nil
	case 2:
		return 6, nil
	case 4:
		return 3, nil
	case 12:
		return 1, nil
	}
	return 0, fmt.Errorf("bond: coupon frequency %d: %w", frequency, ErrUnsupportedFrequency)
}

// GenerateCouponDates produces every coupon payment date of a bond,
// stepping back from maturity by the coupon interval until a step would
// land at or before the issue date. EDATE month arithmetic keeps
// month-end dates stable (e.g. a May 31 maturity pays Nov 30).
// The result is in ascending order; frequency 0 yields nil.
func GenerateCouponDates(maturity, issue time.Time, frequency int) ([]time.Time, error) {
	months, err := CouponIntervalMonths(frequency)
	if err != nil {
		return nil, err
	}
	if months == 0 {
		return nil, nil
	}

	var dates []time.Time
	for current := maturity; current.After(issue); current = utils.AddMonth(current, -months) {
		dates = append(dates, current)
	}

	// Generated backwards from maturity; flip to ascending.
	for i, j := 0, len(dates)-1; i < j; i, j = i+1, j-1 {
		dates[i], dates[j] = dates[j], dates[i]
	}
	return dates, nil
}

// CouponDates generates the bond's full coupon schedule.
func (b Bond) CouponDates() ([]time.Time, error) {
	return GenerateCouponDates(b.MaturityDate, b.IssueDate, b.CouponFrequency)
}

// AdjacentCoupons locates the coupon dates bracketing a settlement date
// in an ascending schedule. previous is the latest date on or before
// settlement (a same-day coupon counts as previous), next the earliest
// date strictly after it. Either may be nil when settlement falls before
// the first or after the last coupon.
func AdjacentCoupons(settlement time.Time, couponDates []time.Time) (previous, next *time.Time) {
	for i := range couponDates {
		d := couponDates[i]
		if !d.After(settlement) {
			previous = &couponDates[i]
		} else {
			next = &couponDates[i]
			break
		}
	}
	return previous, next
}

// YearsToMaturity measures settlement→maturity in years on an ACT/365
// basis. The engine uses this flat convention for every discount
// exponent; per-period day counts are display/accrual concerns only.
func YearsToMaturity(settlement, maturity time.Time) float64 {
	return utils.Days(settlement, maturity) / 365.0
}
