package bond

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccruedInterest is the economically earned but unpaid coupon at a
// settlement date. Nil coupon dates with zero amounts are the canonical
// "no accrual" state: zero-coupon instruments, or a settlement outside
// any coupon bracket.
type AccruedInterest struct {
	// Amount is rounded by market convention for the bond's currency.
	Amount         float64    `json:"accruedInterest"`
	PreviousCoupon *time.Time `json:"previousCouponDate"`
	NextCoupon     *time.Time `json:"nextCouponDate"`
	DaysAccrued    int        `json:"daysAccrued"`
	DaysInPeriod   int        `json:"daysInPeriod"`
	AccrualRatio   float64    `json:"accrualRatio"`
}

// ComputeAccruedInterest accrues the current coupon up to settlement
// using the ICMA actual-day ratio. Only this figure is currency-rounded;
// prices stay unrounded floats.
func ComputeAccruedInterest(b Bond, settlement time.Time) (AccruedInterest, error) {
	if b.IsZeroCoupon() {
		return AccruedInterest{}, nil
	}

	couponDates, err := b.CouponDates()
	if err != nil {
		return AccruedInterest{}, err
	}

	previous, next := AdjacentCoupons(settlement, couponDates)
	if previous == nil || next == nil {
		// Before the first coupon period or at/after the final coupon.
		return AccruedInterest{PreviousCoupon: previous, NextCoupon: next}, nil
	}

	ratio := AccrualRatio(*previous, settlement, *next)
	return AccruedInterest{
		Amount:         RoundByCurrency(b.CouponAmount()*ratio, b.Currency),
		PreviousCoupon: previous,
		NextCoupon:     next,
		DaysAccrued:    ActualDays(*previous, settlement),
		DaysInPeriod:   ActualDays(*previous, *next),
		AccrualRatio:   ratio,
	}, nil
}

// RoundByCurrency rounds to the market tick of the currency: whole won
// for KRW, cents for USD.
func RoundByCurrency(amount float64, currency Currency) float64 {
	places := int32(2)
	if currency == KRW {
		places = 0
	}
	out, _ := decimal.NewFromFloat(amount).Round(places).Float64()
	return out
}

// CleanPrice strips accrued interest from a dirty price.
func CleanPrice(dirtyPrice, accruedInterest float64) float64 {
	return dirtyPrice - accruedInterest
}

// DirtyPrice adds accrued interest back onto a clean price.
func DirtyPrice(cleanPrice, accruedInterest float64) float64 {
	return cleanPrice + accruedInterest
}

// AccruedPercent expresses accrued interest as a percentage of face value.
func AccruedPercent(accruedInterest, faceValue float64) float64 {
	if faceValue == 0 {
		return 0
	}
	return accruedInterest / faceValue * 100.0
}
