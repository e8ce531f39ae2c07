package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/dhkang/bondmath/utils"
)

// BondPrice reconciles the two price quotes at a settlement date.
// DirtyPrice = CleanPrice + AccruedInterest holds by construction.
type BondPrice struct {
	DirtyPrice      float64 `json:"dirtyPrice"`
	CleanPrice      float64 `json:"cleanPrice"`
	AccruedInterest float64 `json:"accruedInterest"`
	// PricePercent is the clean price as a percentage of face value.
	PricePercent float64 `json:"pricePercentage"`
}

// Price discounts the remaining schedule at a flat annual yield
// (percent, ACT/365 time). Flows with non-positive time-to-payment are
// skipped so a same-day coupon is not double counted against accrual.
func Price(b Bond, settlement time.Time, ytmPct float64) (BondPrice, error) {
	flows, err := RemainingCashFlows(b, settlement)
	if err != nil {
		return BondPrice{}, err
	}

	y := ytmPct / 100.0
	dirty := 0.0
	for _, cf := range flows {
		t := utils.Days(settlement, cf.Date) / 365.0
		if t <= 0 {
			continue
		}
		dirty += cf.Amount / pow1p(y, t)
	}

	accrued, err := ComputeAccruedInterest(b, settlement)
	if err != nil {
		return BondPrice{}, err
	}

	clean := CleanPrice(dirty, accrued.Amount)
	return BondPrice{
		DirtyPrice:      dirty,
		CleanPrice:      clean,
		AccruedInterest: accrued.Amount,
		PricePercent:    clean / b.FaceValue * 100.0,
	}, nil
}

// PriceDerivative is the closed-form ∂P/∂y at a flat yield, with y in
// decimal terms: −Σ t·CF/(1+y)^(t+1). Always negative for positive flows.
func PriceDerivative(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	flows, err := RemainingCashFlows(b, settlement)
	if err != nil {
		return 0, err
	}

	y := ytmPct / 100.0
	deriv := 0.0
	for _, cf := range flows {
		t := utils.Days(settlement, cf.Date) / 365.0
		if t <= 0 {
			continue
		}
		deriv -= t * cf.Amount / pow1p(y, t+1)
	}
	return deriv, nil
}

// PriceSecondDerivative is the closed-form ∂²P/∂y² (y decimal):
// Σ t(t+1)·CF/(1+y)^(t+2). Convexity recomputes this by finite
// difference instead; the closed form is kept for callers who want the
// exact curvature of the flat-yield model.
func PriceSecondDerivative(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	flows, err := RemainingCashFlows(b, settlement)
	if err != nil {
		return 0, err
	}

	y := ytmPct / 100.0
	second := 0.0
	for _, cf := range flows {
		t := utils.Days(settlement, cf.Date) / 365.0
		if t <= 0 {
			continue
		}
		second += t * (t + 1) * cf.Amount / pow1p(y, t+2)
	}
	return second, nil
}

// ZeroCouponYTM inverts the single-flow price closed form:
// y = (FV/P)^(1/t) − 1, in percent.
func ZeroCouponYTM(b Bond, settlement time.Time, price float64) (float64, error) {
	if !b.IsZeroCoupon() {
		return 0, fmt.Errorf("bond: ZeroCouponYTM on a coupon-paying bond: %w", ErrWrongInstrumentType)
	}

	t := YearsToMaturity(settlement, b.MaturityDate)
	if t <= 0 || price <= 0 {
		return 0, fmt.Errorf("bond: years to maturity (%g) and price (%g) must be positive: %w", t, price, ErrInvalidInput)
	}

	return (math.Pow(b.FaceValue/price, 1.0/t) - 1.0) * 100.0, nil
}

// EstimateYTM is the cheap non-iterative yield estimate used to seed the
// solver: exact for zero-coupon instruments, the classic approximation
// (C + (FV−P)/t) / ((FV+P)/2) otherwise. An expired instrument is an
// error rather than a silent zero.
func EstimateYTM(b Bond, settlement time.Time, price float64) (float64, error) {
	t := YearsToMaturity(settlement, b.MaturityDate)
	if t <= 0 {
		return 0, fmt.Errorf("bond: instrument matured %g years before settlement: %w", -t, ErrInvalidInput)
	}

	if b.IsZeroCoupon() {
		return ZeroCouponYTM(b, settlement, price)
	}

	numerator := b.AnnualCoupon() + (b.FaceValue-price)/t
	denominator := (b.FaceValue + price) / 2.0
	return numerator / denominator * 100.0, nil
}

func pow1p(y, t float64) float64 {
	return math.Pow(1.0+y, t)
}
