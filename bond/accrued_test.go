package bond_test

import (
	"testing"

	"github.com/dhkang/bondmath/bond"
)

func TestComputeAccruedInterest_MidPeriod(t *testing.T) {
	t.Parallel()

	accrued, err := bond.ComputeAccruedInterest(ktb(), date(2024, 10, 10))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}

	if accrued.PreviousCoupon == nil || !accrued.PreviousCoupon.Equal(date(2024, 9, 10)) {
		t.Fatalf("previous coupon = %v, want 2024-09-10", accrued.PreviousCoupon)
	}
	if accrued.NextCoupon == nil || !accrued.NextCoupon.Equal(date(2025, 9, 10)) {
		t.Fatalf("next coupon = %v, want 2025-09-10", accrued.NextCoupon)
	}
	if accrued.DaysAccrued != 30 || accrued.DaysInPeriod != 365 {
		t.Fatalf("days = %d/%d, want 30/365", accrued.DaysAccrued, accrued.DaysInPeriod)
	}
	if !almostEqual(accrued.AccrualRatio, 30.0/365.0, 1e-12) {
		t.Fatalf("ratio = %g", accrued.AccrualRatio)
	}
	// 350 × 30/365 = 28.77, rounded to whole won.
	if accrued.Amount != 29 {
		t.Fatalf("accrued = %g, want 29", accrued.Amount)
	}
}

func TestComputeAccruedInterest_ZeroAtCouponDate(t *testing.T) {
	t.Parallel()

	accrued, err := bond.ComputeAccruedInterest(ktb(), date(2024, 9, 10))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}
	if accrued.Amount != 0 || accrued.AccrualRatio != 0 || accrued.DaysAccrued != 0 {
		t.Fatalf("accrual at coupon date should be zero, got %+v", accrued)
	}
}

func TestComputeAccruedInterest_ApproachesFullCoupon(t *testing.T) {
	t.Parallel()

	accrued, err := bond.ComputeAccruedInterest(ktb(), date(2025, 9, 9))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}
	if accrued.Amount < 348 || accrued.Amount > 350 {
		t.Fatalf("day-before accrual = %g, want near the 350 coupon", accrued.Amount)
	}
}

func TestComputeAccruedInterest_NoAccrualStates(t *testing.T) {
	t.Parallel()

	// Zero-coupon bonds never accrue.
	accrued, err := bond.ComputeAccruedInterest(zeroBond(), date(2024, 10, 10))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}
	if accrued != (bond.AccruedInterest{}) {
		t.Fatalf("zero-coupon accrual = %+v, want zero value", accrued)
	}

	// Before the first coupon bracket there is no previous coupon.
	accrued, err = bond.ComputeAccruedInterest(ktb(), date(2020, 10, 1))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}
	if accrued.Amount != 0 || accrued.PreviousCoupon != nil || accrued.NextCoupon == nil {
		t.Fatalf("pre-first-coupon accrual = %+v", accrued)
	}

	// At maturity there is no next coupon.
	accrued, err = bond.ComputeAccruedInterest(ktb(), date(2029, 9, 10))
	if err != nil {
		t.Fatalf("ComputeAccruedInterest: %v", err)
	}
	if accrued.Amount != 0 || accrued.NextCoupon != nil {
		t.Fatalf("at-maturity accrual = %+v", accrued)
	}
}

func TestRoundByCurrency(t *testing.T) {
	t.Parallel()

	if got := bond.RoundByCurrency(28.767, bond.KRW); got != 29 {
		t.Fatalf("KRW rounding = %g, want 29", got)
	}
	if got := bond.RoundByCurrency(28.4, bond.KRW); got != 28 {
		t.Fatalf("KRW rounding = %g, want 28", got)
	}
	if got := bond.RoundByCurrency(28.767, bond.USD); got != 28.77 {
		t.Fatalf("USD rounding = %g, want 28.77", got)
	}
}

func TestCleanDirtyIdentity(t *testing.T) {
	t.Parallel()

	const dirty, ai = 9829.5, 29.0
	clean := bond.CleanPrice(dirty, ai)
	if bond.DirtyPrice(clean, ai) != dirty {
		t.Fatalf("clean/dirty round trip broken")
	}

	if got := bond.AccruedPercent(29, 10000); !almostEqual(got, 0.29, 1e-12) {
		t.Fatalf("AccruedPercent = %g, want 0.29", got)
	}
	if got := bond.AccruedPercent(29, 0); got != 0 {
		t.Fatalf("AccruedPercent with zero face = %g, want 0", got)
	}
}
