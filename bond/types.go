package bond

import (
	"fmt"
	"time"
)

// Currency selects market rounding granularity. It never changes the math,
// only how accrued interest is rounded and how amounts are displayed.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

// Type tags the instrument kind. CouponFrequency == 0 forces zero-coupon
// cash-flow behavior regardless of the tag, so the two can disagree on
// hand-built values; NewBond rejects inconsistent combinations and engine
// predicates check both fields.
type Type string

const (
	TypeCoupon Type = "coupon"
	TypeZero   Type = "zero"
)

// Bond is an immutable instrument description. Amounts are in currency
// units; CouponRate is an annual decimal fraction (0.035 for 3.5%).
type Bond struct {
	Name   string
	Issuer string

	Type     Type
	Currency Currency

	FaceValue  float64
	CouponRate float64
	// CouponFrequency is coupon payments per year: 1, 2, 4 or 12.
	// 0 means zero-coupon.
	CouponFrequency int

	IssueDate    time.Time
	MaturityDate time.Time
}

// NewBond validates and returns a normalized bond. An empty Type is
// derived from the frequency; a Type that contradicts the frequency is
// rejected rather than silently trusted.
func NewBond(b Bond) (Bond, error) {
	if b.Type == "" {
		if b.CouponFrequency == 0 {
			b.Type = TypeZero
		} else {
			b.Type = TypeCoupon
		}
	}
	if err := b.Validate(); err != nil {
		return Bond{}, err
	}
	return b, nil
}

// Validate checks the structural invariants of the description.
func (b Bond) Validate() error {
	if b.FaceValue <= 0 {
		return fmt.Errorf("bond: face value must be positive, got %g: %w", b.FaceValue, ErrInvalidInput)
	}
	if !b.MaturityDate.After(b.IssueDate) {
		return fmt.Errorf("bond: maturity %s must be after issue %s: %w",
			b.MaturityDate.Format("2006-01-02"), b.IssueDate.Format("2006-01-02"), ErrInvalidInput)
	}
	if _, err := CouponIntervalMonths(b.CouponFrequency); err != nil {
		return err
	}
	switch b.Type {
	case TypeZero:
		if b.CouponFrequency != 0 {
			return fmt.Errorf("bond: zero-coupon bond with frequency %d: %w", b.CouponFrequency, ErrInvalidInput)
		}
	case TypeCoupon:
		if b.CouponFrequency == 0 {
			return fmt.Errorf("bond: coupon bond with frequency 0: %w", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("bond: unknown bond type %q: %w", b.Type, ErrInvalidInput)
	}
	return nil
}

// IsZeroCoupon reports zero-coupon cash-flow behavior. Both the tag and
// the frequency are consulted because hand-built values can disagree.
func (b Bond) IsZeroCoupon() bool {
	return b.Type == TypeZero || b.CouponFrequency == 0
}

// CouponAmount is the flat per-period coupon payment, zero for
// zero-coupon instruments.
func (b Bond) CouponAmount() float64 {
	if b.IsZeroCoupon() {
		return 0
	}
	return b.FaceValue * b.CouponRate / float64(b.CouponFrequency)
}

// AnnualCoupon is the total coupon paid per year.
func (b Bond) AnnualCoupon() float64 {
	if b.IsZeroCoupon() {
		return 0
	}
	return b.FaceValue * b.CouponRate
}
