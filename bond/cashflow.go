package bond

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dhkang/bondmath/utils"
)

// CashFlowKind distinguishes coupon payments from principal redemption.
type CashFlowKind string

const (
	FlowCoupon    CashFlowKind = "coupon"
	FlowPrincipal CashFlowKind = "principal"
)

// CashFlow is a single dated payment. Amounts are in currency units.
type CashFlow struct {
	Date   time.Time    `json:"date"`
	Amount float64      `json:"amount"`
	Kind   CashFlowKind `json:"kind"`
}

// GenerateCashFlows lists every payment of the bond in ascending date
// order: periodic flat coupons plus the principal at maturity, or the
// single principal flow for a zero-coupon instrument.
func GenerateCashFlows(b Bond) ([]CashFlow, error) {
	return cashFlows(b, nil)
}

// RemainingCashFlows lists the payments still outstanding at settlement.
// A coupon falling on the settlement date itself is included; the
// principal only when maturity is strictly after settlement. Zero-coupon
// schedules are returned whole regardless of settlement.
func RemainingCashFlows(b Bond, settlement time.Time) ([]CashFlow, error) {
	return cashFlows(b, &settlement)
}

func cashFlows(b Bond, settlement *time.Time) ([]CashFlow, error) {
	if b.IsZeroCoupon() {
		return []CashFlow{{Date: b.MaturityDate, Amount: b.FaceValue, Kind: FlowPrincipal}}, nil
	}

	couponDates, err := b.CouponDates()
	if err != nil {
		return nil, err
	}

	couponAmount := b.CouponAmount()
	flows := make([]CashFlow, 0, len(couponDates)+1)
	for _, d := range couponDates {
		if settlement != nil && d.Before(*settlement) {
			continue
		}
		flows = append(flows, CashFlow{Date: d, Amount: couponAmount, Kind: FlowCoupon})
	}

	if settlement == nil || b.MaturityDate.After(*settlement) {
		flows = append(flows, CashFlow{Date: b.MaturityDate, Amount: b.FaceValue, Kind: FlowPrincipal})
	}

	// Stable keeps coupon before principal on the maturity date.
	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})
	return flows, nil
}

// TotalCashFlow sums payments without discounting.
func TotalCashFlow(flows []CashFlow) float64 {
	total := 0.0
	for _, cf := range flows {
		total += cf.Amount
	}
	return total
}

// CouponFlows keeps only coupon payments.
func CouponFlows(flows []CashFlow) []CashFlow {
	return filterFlows(flows, FlowCoupon)
}

// PrincipalFlows keeps only principal payments.
func PrincipalFlows(flows []CashFlow) []CashFlow {
	return filterFlows(flows, FlowPrincipal)
}

func filterFlows(flows []CashFlow, kind CashFlowKind) []CashFlow {
	out := make([]CashFlow, 0, len(flows))
	for _, cf := range flows {
		if cf.Kind == kind {
			out = append(out, cf)
		}
	}
	return out
}

// PresentValue discounts the remaining schedule at a flat annual yield
// (percent). Every discount exponent is ACT/365 time from settlement;
// callers needing another convention must discount externally.
func PresentValue(b Bond, settlement time.Time, annualYieldPct float64) (float64, error) {
	flows, err := RemainingCashFlows(b, settlement)
	if err != nil {
		return 0, err
	}

	y := annualYieldPct / 100.0
	pv := 0.0
	for _, cf := range flows {
		t := utils.Days(settlement, cf.Date) / 365.0
		pv += cf.Amount / pow1p(y, t)
	}
	return pv, nil
}

// FormatAmount renders an amount by market convention: whole won with
// grouping for KRW, two decimals for USD.
func FormatAmount(amount float64, currency Currency) string {
	if currency == KRW {
		return "₩" + groupThousands(strconv.FormatFloat(utils.RoundTo(amount, 0), 'f', 0, 64))
	}
	s := strconv.FormatFloat(utils.RoundTo(amount, 2), 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	return fmt.Sprintf("$%s.%s", groupThousands(parts[0]), parts[1])
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
