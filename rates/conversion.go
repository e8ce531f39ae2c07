// Package rates holds the stateless yield-convention conversions used to
// compare a taxed bond return against other instruments. Every function
// takes and returns annualized percentages; decimal conversion is
// internal.
package rates

import (
	"errors"
	"fmt"
	"math"
)

// DefaultInterestTaxRate is the Korean interest-income tax in percent:
// 14% income tax plus 1.4% local income tax.
const DefaultInterestTaxRate = 15.4

// ErrInvalidTaxRate is returned when a gross-up would divide by zero or
// flip sign (tax rate at or above 100%).
var ErrInvalidTaxRate = errors.New("invalid tax rate")

// AfterTax reduces a pretax rate by a flat tax.
func AfterTax(beforeTaxPct, taxRatePct float64) float64 {
	return beforeTaxPct * (1.0 - taxRatePct/100.0)
}

// BeforeTax grosses an after-tax rate back up to pretax terms.
func BeforeTax(afterTaxPct, taxRatePct float64) (float64, error) {
	t := taxRatePct / 100.0
	if t >= 1.0 {
		return 0, fmt.Errorf("rates: tax rate %.2f%% leaves no after-tax income: %w", taxRatePct, ErrInvalidTaxRate)
	}
	return afterTaxPct / (1.0 - t), nil
}

// BankEquivalentYield re-expresses an after-tax bond yield as the pretax
// deposit rate producing the same after-tax return.
func BankEquivalentYield(afterTaxYieldPct, bankTaxRatePct float64) (float64, error) {
	return BeforeTax(afterTaxYieldPct, bankTaxRatePct)
}

// SimpleFromCompound converts a compound annual rate into the flat simple
// rate earning the same total return over the horizon:
// ((1+y)^t − 1) / t.
func SimpleFromCompound(compoundPct, years float64) float64 {
	y := compoundPct / 100.0
	return (math.Pow(1.0+y, years) - 1.0) / years * 100.0
}

// CompoundFromSimple inverts SimpleFromCompound:
// (1 + r·t)^(1/t) − 1.
func CompoundFromSimple(simplePct, years float64) float64 {
	r := simplePct / 100.0
	return (math.Pow(1.0+r*years, 1.0/years) - 1.0) * 100.0
}

// RealFromNominal applies the Fisher equation:
// 1 + real = (1 + nominal) / (1 + inflation).
func RealFromNominal(nominalPct, inflationPct float64) float64 {
	real := (1.0 + nominalPct/100.0) / (1.0 + inflationPct/100.0)
	return (real - 1.0) * 100.0
}

// PeriodicFromAnnual re-bases an annual compound rate to one period of
// the given frequency: (1+y)^(1/f) − 1.
func PeriodicFromAnnual(annualPct float64, frequency int) float64 {
	y := annualPct / 100.0
	return (math.Pow(1.0+y, 1.0/float64(frequency)) - 1.0) * 100.0
}

// YieldFromDiscount converts a money-market discount rate into a yield on
// a 360-day basis: d / (1 − d·t).
func YieldFromDiscount(discountPct float64, daysToMaturity int) float64 {
	d := discountPct / 100.0
	t := float64(daysToMaturity) / 360.0
	return d / (1.0 - d*t) * 100.0
}

// DiscountFromYield is the inverse conversion: y / (1 + y·t).
func DiscountFromYield(yieldPct float64, daysToMaturity int) float64 {
	y := yieldPct / 100.0
	t := float64(daysToMaturity) / 360.0
	return y / (1.0 + y*t) * 100.0
}

// BondEquivalentYield doubles a semiannual yield (US street convention).
func BondEquivalentYield(semiAnnualPct float64) float64 {
	return semiAnnualPct * 2.0
}

// EffectiveAnnualYield compounds a semiannual yield: (1+r)² − 1.
func EffectiveAnnualYield(semiAnnualPct float64) float64 {
	r := semiAnnualPct / 100.0
	return (math.Pow(1.0+r, 2.0) - 1.0) * 100.0
}

// EffectiveAnnualFromPayout compounds an annual distribution rate paid in
// m installments: (1 + y/m)^m − 1. One or fewer payouts per year leaves
// the rate unchanged.
func EffectiveAnnualFromPayout(annualPct float64, payoutsPerYear int) float64 {
	if payoutsPerYear <= 1 {
		return annualPct
	}
	m := float64(payoutsPerYear)
	perPeriod := annualPct / 100.0 / m
	return (math.Pow(1.0+perPeriod, m) - 1.0) * 100.0
}

// DepositComparison contrasts a fully taxed deposit with a bond whose
// coupon is taxed but whose capital gain is not (individual investors on
// the Korean exchange).
type DepositComparison struct {
	DepositAfterTax float64 `json:"depositAfterTax"`
	BondAfterTax    float64 `json:"bondAfterTax"`
	Difference      float64 `json:"difference"`
	BondAdvantage   bool    `json:"bondAdvantage"`
}

// CompareDepositVsBond decomposes the bond return into a taxed
// coupon-yield component and an untaxed capital-gain component
// (ytm − coupon·100/price), taxes only the former, and compares against
// the fully taxed deposit rate. couponRatePct is the face coupon in
// percent, pricePct the clean price in percent of par.
func CompareDepositVsBond(depositRatePct, bondYTMPct, couponRatePct, pricePct float64) DepositComparison {
	depositAfterTax := AfterTax(depositRatePct, DefaultInterestTaxRate)

	capitalGainYield := bondYTMPct - couponRatePct*100.0/pricePct
	couponAfterTax := AfterTax(couponRatePct, DefaultInterestTaxRate)
	bondAfterTax := couponAfterTax + capitalGainYield

	return DepositComparison{
		DepositAfterTax: depositAfterTax,
		BondAfterTax:    bondAfterTax,
		Difference:      bondAfterTax - depositAfterTax,
		BondAdvantage:   bondAfterTax > depositAfterTax,
	}
}
