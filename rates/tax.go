package rates

import "fmt"

// TaxBreakdown splits a holding-period return into its taxed parts.
// Amounts are in currency units. The model is a flat-rate approximation,
// not a tax-law implementation.
type TaxBreakdown struct {
	InterestIncome float64 `json:"interestIncome"`
	CapitalGain    float64 `json:"capitalGain"`
	InterestTax    float64 `json:"interestTax"`
	CapitalGainTax float64 `json:"capitalGainTax"`
	TotalTax       float64 `json:"totalTaxAmount"`
	NetReturn      float64 `json:"netReturn"`
	// EffectiveTaxRate is total tax over gross return, in percent.
	EffectiveTaxRate float64 `json:"effectiveTaxRate"`
}

// ComputeTaxBreakdown taxes interest income and capital gain at their
// respective flat rates. A negative capital gain offsets the gross return
// but is never taxed.
func ComputeTaxBreakdown(interestIncome, capitalGain, interestTaxRatePct, capitalGainTaxRatePct float64) (TaxBreakdown, error) {
	if interestTaxRatePct >= 100.0 || capitalGainTaxRatePct >= 100.0 {
		return TaxBreakdown{}, fmt.Errorf("rates: tax rates %.2f%%/%.2f%%: %w",
			interestTaxRatePct, capitalGainTaxRatePct, ErrInvalidTaxRate)
	}

	interestTax := interestIncome * interestTaxRatePct / 100.0
	capitalGainTax := 0.0
	if capitalGain > 0 {
		capitalGainTax = capitalGain * capitalGainTaxRatePct / 100.0
	}

	gross := interestIncome + capitalGain
	total := interestTax + capitalGainTax

	effective := 0.0
	if gross != 0 {
		effective = total / gross * 100.0
	}

	return TaxBreakdown{
		InterestIncome:   interestIncome,
		CapitalGain:      capitalGain,
		InterestTax:      interestTax,
		CapitalGainTax:   capitalGainTax,
		TotalTax:         total,
		NetReturn:        gross - total,
		EffectiveTaxRate: effective,
	}, nil
}
