// Package marketdata loads the static table of pre-computed bond-ETF
// distribution yields used by the aggregate comparison view. The rows are
// flat TTM yields, not full cash-flow models; the comparison reuses the
// tax and frequency conversions from the rates package.
package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dhkang/bondmath/rates"
)

// ETFYield is one row of the external JSON resource.
type ETFYield struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	// TTMYieldPct is the trailing-twelve-month distribution yield,
	// pretax, in percent.
	TTMYieldPct float64 `json:"ttmYieldPct"`
	// Frequency is the payout cadence: monthly, quarterly, semiannual
	// or annual.
	Frequency string `json:"frequency"`
}

// LoadETFYields reads the yield table from a JSON file.
func LoadETFYields(path string) ([]ETFYield, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open yield table: %w", err)
	}
	defer f.Close()
	return ParseETFYields(f)
}

// ParseETFYields decodes a JSON array of yield rows.
func ParseETFYields(r io.Reader) ([]ETFYield, error) {
	var rows []ETFYield
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("marketdata: parse yield table: %w", err)
	}
	return rows, nil
}

// PayoutsPerYear maps a payout cadence tag to payments per year,
// defaulting unknown tags to monthly.
func PayoutsPerYear(frequency string) int {
	switch frequency {
	case "annual":
		return 1
	case "semiannual":
		return 2
	case "quarterly":
		return 4
	case "monthly":
		return 12
	}
	return 12
}

// YieldComparison is one computed row of the comparison view.
type YieldComparison struct {
	ETFYield

	// AfterTaxYieldPct is the distribution yield net of the ETF tax,
	// floored at zero.
	AfterTaxYieldPct float64 `json:"afterTaxYieldPct"`
	// EffectiveAnnualPct compounds the after-tax yield at the payout
	// frequency.
	EffectiveAnnualPct float64 `json:"effectiveAnnualPct"`
	// BankEquivalentSimplePct / BankEquivalentCompoundedPct re-express
	// the after-tax (resp. compounded) yield as a pretax deposit rate.
	BankEquivalentSimplePct     float64 `json:"bankEquivalentSimplePct"`
	BankEquivalentCompoundedPct float64 `json:"bankEquivalentCompoundedPct"`
}

// Compare computes the deposit-equivalent figures for every row. With
// compound false the effective column repeats the after-tax yield.
func Compare(rows []ETFYield, etfTaxPct, bankTaxPct float64, compound bool) ([]YieldComparison, error) {
	out := make([]YieldComparison, 0, len(rows))
	for _, row := range rows {
		afterTax := rates.AfterTax(row.TTMYieldPct, etfTaxPct)
		if afterTax < 0 {
			afterTax = 0
		}

		effective := afterTax
		if compound {
			effective = rates.EffectiveAnnualFromPayout(afterTax, PayoutsPerYear(row.Frequency))
		}

		bankSimple, err := rates.BankEquivalentYield(afterTax, bankTaxPct)
		if err != nil {
			return nil, fmt.Errorf("marketdata: %s: %w", row.Ticker, err)
		}
		bankCompounded, err := rates.BankEquivalentYield(effective, bankTaxPct)
		if err != nil {
			return nil, fmt.Errorf("marketdata: %s: %w", row.Ticker, err)
		}

		out = append(out, YieldComparison{
			ETFYield:                    row,
			AfterTaxYieldPct:            afterTax,
			EffectiveAnnualPct:          effective,
			BankEquivalentSimplePct:     bankSimple,
			BankEquivalentCompoundedPct: bankCompounded,
		})
	}
	return out, nil
}
