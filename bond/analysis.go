package bond

import (
	"fmt"
	"time"

	"github.com/dhkang/bondmath/rates"
)

// InputKind says which quantity the caller supplied; the engine solves
// for the other one.
type InputKind string

const (
	InputPrice InputKind = "price" // Value is a clean price, solve for yield
	InputYield InputKind = "yield" // Value is an annual yield in percent
)

// AnalysisRequest describes one full calculation: a bond, a settlement
// date, and either a clean price or a yield.
type AnalysisRequest struct {
	Bond           Bond
	SettlementDate time.Time
	Input          InputKind
	Value          float64

	// Solver is passed through to SolveYTM for price→yield requests.
	Solver SolveOptions

	// IncludeTax adds a flat-rate tax breakdown assuming the position is
	// held to maturity. TaxRatePct zero picks the Korean default.
	IncludeTax bool
	TaxRatePct float64
}

// Analysis is the enriched result the display layer renders.
type Analysis struct {
	Bond           Bond      `json:"-"`
	SettlementDate time.Time `json:"settlementDate"`

	YTM     YTMResult       `json:"ytm"`
	Price   BondPrice       `json:"price"`
	Accrued AccruedInterest `json:"accrued"`

	MacaulayDuration float64 `json:"duration"`
	ModifiedDuration float64 `json:"modifiedDuration"`
	DollarDuration   float64 `json:"dollarDuration"`
	Convexity        float64 `json:"convexity"`

	// BankEquivalentYield is the pretax deposit rate matching the bond's
	// after-tax yield (flat interest-tax approximation).
	BankEquivalentYield float64 `json:"bankEquivalentYield"`

	CashFlows []CashFlow `json:"cashFlows"`

	Tax *rates.TaxBreakdown `json:"taxCalculation,omitempty"`
}

// Analyze runs the requested price↔yield direction and enriches the
// result with accrual, risk, and rate-conversion figures.
func Analyze(req AnalysisRequest) (Analysis, error) {
	if err := req.Bond.Validate(); err != nil {
		return Analysis{}, err
	}

	var ytm YTMResult
	switch req.Input {
	case InputPrice:
		solved, err := SolveYTM(req.Bond, req.SettlementDate, req.Value, req.Solver)
		if err != nil {
			return Analysis{}, err
		}
		ytm = solved
	case InputYield:
		ytm = YTMResult{YTM: req.Value, Method: MethodDirect, Converged: true}
	default:
		return Analysis{}, fmt.Errorf("bond: input kind %q: %w", req.Input, ErrInvalidInput)
	}

	price, err := Price(req.Bond, req.SettlementDate, ytm.YTM)
	if err != nil {
		return Analysis{}, err
	}
	accrued, err := ComputeAccruedInterest(req.Bond, req.SettlementDate)
	if err != nil {
		return Analysis{}, err
	}
	flows, err := RemainingCashFlows(req.Bond, req.SettlementDate)
	if err != nil {
		return Analysis{}, err
	}

	macaulay, err := MacaulayDuration(req.Bond, req.SettlementDate, ytm.YTM)
	if err != nil {
		return Analysis{}, err
	}
	modified, err := ModifiedDuration(req.Bond, req.SettlementDate, ytm.YTM)
	if err != nil {
		return Analysis{}, err
	}
	dv01, err := DollarDuration(req.Bond, req.SettlementDate, ytm.YTM)
	if err != nil {
		return Analysis{}, err
	}
	convexity, err := Convexity(req.Bond, req.SettlementDate, ytm.YTM)
	if err != nil {
		return Analysis{}, err
	}

	taxRate := req.TaxRatePct
	if taxRate == 0 {
		taxRate = rates.DefaultInterestTaxRate
	}
	bankEquivalent, err := rates.BankEquivalentYield(rates.AfterTax(ytm.YTM, taxRate), taxRate)
	if err != nil {
		return Analysis{}, err
	}

	result := Analysis{
		Bond:                req.Bond,
		SettlementDate:      req.SettlementDate,
		YTM:                 ytm,
		Price:               price,
		Accrued:             accrued,
		MacaulayDuration:    macaulay,
		ModifiedDuration:    modified,
		DollarDuration:      dv01,
		Convexity:           convexity,
		BankEquivalentYield: bankEquivalent,
		CashFlows:           flows,
	}

	if req.IncludeTax {
		// Held to maturity: coupons are interest income, pull-to-par the
		// capital gain. Exchange-traded individual gains are untaxed.
		interestIncome := TotalCashFlow(CouponFlows(flows))
		capitalGain := req.Bond.FaceValue - price.CleanPrice
		breakdown, err := rates.ComputeTaxBreakdown(interestIncome, capitalGain, taxRate, 0)
		if err != nil {
			return Analysis{}, err
		}
		result.Tax = &breakdown
	}

	return result, nil
}
