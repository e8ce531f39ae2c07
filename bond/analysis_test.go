package bond_test

import (
	"errors"
	"testing"

	"github.com/dhkang/bondmath/bond"
)

func TestAnalyze_PriceToYield(t *testing.T) {
	t.Parallel()

	result, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           ktb(),
		SettlementDate: date(2024, 10, 10),
		Input:          bond.InputPrice,
		Value:          9800,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !result.YTM.Converged {
		t.Fatalf("ytm did not converge: %+v", result.YTM)
	}
	if !almostEqual(result.Price.DirtyPrice, result.Price.CleanPrice+result.Price.AccruedInterest, 1e-9) {
		t.Fatalf("price identity broken: %+v", result.Price)
	}
	if result.Accrued.Amount != 29 {
		t.Fatalf("accrued = %g, want 29", result.Accrued.Amount)
	}
	if result.ModifiedDuration >= result.MacaulayDuration {
		t.Fatalf("duration ordering broken: %+v", result)
	}
	if result.Convexity <= 0 {
		t.Fatalf("convexity = %g", result.Convexity)
	}
	if len(result.CashFlows) != 6 {
		t.Fatalf("cash flows = %d, want 6", len(result.CashFlows))
	}
	// Equal tax in and out: the bank-equivalent rate is the YTM itself.
	if !almostEqual(result.BankEquivalentYield, result.YTM.YTM, 1e-9) {
		t.Fatalf("bank equivalent = %g, ytm %g", result.BankEquivalentYield, result.YTM.YTM)
	}
	if result.Tax != nil {
		t.Fatalf("tax breakdown not requested but present")
	}
}

func TestAnalyze_YieldToPrice(t *testing.T) {
	t.Parallel()

	result, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           ktb(),
		SettlementDate: date(2024, 10, 10),
		Input:          bond.InputYield,
		Value:          3.8,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.YTM.Method != bond.MethodDirect || result.YTM.YTM != 3.8 {
		t.Fatalf("yield input should pass through: %+v", result.YTM)
	}

	want, err := bond.Price(ktb(), date(2024, 10, 10), 3.8)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if result.Price != want {
		t.Fatalf("price = %+v, want %+v", result.Price, want)
	}
}

func TestAnalyze_TaxBreakdown(t *testing.T) {
	t.Parallel()

	result, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           ktb(),
		SettlementDate: date(2024, 10, 10),
		Input:          bond.InputPrice,
		Value:          9800,
		IncludeTax:     true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Tax == nil {
		t.Fatalf("tax breakdown missing")
	}

	tax := *result.Tax
	// Five remaining coupons of 350 held to maturity.
	if tax.InterestIncome != 5*350 {
		t.Fatalf("interest income = %g, want 1750", tax.InterestIncome)
	}
	if !almostEqual(tax.InterestTax, 1750*0.154, 1e-9) {
		t.Fatalf("interest tax = %g", tax.InterestTax)
	}
	// Individual exchange-traded capital gains are untaxed.
	if tax.CapitalGainTax != 0 {
		t.Fatalf("capital gain tax = %g, want 0", tax.CapitalGainTax)
	}
	if !almostEqual(tax.NetReturn, tax.InterestIncome+tax.CapitalGain-tax.TotalTax, 1e-9) {
		t.Fatalf("net return identity broken: %+v", tax)
	}
}

func TestAnalyze_RejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := bond.Analyze(bond.AnalysisRequest{
		Bond:           ktb(),
		SettlementDate: date(2024, 10, 10),
		Input:          "guess",
		Value:          9800,
	})
	if !errors.Is(err, bond.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	bad := ktb()
	bad.FaceValue = -1
	_, err = bond.Analyze(bond.AnalysisRequest{
		Bond:           bad,
		SettlementDate: date(2024, 10, 10),
		Input:          bond.InputPrice,
		Value:          9800,
	})
	if !errors.Is(err, bond.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
