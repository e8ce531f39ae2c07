package bond_test

import (
	"math"
	"testing"

	"github.com/dhkang/bondmath/bond"
)

func TestSolveYTM_RoundTrip(t *testing.T) {
	t.Parallel()

	b := ktb()
	settlement := date(2024, 10, 10)

	for _, ytm := range []float64{-5, -1, 0.5, 2, 3.8, 7, 12, 20} {
		price, err := bond.Price(b, settlement, ytm)
		if err != nil {
			t.Fatalf("Price(%g): %v", ytm, err)
		}

		result, err := bond.SolveYTM(b, settlement, price.CleanPrice, bond.SolveOptions{})
		if err != nil {
			t.Fatalf("SolveYTM(%g): %v", ytm, err)
		}
		if !result.Converged {
			t.Fatalf("solver did not converge for y=%g: %+v", ytm, result)
		}
		if result.Method != bond.MethodNewtonRaphson {
			t.Fatalf("method = %s for y=%g, want newton-raphson", result.Method, ytm)
		}
		if !almostEqual(result.YTM, ytm, 1e-4) {
			t.Fatalf("round trip y=%g gave %g", ytm, result.YTM)
		}
	}
}

func TestSolveYTM_KoreanGovernmentBondScenario(t *testing.T) {
	t.Parallel()

	b := ktb()
	settlement := date(2024, 10, 10)

	result, err := bond.SolveYTM(b, settlement, 9800, bond.SolveOptions{})
	if err != nil {
		t.Fatalf("SolveYTM: %v", err)
	}
	if !result.Converged {
		t.Fatalf("scenario did not converge: %+v", result)
	}
	if result.YTM < 3.7 || result.YTM > 4.0 {
		t.Fatalf("scenario ytm = %g, want 3.7–4.0%%", result.YTM)
	}

	// Solving back reproduces the clean price within tolerance.
	price, err := bond.Price(b, settlement, result.YTM)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !almostEqual(price.CleanPrice, 9800, 1e-4) {
		t.Fatalf("round-trip clean = %.8f, want 9800 ± 1e-4", price.CleanPrice)
	}
}

func TestSolveYTM_ZeroCouponDirect(t *testing.T) {
	t.Parallel()

	b := zeroBond()
	settlement := date(2024, 10, 10)

	result, err := bond.SolveYTM(b, settlement, 8500, bond.SolveOptions{})
	if err != nil {
		t.Fatalf("SolveYTM: %v", err)
	}
	if result.Method != bond.MethodDirect || result.Iterations != 0 || !result.Converged || result.Error != 0 {
		t.Fatalf("zero-coupon ytm should be direct: %+v", result)
	}

	direct, err := bond.ZeroCouponYTM(b, settlement, 8500)
	if err != nil {
		t.Fatalf("ZeroCouponYTM: %v", err)
	}
	if result.YTM != direct {
		t.Fatalf("solver %g != closed form %g", result.YTM, direct)
	}
}

func TestSolveYTM_BisectionFallback(t *testing.T) {
	t.Parallel()

	b := ktb()
	settlement := date(2024, 10, 10)

	// A wildly high seed flattens the price curve until the analytic
	// derivative underflows the safety threshold, forcing Newton-Raphson
	// to give up and the bisection bracket to take over.
	pathological := 1e7
	result, err := bond.SolveYTM(b, settlement, 9800, bond.SolveOptions{InitialGuess: &pathological})
	if err != nil {
		t.Fatalf("SolveYTM: %v", err)
	}
	if result.Method != bond.MethodBisection {
		t.Fatalf("method = %s, want bisection", result.Method)
	}
	if !result.Converged {
		t.Fatalf("bisection fallback did not converge: %+v", result)
	}
	if result.YTM < 3.7 || result.YTM > 4.0 {
		t.Fatalf("fallback ytm = %g, want 3.7–4.0%%", result.YTM)
	}

	// With the fallback disabled the failed Newton attempt is returned
	// as-is, flagged non-converged rather than raised as an error.
	result, err = bond.SolveYTM(b, settlement, 9800, bond.SolveOptions{
		InitialGuess:             &pathological,
		DisableBisectionFallback: true,
	})
	if err != nil {
		t.Fatalf("SolveYTM: %v", err)
	}
	if result.Converged || result.Method != bond.MethodNewtonRaphson {
		t.Fatalf("expected non-converged newton result, got %+v", result)
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()

	b := ktb()
	settlement := date(2024, 10, 10)
	const ytm = 3.8

	macaulay, err := bond.MacaulayDuration(b, settlement, ytm)
	if err != nil {
		t.Fatalf("MacaulayDuration: %v", err)
	}
	modified, err := bond.ModifiedDuration(b, settlement, ytm)
	if err != nil {
		t.Fatalf("ModifiedDuration: %v", err)
	}

	if macaulay <= 0 {
		t.Fatalf("macaulay = %g, want positive", macaulay)
	}
	// Modified < Macaulay whenever the yield is positive.
	if modified >= macaulay {
		t.Fatalf("modified %g should be below macaulay %g at positive yield", modified, macaulay)
	}
	if !almostEqual(modified, macaulay/(1+ytm/100), 1e-12) {
		t.Fatalf("modified duration identity broken: %g vs %g", modified, macaulay/(1+ytm/100))
	}

	// Duration of a bullet bond cannot exceed its time to maturity.
	if ttm := bond.YearsToMaturity(settlement, b.MaturityDate); macaulay > ttm {
		t.Fatalf("macaulay %g exceeds maturity %g", macaulay, ttm)
	}

	dv01, err := bond.DollarDuration(b, settlement, ytm)
	if err != nil {
		t.Fatalf("DollarDuration: %v", err)
	}
	price, err := bond.Price(b, settlement, ytm)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !almostEqual(dv01, modified*price.DirtyPrice*0.0001, 1e-12) {
		t.Fatalf("dv01 identity broken: %g", dv01)
	}

	// DV01 approximates the actual 1bp price move.
	up, err := bond.Price(b, settlement, ytm+0.01)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !almostEqual(price.DirtyPrice-up.DirtyPrice, dv01, dv01*0.01) {
		t.Fatalf("dv01 %g vs realized move %g", dv01, price.DirtyPrice-up.DirtyPrice)
	}
}

func TestConvexity(t *testing.T) {
	t.Parallel()

	b := ktb()
	settlement := date(2024, 10, 10)

	convexity, err := bond.Convexity(b, settlement, 3.8)
	if err != nil {
		t.Fatalf("Convexity: %v", err)
	}
	if convexity <= 0 {
		t.Fatalf("convexity = %g, want positive for a fixed-coupon bond", convexity)
	}

	// The finite difference agrees with the closed-form second derivative
	// normalized by price.
	price, err := bond.Price(b, settlement, 3.8)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	second, err := bond.PriceSecondDerivative(b, settlement, 3.8)
	if err != nil {
		t.Fatalf("PriceSecondDerivative: %v", err)
	}
	closedForm := second / price.DirtyPrice
	if !almostEqual(convexity, closedForm, math.Abs(closedForm)*1e-3) {
		t.Fatalf("finite difference %g vs closed form %g", convexity, closedForm)
	}
}

func TestZeroCouponDuration_EqualsMaturity(t *testing.T) {
	t.Parallel()

	b := zeroBond()
	settlement := date(2024, 10, 10)

	macaulay, err := bond.MacaulayDuration(b, settlement, 4.87)
	if err != nil {
		t.Fatalf("MacaulayDuration: %v", err)
	}
	ttm := bond.YearsToMaturity(settlement, b.MaturityDate)
	if !almostEqual(macaulay, ttm, 1e-9) {
		t.Fatalf("zero-coupon macaulay = %g, want %g", macaulay, ttm)
	}
}
