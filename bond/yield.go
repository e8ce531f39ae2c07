package bond

import (
	"math"
	"time"
)

// SolveMethod identifies how a yield was obtained.
type SolveMethod string

const (
	MethodNewtonRaphson SolveMethod = "newton-raphson"
	MethodBisection     SolveMethod = "bisection"
	MethodDirect        SolveMethod = "direct"
)

const (
	defaultMaxIterations = 100
	// defaultTolerance is in price units: 0.01bp of price error.
	defaultTolerance = 1e-4
	// minDerivative guards the Newton step against division blow-up.
	minDerivative = 1e-10
)

// SolveOptions tunes the YTM root-finder. The zero value selects the
// defaults: 100 iterations, 1e-4 price tolerance, automatic seed, and
// bisection fallback enabled.
type SolveOptions struct {
	MaxIterations int
	Tolerance     float64
	// InitialGuess seeds Newton-Raphson (annual percent). nil picks the
	// closed-form estimate.
	InitialGuess *float64
	// DisableBisectionFallback keeps a failed Newton-Raphson result
	// instead of retrying with bisection.
	DisableBisectionFallback bool
}

func (o SolveOptions) withDefaults() SolveOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	return o
}

// YTMResult carries the solved yield together with the convergence
// diagnostics the caller must inspect: a non-converged result is still a
// best-effort answer, not an error.
type YTMResult struct {
	// YTM is the annualized yield in percent.
	YTM        float64     `json:"ytm"`
	Method     SolveMethod `json:"method"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
	// Error is the final absolute price residual.
	Error float64 `json:"error"`
}

// SolveYTM inverts Price(y) = targetPrice (clean) for the flat annual
// yield. Zero-coupon instruments are solved in closed form; coupon bonds
// run Newton-Raphson with the analytic derivative and, if that fails to
// converge, a guaranteed-progress bisection fallback.
func SolveYTM(b Bond, settlement time.Time, targetPrice float64, opts SolveOptions) (YTMResult, error) {
	opts = opts.withDefaults()

	newton, err := solveNewtonRaphson(b, settlement, targetPrice, opts)
	if err != nil {
		return YTMResult{}, err
	}
	if newton.Converged || opts.DisableBisectionFallback {
		return newton, nil
	}
	return solveBisection(b, settlement, targetPrice, opts)
}

// solveNewtonRaphson iterates y ← y − f(y)/f'(y) on the clean-price
// residual f(y) = P(y) − target. The analytic derivative is per decimal
// yield, so it is rescaled to percent units before the step.
func solveNewtonRaphson(b Bond, settlement time.Time, targetPrice float64, opts SolveOptions) (YTMResult, error) {
	opts = opts.withDefaults()

	if b.IsZeroCoupon() {
		ytm, err := ZeroCouponYTM(b, settlement, targetPrice)
		if err != nil {
			return YTMResult{}, err
		}
		return YTMResult{YTM: ytm, Method: MethodDirect, Iterations: 0, Converged: true}, nil
	}

	var y float64
	if opts.InitialGuess != nil {
		y = *opts.InitialGuess
	} else {
		seed, err := EstimateYTM(b, settlement, targetPrice)
		if err != nil {
			return YTMResult{}, err
		}
		y = seed
	}

	residual := math.Inf(1)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		price, err := Price(b, settlement, y)
		if err != nil {
			return YTMResult{}, err
		}
		priceError := price.CleanPrice - targetPrice
		residual = math.Abs(priceError)

		if residual < opts.Tolerance {
			return YTMResult{YTM: y, Method: MethodNewtonRaphson, Iterations: iter, Converged: true, Error: residual}, nil
		}

		deriv, err := PriceDerivative(b, settlement, y)
		if err != nil {
			return YTMResult{}, err
		}
		if math.Abs(deriv) < minDerivative {
			return YTMResult{YTM: y, Method: MethodNewtonRaphson, Iterations: iter, Converged: false, Error: residual}, nil
		}

		y -= priceError / (deriv / 100.0)
	}

	return YTMResult{YTM: y, Method: MethodNewtonRaphson, Iterations: opts.MaxIterations, Converged: false, Error: residual}, nil
}

// solveBisection brackets the yield in [−10%, +50%], widening once to
// [−20%, +100%] when the target price is not bracketed. If still
// unbracketed it proceeds anyway and may mis-converge; that is an
// accepted limitation. Each step compares the midpoint residual against
// the lower bound's residual, and the lower residual is refreshed only
// when the lower bound moves.
func solveBisection(b Bond, settlement time.Time, targetPrice float64, opts SolveOptions) (YTMResult, error) {
	opts = opts.withDefaults()

	lower, upper := -10.0, 50.0
	priceLower, err := cleanPriceAt(b, settlement, lower)
	if err != nil {
		return YTMResult{}, err
	}
	priceUpper, err := cleanPriceAt(b, settlement, upper)
	if err != nil {
		return YTMResult{}, err
	}

	if (targetPrice-priceLower)*(targetPrice-priceUpper) > 0 {
		lower, upper = -20.0, 100.0
		if priceLower, err = cleanPriceAt(b, settlement, lower); err != nil {
			return YTMResult{}, err
		}
	}

	residual := math.Inf(1)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		mid := (lower + upper) / 2.0
		priceMid, err := cleanPriceAt(b, settlement, mid)
		if err != nil {
			return YTMResult{}, err
		}
		residual = math.Abs(priceMid - targetPrice)

		if residual < opts.Tolerance || math.Abs(upper-lower) < opts.Tolerance/100.0 {
			return YTMResult{YTM: mid, Method: MethodBisection, Iterations: iter, Converged: true, Error: residual}, nil
		}

		if (priceMid-targetPrice)*(priceLower-targetPrice) < 0 {
			upper = mid
		} else {
			lower = mid
			priceLower = priceMid
		}
	}

	return YTMResult{YTM: (lower + upper) / 2.0, Method: MethodBisection, Iterations: opts.MaxIterations, Converged: false, Error: residual}, nil
}

func cleanPriceAt(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	price, err := Price(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	return price.CleanPrice, nil
}

// MacaulayDuration is the PV-weighted average time to cash receipt at a
// flat yield: −(1+y)·(∂P/∂y)/P on the dirty price, in years.
func MacaulayDuration(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	price, err := Price(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	if price.DirtyPrice == 0 {
		return 0, nil
	}

	deriv, err := PriceDerivative(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	y := ytmPct / 100.0
	return -(1.0 + y) * deriv / price.DirtyPrice, nil
}

// ModifiedDuration is Macaulay duration discounted one period:
// first-order price sensitivity per unit yield.
func ModifiedDuration(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	macaulay, err := MacaulayDuration(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	return macaulay / (1.0 + ytmPct/100.0), nil
}

// DollarDuration is the price change for a one basis point yield move
// (DV01), in currency units.
func DollarDuration(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	modified, err := ModifiedDuration(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	price, err := Price(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	return modified * price.DirtyPrice * 0.0001, nil
}

// Convexity is the second-order price sensitivity, measured by a central
// finite difference of the dirty price at ±1bp and normalized by price.
// The finite difference stays robust if the pricing model ever loses its
// closed form.
func Convexity(b Bond, settlement time.Time, ytmPct float64) (float64, error) {
	price, err := Price(b, settlement, ytmPct)
	if err != nil {
		return 0, err
	}
	if price.DirtyPrice == 0 {
		return 0, nil
	}

	const epsilon = 0.01 // 1bp in percentage points
	up, err := Price(b, settlement, ytmPct+epsilon)
	if err != nil {
		return 0, err
	}
	down, err := Price(b, settlement, ytmPct-epsilon)
	if err != nil {
		return 0, err
	}

	h := epsilon / 100.0
	second := (up.DirtyPrice - 2.0*price.DirtyPrice + down.DirtyPrice) / (h * h)
	return second / price.DirtyPrice, nil
}
