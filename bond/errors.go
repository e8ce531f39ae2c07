package bond

import "errors"

// Sentinel errors surfaced by the engine. Callers match with errors.Is.
//
// Solver non-convergence is deliberately not an error: it is reported as
// YTMResult{Converged: false} together with a best-effort answer.
var (
	// ErrInvalidInput covers non-positive prices, non-positive face values,
	// and degenerate (expired) instruments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWrongInstrumentType is returned when a zero-coupon-only function is
	// invoked on a coupon-paying bond.
	ErrWrongInstrumentType = errors.New("wrong instrument type")

	// ErrUnsupportedConvention is returned for an unrecognized day-count tag.
	ErrUnsupportedConvention = errors.New("unsupported day count convention")

	// ErrMissingParameter is returned when a convention requires an auxiliary
	// date (ACT/ACT needs the next coupon date) that was not supplied.
	ErrMissingParameter = errors.New("missing parameter")

	// ErrUnsupportedFrequency is returned for coupon frequencies outside
	// {0, 1, 2, 4, 12}.
	ErrUnsupportedFrequency = errors.New("unsupported coupon frequency")
)
