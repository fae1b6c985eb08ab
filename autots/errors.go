package autots

import "errors"

// Sentinel errors for the orchestrator. Callers match with errors.Is; the
// wrapped messages carry the specifics.
var (
	// ErrConfig marks an invalid construction configuration.
	ErrConfig = errors.New("autots: invalid configuration")

	// ErrInputShape marks training input that cannot be fitted.
	ErrInputShape = errors.New("autots: invalid input shape")

	// ErrNotFitted marks a prediction request before a successful Fit.
	ErrNotFitted = errors.New("autots: model is not fitted")

	// ErrRange marks an unsatisfiable forecast range.
	ErrRange = errors.New("autots: forecast range not satisfiable")

	// ErrAlignment marks candidate predictions whose timestamps do not
	// line up during an ensemble merge.
	ErrAlignment = errors.New("autots: candidate predictions are misaligned")
)
