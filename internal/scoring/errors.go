package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Validation errors: the request itself is malformed.
	ErrInvalidDelivery = errors.New("invalid delivery")
	ErrInvalidMatch    = errors.New("invalid match setup")
	ErrInvalidBatsmen  = errors.New("invalid batsmen")

	// State errors: the request is well formed but not allowed right now.
	ErrMatchNotActive     = errors.New("match is not in progress")
	ErrInningsCompleted   = errors.New("innings is already completed")
	ErrNoActiveBatter     = errors.New("no batter in the striker or non-striker slot")
	ErrNoActiveBowler     = errors.New("no bowler assigned to the current over")
	ErrBowlerNotAvailable = errors.New("bowler is not available for this over")
	ErrOverInProgress     = errors.New("current over is still in progress")
	ErrBatterNotOnStrike  = errors.New("batsman is not on strike")
	ErrBowlerMismatch     = errors.New("bowler is not bowling the current over")
)

// Kind classifies errors for callers that render them.
type Kind string

const (
	KindValidation Kind = "validation"
	KindState      Kind = "state"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

var stateErrors = []error{
	ErrMatchNotActive, ErrInningsCompleted, ErrNoActiveBatter, ErrNoActiveBowler,
	ErrBowlerNotAvailable, ErrOverInProgress, ErrBatterNotOnStrike, ErrBowlerMismatch,
}

// KindOf reports the engine-level kind of err. Errors it does not recognise are KindInternal;
// storage layers map their own sentinels to KindConflict and KindNotFound.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidDelivery) || errors.Is(err, ErrInvalidMatch) || errors.Is(err, ErrInvalidBatsmen) {
		return KindValidation
	}
	for _, target := range stateErrors {
		if errors.Is(err, target) {
			return KindState
		}
	}
	return KindInternal
}

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	cause  error
	Fields map[string]string
}

func newValidationError(cause error) *ValidationError {
	return &ValidationError{cause: cause, Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", e.cause, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.cause }
