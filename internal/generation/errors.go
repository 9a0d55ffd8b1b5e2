package generation

import (
	"errors"
	"fmt"
)

// Failure classes of a Generate call. Match them with errors.Is.
var (
	// ErrInvalidInput is returned when the notes are empty after trimming.
	ErrInvalidInput = errors.New("notes required")

	// ErrUpstreamUnavailable is returned when the inference service times out,
	// cannot be reached, or answers with an error.
	ErrUpstreamUnavailable = errors.New("inference service unavailable")

	// ErrMalformedModelOutput is returned when no JSON array of objects can be
	// located in the model output, or the located text does not parse.
	ErrMalformedModelOutput = errors.New("model returned malformed output")

	// ErrNoUsableCards is returned when the array parsed but no element had
	// both a question and an answer.
	ErrNoUsableCards = errors.New("model returned no usable cards")

	// ErrInvalidConfig is returned when a generator cannot be constructed.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Error describes a failed generation.
type Error struct {
	Op     string // stage that failed, e.g. "complete" or "extract"
	Raw    string // normalized model text, if the model answered
	Detail string // upstream diagnostic, if any
	Err    error  // one of the package sentinels
	Cause  error  // underlying error, may be nil
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation %s: %v: %v", e.Op, e.Err, e.Cause)
	}
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// RawOutput returns the model text attached to err, if any.
func RawOutput(err error) (string, bool) {
	var genErr *Error
	if errors.As(err, &genErr) && genErr.Raw != "" {
		return genErr.Raw, true
	}
	return "", false
}
