package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// MalformedInput: the source record is corrupt (unparseable series key,
	// both or conflicting input shapes). Fatal for the affected record.
	ErrMalformedInput = errors.New("malformed input")

	// DegenerateSample: the dataset is valid but too small for the requested
	// statistic (n <= 1 where n > 1 is required). Distinct from corruption.
	ErrDegenerateSample = errors.New("degenerate sample")

	// EmptySample: no observations at all; mean and variance are undefined.
	ErrEmptySample = fmt.Errorf("%w: empty sample", ErrDegenerateSample)

	// InvalidParameter: a precondition parameter is out of range or missing
	// (confidence outside (0,1), negative known variance, absent param).
	ErrInvalidParameter = errors.New("invalid parameter")

	// QuantileFailure: the distribution collaborator could not produce a
	// quantile. Propagated, never interpreted.
	ErrQuantileFailure = errors.New("quantile failure")

	// Persistence and lookup errors
	ErrNotFound = errors.New("resource not found")
)

// Error constructors with context
func NewMalformedInputError(detail string) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, detail)
}

func NewDegenerateSampleError(operation string, n float64) error {
	return fmt.Errorf("%w: %s requires sample size > 1, got %g", ErrDegenerateSample, operation, n)
}

func NewInvalidParameterError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, param, reason)
}

func NewQuantileError(distribution string, p float64, err error) error {
	return fmt.Errorf("%w: %s at p=%g: %v", ErrQuantileFailure, distribution, p, err)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

func IsDegenerateSample(err error) bool {
	return errors.Is(err, ErrDegenerateSample)
}

func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsQuantileFailure(err error) bool {
	return errors.Is(err, ErrQuantileFailure)
}
