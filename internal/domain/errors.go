package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks structurally malformed manifests or vehicles. It is
// always recoverable by the caller correcting the request.
var ErrInvalidInput = errors.New("invalid input")

// ErrInternalConsistency marks a plan the validator rejected after the search
// engine produced it. It is a defect in the engine, never a caller problem,
// and no plan is returned alongside it.
var ErrInternalConsistency = errors.New("internal consistency violation")

func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
