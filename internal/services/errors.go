package services

import (
	"errors"
	"fmt"
)

// ErrNonPositiveAmount rejects zero or negative payment amounts.
var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// NoExpensesError means generation was requested for a period with zero
// expense rows. Recoverable: the operator must enter expenses first.
type NoExpensesError struct {
	BuildingID int
	Month      int
	Year       int
}

func (e *NoExpensesError) Error() string {
	return fmt.Sprintf("no expenses recorded for building %d in period %02d/%d", e.BuildingID, e.Month, e.Year)
}

// NoUnitsError means the building has no billable units in any unit table.
type NoUnitsError struct {
	BuildingID int
}

func (e *NoUnitsError) Error() string {
	return fmt.Sprintf("building %d has no billable units", e.BuildingID)
}

// MissingRateError means a fee setting required by the selected algorithm is
// not configured for the building.
type MissingRateError struct {
	BuildingID int
	Key        string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("fee setting %q is not configured for building %d", e.Key, e.BuildingID)
}

// UnknownAlgorithmError means the requested generation algorithm is not
// registered.
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown fee algorithm %q", e.Name)
}

// PersistenceError wraps a failed store operation. Generation is
// destructive-idempotent, so callers may retry the whole call; payment
// callers must recompute the remaining due before retrying.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
