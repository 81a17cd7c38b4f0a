package tempoch

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one
// of these; use errors.Is to classify and errors.As to get details.
var (
	ErrNonFinite         = errors.New("non-finite time value")
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrInvalidPeriodList = errors.New("invalid period list")
	ErrUTCConversion     = errors.New("UTC conversion failed")
	ErrUnknownScale      = errors.New("unknown time scale")
	ErrNoIntersection    = errors.New("intervals do not intersect")
)

// A NonFiniteError reports a NaN or infinite value offered as a time.
type NonFiniteError struct {
	Scale string // scale label, e.g. "MJD"
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("%s: %s value %v", ErrNonFinite, e.Scale, e.Value)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }

// An IntervalError reports endpoints that do not form an interval.
type IntervalError struct {
	Start, End string // formatted endpoints
	Reason     string
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("%s [%s, %s]: %s", ErrInvalidInterval, e.Start, e.End, e.Reason)
}

func (e *IntervalError) Unwrap() error { return ErrInvalidInterval }

// A PeriodListError reports the first period of a list that breaks the
// sorted, non-overlapping invariant.
type PeriodListError struct {
	Index  int
	Reason string
}

func (e *PeriodListError) Error() string {
	return fmt.Sprintf("%s: period %d: %s", ErrInvalidPeriodList, e.Index, e.Reason)
}

func (e *PeriodListError) Unwrap() error { return ErrInvalidPeriodList }
