package tempoch

import (
	"fmt"
	"time"
)

// Instant is the constraint satisfied by interval endpoints: a totally
// ordered value. Every Time[S] satisfies it, and so does time.Time.
type Instant[T any] interface {
	Compare(T) int
}

// finite is implemented by endpoint types that can hold NaN or ±Inf.
type finite interface {
	IsFinite() bool
}

// An Interval is the span between two instants of the same type, with
// Start not after End. Intervals built by NewInterval also have finite
// endpoints.
type Interval[T Instant[T]] struct {
	start, end T
}

// A Period is an interval of instants on time scale S.
type Period[S Scale] = Interval[Time[S]]

// A UTCPeriod is an interval of civil UTC instants.
type UTCPeriod = Interval[time.Time]

// NewInterval returns the interval [start, end]. It fails with an error
// wrapping ErrInvalidInterval if start is after end or either endpoint
// is not finite. The endpoints are never reordered.
func NewInterval[T Instant[T]](start, end T) (Interval[T], error) {
	for _, x := range [2]T{start, end} {
		if f, ok := any(x).(finite); ok && !f.IsFinite() {
			return Interval[T]{}, intervalError(start, end, "endpoint is not finite")
		}
	}
	if start.Compare(end) > 0 {
		return Interval[T]{}, intervalError(start, end, "start is after end")
	}
	return Interval[T]{start, end}, nil
}

// NewIntervalUnchecked returns [start, end] without validation. The
// caller guarantees start ≤ end and finite endpoints; the period
// algebra gives meaningless results otherwise.
func NewIntervalUnchecked[T Instant[T]](start, end T) Interval[T] {
	return Interval[T]{start, end}
}

// NewPeriod is NewInterval for instants on scale S.
func NewPeriod[S Scale](start, end Time[S]) (Period[S], error) {
	return NewInterval(start, end)
}

func intervalError(start, end any, reason string) error {
	return &IntervalError{Start: fmt.Sprint(start), End: fmt.Sprint(end), Reason: reason}
}

func (iv Interval[T]) Start() T { return iv.start }
func (iv Interval[T]) End() T   { return iv.end }

// Contains reports whether t lies in the half-open span [Start, End).
func (iv Interval[T]) Contains(t T) bool {
	return iv.start.Compare(t) <= 0 && t.Compare(iv.end) < 0
}

// Intersection returns the overlap of iv and other. Intervals that
// only touch at an endpoint have no overlap, and ok is false.
func (iv Interval[T]) Intersection(other Interval[T]) (_ Interval[T], ok bool) {
	start, end := iv.start, iv.end
	if other.start.Compare(start) > 0 {
		start = other.start
	}
	if other.end.Compare(end) < 0 {
		end = other.end
	}
	if start.Compare(end) >= 0 {
		return Interval[T]{}, false
	}
	return Interval[T]{start, end}, true
}

// Overlap is Intersection for callers that report failure as an error:
// disjoint or touching intervals give an error wrapping
// ErrNoIntersection.
func (iv Interval[T]) Overlap(other Interval[T]) (Interval[T], error) {
	x, ok := iv.Intersection(other)
	if !ok {
		return Interval[T]{}, fmt.Errorf("%w: %v and %v", ErrNoIntersection, iv, other)
	}
	return x, nil
}

func (iv Interval[T]) String() string {
	return fmt.Sprintf("%v to %v", iv.start, iv.end)
}

// PeriodDuration returns the length of p in days.
func PeriodDuration[S Scale](p Period[S]) Days { return p.end.Sub(p.start) }

// ConvertPeriod converts both endpoints of p to scale Dst. Every
// conversion is monotonic, so the result is still a valid period.
func ConvertPeriod[Dst, Src Scale](p Period[Src]) Period[Dst] {
	return Period[Dst]{To[Dst](p.start), To[Dst](p.end)}
}

// PeriodToUTC converts p to civil UTC.
func PeriodToUTC[S Scale](p Period[S]) (UTCPeriod, error) {
	start, err := ToUTC(p.start)
	if err != nil {
		return UTCPeriod{}, err
	}
	end, err := ToUTC(p.end)
	if err != nil {
		return UTCPeriod{}, err
	}
	return UTCPeriod{start, end}, nil
}

// PeriodFromUTC converts a civil UTC period to scale S.
func PeriodFromUTC[S Scale](p UTCPeriod) Period[S] {
	return Period[S]{FromUTC[S](p.start), FromUTC[S](p.end)}
}
