package tempoch

import (
	"fmt"
	"slices"
)

// ValidatePeriodList reports whether ps is sorted by start and free of
// overlaps. Touching periods (one ending where the next starts) are
// allowed. The error wraps ErrInvalidPeriodList and, via
// *PeriodListError, names the first offending index.
func ValidatePeriodList[T Instant[T]](ps []Interval[T]) error {
	for i := 1; i < len(ps); i++ {
		prev, cur := ps[i-1], ps[i]
		if cur.start.Compare(prev.start) < 0 {
			return &PeriodListError{Index: i, Reason: "not sorted by start"}
		}
		if cur.start.Compare(prev.end) < 0 {
			return &PeriodListError{Index: i, Reason: fmt.Sprintf("overlaps period %d", i-1)}
		}
	}
	return nil
}

// NormalizePeriods returns the union of ps as a sorted list of
// non-overlapping periods. Periods that overlap or touch are merged.
// The input is not modified.
func NormalizePeriods[T Instant[T]](ps []Interval[T]) []Interval[T] {
	if len(ps) == 0 {
		return nil
	}
	sorted := slices.Clone(ps)
	slices.SortFunc(sorted, func(a, b Interval[T]) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		return a.end.Compare(b.end)
	})

	out := sorted[:1]
	for _, p := range sorted[1:] {
		last := &out[len(out)-1]
		if p.start.Compare(last.end) <= 0 {
			if p.end.Compare(last.end) > 0 {
				last.end = p.end
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

// IntersectPeriods returns the instants covered by both a and b, which
// must each be sorted and non-overlapping. Overlaps of zero length are
// dropped. The result is sorted and non-overlapping.
func IntersectPeriods[T Instant[T]](a, b []Interval[T]) []Interval[T] {
	var out []Interval[T]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if p, ok := a[i].Intersection(b[j]); ok {
			out = append(out, p)
		}
		if a[i].end.Compare(b[j].end) <= 0 {
			i++
		} else {
			j++
		}
	}
	return out
}

// ComplementWithin returns the gaps of ps inside outer: the sorted
// periods of outer not covered by any element of ps. ps must be sorted
// and non-overlapping; elements extending past outer are clipped.
func ComplementWithin[T Instant[T]](outer Interval[T], ps []Interval[T]) []Interval[T] {
	var out []Interval[T]
	cursor := outer.start
	for _, p := range ps {
		if p.end.Compare(cursor) <= 0 {
			continue
		}
		if p.start.Compare(outer.end) >= 0 {
			break
		}
		if p.start.Compare(cursor) > 0 {
			out = append(out, Interval[T]{cursor, p.start})
		}
		cursor = p.end
		if cursor.Compare(outer.end) >= 0 {
			return out
		}
	}
	if cursor.Compare(outer.end) < 0 {
		out = append(out, Interval[T]{cursor, outer.end})
	}
	return out
}
