// Package tempoch provides astronomical time instants tagged with their
// time scale, conversions between scales, and an algebra over
// intervals of instants.
//
// An instant is a Time[S]: a number of days on scale S. Instants on
// different scales have different types, so a TT instant cannot be
// compared with or subtracted from a UT instant without an explicit
// conversion:
//
//	t, err := tempoch.New[tempoch.JD](2451545.0)
//	...
//	mjd := tempoch.To[tempoch.MJD](t) // MJD 51544.5
//
// Conversions are routed through Terrestrial Time (JD TT) and combine
// constant offsets, the leap-second table, the ΔT model and the
// TDB−TT periodic series. They never fail.
//
// Values are immutable and every function is safe for concurrent use.
package tempoch

import (
	"math"
	"strconv"
)

// A Time is an instant on time scale S, held as days since the scale's
// epoch (for Julian Date scales, since JD 0).
//
// The zero Time is day 0 of the scale. Times built with New or FromDays
// are always finite.
type Time[S Scale] struct {
	v float64
}

// New returns the instant v days on scale S, or an error wrapping
// ErrNonFinite if v is NaN or infinite.
func New[S Scale](v float64) (Time[S], error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Time[S]{}, &NonFiniteError{Scale: label[S](), Value: v}
	}
	return Time[S]{v}, nil
}

// NewUnchecked returns the instant v days on scale S without
// validation. The caller guarantees that v is finite; a non-finite
// value propagates through every conversion and comparison.
func NewUnchecked[S Scale](v float64) Time[S] { return Time[S]{v} }

// FromDays is New for a Days quantity.
func FromDays[S Scale](d Days) (Time[S], error) { return New[S](float64(d)) }

// FromDaysUnchecked is NewUnchecked for a Days quantity.
func FromDaysUnchecked[S Scale](d Days) Time[S] { return Time[S]{float64(d)} }

// FromUnixSeconds returns the UnixTime instant sec seconds after the
// Unix epoch.
func FromUnixSeconds(sec float64) (Time[UnixTime], error) {
	return New[UnixTime](sec / SecondsPerDay)
}

// Value returns the raw day count.
func (t Time[S]) Value() float64 { return t.v }

// Days returns the day count as a quantity.
func (t Time[S]) Days() Days { return Days(t.v) }

// Scale returns the run-time identifier of S.
func (t Time[S]) Scale() ScaleID {
	var s S
	return s.ID()
}

// IsFinite reports whether the value is neither NaN nor infinite.
// It is always true for Times built by validating constructors.
func (t Time[S]) IsFinite() bool { return !math.IsNaN(t.v) && !math.IsInf(t.v, 0) }

// Compare returns -1, 0 or +1 as t is before, equal to, or after u.
func (t Time[S]) Compare(u Time[S]) int {
	switch {
	case t.v < u.v:
		return -1
	case t.v > u.v:
		return +1
	}
	return 0
}

func (t Time[S]) Before(u Time[S]) bool { return t.v < u.v }
func (t Time[S]) After(u Time[S]) bool  { return t.v > u.v }
func (t Time[S]) Equal(u Time[S]) bool  { return t.v == u.v }

// Add returns t+d.
func (t Time[S]) Add(d Days) Time[S] { return Time[S]{t.v + float64(d)} }

// Sub returns the elapsed days t−u.
func (t Time[S]) Sub(u Time[S]) Days { return Days(t.v - u.v) }

// Min returns the earlier of t and u.
func (t Time[S]) Min(u Time[S]) Time[S] {
	if u.v < t.v {
		return u
	}
	return t
}

// Max returns the later of t and u.
func (t Time[S]) Max(u Time[S]) Time[S] {
	if u.v > t.v {
		return u
	}
	return t
}

// Mean returns the instant halfway between t and u.
func (t Time[S]) Mean(u Time[S]) Time[S] { return Time[S]{t.v + (u.v-t.v)/2} }

// JulianDate returns the instant as a Julian Date in TT.
func (t Time[S]) JulianDate() float64 {
	var s S
	return s.toJDTT(t.v)
}

// JulianCenturies returns the Julian centuries of TT elapsed since
// J2000.0, the argument of most precession and nutation series.
func (t Time[S]) JulianCenturies() float64 { return (t.JulianDate() - J2000) / JulianCentury }

// JulianMillennia returns the Julian millennia of TT since J2000.0.
func (t Time[S]) JulianMillennia() float64 { return (t.JulianDate() - J2000) / JulianMillennium }

// String formats t as its scale label and value, e.g. "MJD 51544.5".
func (t Time[S]) String() string {
	return label[S]() + " " + strconv.FormatFloat(t.v, 'f', -1, 64)
}
