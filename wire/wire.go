// Package wire encodes instants and periods in the protocol buffers
// wire format, compatible with these messages:
//
//	message Time   { double value = 1; }
//	message Period { double start = 1; double end = 2; }
//
// The time scale is not encoded; it is implied by the Go type the
// caller decodes into. Decoding validates through the same
// constructors as the rest of the API, so a decoded value is always
// finite and every decoded period has start ≤ end. Unknown fields are
// skipped and missing fields decode as 0, as in proto3.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Siderust/tempoch"
)

// ErrMalformed is wrapped by errors for input that is not valid
// protobuf wire data or has a field of the wrong wire type.
var ErrMalformed = errors.New("malformed wire data")

const (
	fieldValue = 1
	fieldStart = 1
	fieldEnd   = 2
)

// MarshalTime encodes t as a Time message. It fails for a non-finite
// value, which can only come from tempoch.NewUnchecked.
func MarshalTime[S tempoch.Scale](t tempoch.Time[S]) ([]byte, error) {
	if !t.IsFinite() {
		return nil, &tempoch.NonFiniteError{Scale: t.Scale().String(), Value: t.Value()}
	}
	return appendDouble(nil, fieldValue, t.Value()), nil
}

// UnmarshalTime decodes a Time message onto scale S.
func UnmarshalTime[S tempoch.Scale](b []byte) (tempoch.Time[S], error) {
	var v float64
	err := decode(b, func(num protowire.Number, x float64) {
		if num == fieldValue {
			v = x
		}
	})
	if err != nil {
		return tempoch.Time[S]{}, err
	}
	return tempoch.New[S](v)
}

// MarshalPeriod encodes p as a Period message.
func MarshalPeriod[S tempoch.Scale](p tempoch.Period[S]) ([]byte, error) {
	if !p.Start().IsFinite() || !p.End().IsFinite() {
		return nil, &tempoch.IntervalError{Start: p.Start().String(), End: p.End().String(), Reason: "endpoint is not finite"}
	}
	b := appendDouble(nil, fieldStart, p.Start().Value())
	return appendDouble(b, fieldEnd, p.End().Value()), nil
}

// UnmarshalPeriod decodes a Period message onto scale S.
func UnmarshalPeriod[S tempoch.Scale](b []byte) (tempoch.Period[S], error) {
	var start, end float64
	err := decode(b, func(num protowire.Number, x float64) {
		switch num {
		case fieldStart:
			start = x
		case fieldEnd:
			end = x
		}
	})
	if err != nil {
		return tempoch.Period[S]{}, err
	}
	s, err := tempoch.New[S](start)
	if err != nil {
		return tempoch.Period[S]{}, err
	}
	e, err := tempoch.New[S](end)
	if err != nil {
		return tempoch.Period[S]{}, err
	}
	return tempoch.NewPeriod(s, e)
}

// MarshalPeriods encodes ps as consecutive length-delimited Period
// messages, the form of a `repeated Period periods = 1;` field.
func MarshalPeriods[S tempoch.Scale](ps []tempoch.Period[S]) ([]byte, error) {
	var b []byte
	for _, p := range ps {
		m, err := MarshalPeriod(p)
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	return b, nil
}

// UnmarshalPeriods decodes the output of MarshalPeriods. Each period
// is validated on its own; the list is not required to be normalized.
func UnmarshalPeriods[S tempoch.Scale](b []byte) ([]tempoch.Period[S], error) {
	var ps []tempoch.Period[S]
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]
		if num != 1 || typ != protowire.BytesType {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		m, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]
		p, err := UnmarshalPeriod[S](m)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", len(ps), err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// decode walks the fields of one message, calling field for each
// double. Fields 1 and 2 must be doubles; others are skipped.
func decode(b []byte, field func(protowire.Number, float64)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return malformed(protowire.ParseError(n))
		}
		b = b[n:]
		if num == fieldStart || num == fieldEnd {
			if typ != protowire.Fixed64Type {
				return fmt.Errorf("%w: field %d has wire type %d, want fixed64", ErrMalformed, num, typ)
			}
			bits, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return malformed(protowire.ParseError(n))
			}
			b = b[n:]
			field(num, math.Float64frombits(bits))
			continue
		}
		if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
			return malformed(protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func malformed(err error) error { return fmt.Errorf("%w: %v", ErrMalformed, err) }
