package starlarktempoch

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	startime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/Siderust/tempoch"
)

// Instant is a Starlark representation of a point in time on a time
// scale.
type Instant struct {
	scale tempoch.ScaleID
	v     float64
}

func makeInstant(fn string, id tempoch.ScaleID, v float64) (Instant, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Instant{}, fmt.Errorf("%s: %w", fn, &tempoch.NonFiniteError{Scale: id.String(), Value: v})
	}
	return Instant{id, v}, nil
}

// Scale returns the instant's time scale.
func (i Instant) Scale() tempoch.ScaleID { return i.scale }

// Value returns the day count on the instant's scale.
func (i Instant) Value() float64 { return i.v }

// Compare orders instants on the same scale. Callers check scales
// first; see sameScale.
func (i Instant) Compare(j Instant) int {
	switch {
	case i.v < j.v:
		return -1
	case i.v > j.v:
		return +1
	}
	return 0
}

func (i Instant) IsFinite() bool { return !math.IsNaN(i.v) && !math.IsInf(i.v, 0) }

// To returns i converted to scale id.
func (i Instant) To(id tempoch.ScaleID) Instant {
	return Instant{id, tempoch.ConvertValue(i.scale, id, i.v)}
}

// String implements the Stringer interface.
func (i Instant) String() string {
	return i.scale.String() + " " + strconv.FormatFloat(i.v, 'f', -1, 64)
}

// Type returns "tempoch.instant".
func (i Instant) Type() string { return "tempoch.instant" }

// Freeze is a no-op: an Instant is immutable.
func (i Instant) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y).
func (i Instant) Hash() (uint32, error) {
	bits := math.Float64bits(i.v)
	if i.v == 0 {
		bits = 0 // -0 == +0
	}
	return uint32(bits) ^ uint32(bits>>32) ^ uint32(i.scale)<<24, nil
}

// Truth is always true.
func (i Instant) Truth() starlark.Bool { return true }

var instantMethods = map[string]builtinMethod{
	"to":     instantTo,
	"to_utc": instantToUTC,
}

// Attr gets a value for a string attribute, implementing dot expression
// support in starlark.
func (i Instant) Attr(name string) (starlark.Value, error) {
	switch name {
	case "scale":
		return starlark.String(i.scale.String()), nil
	case "value":
		return starlark.Float(i.v), nil
	case "jd":
		return starlark.Float(tempoch.ToJulianDate(i.scale, i.v)), nil
	case "julian_centuries":
		return starlark.Float((tempoch.ToJulianDate(i.scale, i.v) - tempoch.J2000) / tempoch.JulianCentury), nil
	}
	return builtinAttr(i, name, instantMethods)
}

// AttrNames lists available dot expression strings.
func (i Instant) AttrNames() []string {
	return append(builtinAttrNames(instantMethods), "jd", "julian_centuries", "scale", "value")
}

// CompareSameType implements comparison of two instants on the same
// scale. Instants on different scales are not comparable.
func (i Instant) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	j := yV.(Instant)
	if err := sameScale(i, j); err != nil {
		return false, err
	}
	return threeway(op, i.Compare(j)), nil
}

// Binary implements binary operators, which satisfies the
// starlark.HasBinary interface. operators:
//
//	instant + number = instant
//	number + instant = instant
//	instant - number = instant
//	instant - instant = float (days; same scale only)
func (i Instant) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		if d, ok := starlark.AsFloat(yV); ok {
			return makeInstant("+", i.scale, i.v+d)
		}
	case syntax.MINUS:
		if side == starlark.Right {
			return nil, nil // number - instant
		}
		switch y := yV.(type) {
		case Instant:
			if err := sameScale(i, y); err != nil {
				return nil, err
			}
			return starlark.Float(i.v - y.v), nil
		case starlark.Int, starlark.Float:
			d, _ := starlark.AsFloat(y)
			return makeInstant("-", i.scale, i.v-d)
		}
	}
	return nil, nil // unhandled
}

func sameScale(i, j Instant) error {
	if i.scale != j.scale {
		return fmt.Errorf("cannot mix %s and %s instants; convert with .to(%q)", i.scale, j.scale, i.scale.String())
	}
	return nil
}

func instantTo(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var scale scaleArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &scale); err != nil {
		return nil, err
	}
	return recV.(Instant).To(tempoch.ScaleID(scale)), nil
}

// instantToUTC returns a time.time value from the time module.
func instantToUTC(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	i := recV.(Instant).To(tempoch.ScaleUnix)
	t, err := tempoch.ToUTC(tempoch.NewUnchecked[tempoch.UnixTime](i.v))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return startime.Time(t), nil
}

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}
