// Package starlarktempoch provides a Starlark module of astronomical
// time scales and period algebra.
//
// Instants carry their scale at run time; comparing or subtracting
// instants on different scales is an error, and .to(scale) converts.
//
//	t = tempoch.time(2451545.0, "JD")
//	print(t.to("MJD")) // MJD 51544.5
package starlarktempoch // import "github.com/Siderust/tempoch/starlarktempoch"

import (
	"fmt"
	"time"

	startime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/Siderust/tempoch"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "tempoch"

// Module tempoch is a Starlark module of time scale conversions and
// period operations.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"time":           starlark.NewBuiltin("time", newInstant),
		"from_unix":      starlark.NewBuiltin("from_unix", fromUnix),
		"from_utc":       starlark.NewBuiltin("from_utc", fromUTC),
		"period":         starlark.NewBuiltin("period", newPeriod),
		"normalize":      starlark.NewBuiltin("normalize", normalize),
		"intersect":      starlark.NewBuiltin("intersect", intersect),
		"complement":     starlark.NewBuiltin("complement", complement),
		"validate":       starlark.NewBuiltin("validate", validate),
		"delta_t":        starlark.NewBuiltin("delta_t", deltaT),
		"delta_t_regime": starlark.NewBuiltin("delta_t_regime", deltaTRegime),
		"tai_minus_utc":  starlark.NewBuiltin("tai_minus_utc", taiMinusUTC),
		"tdb_minus_tt":   starlark.NewBuiltin("tdb_minus_tt", tdbMinusTT),

		"scales": scaleNames(),
		"j2000":  Instant{tempoch.ScaleJD, tempoch.J2000},
	},
}

// LoadModule loads the tempoch module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

const defaultScaleKey = "tempoch.default_scale"

// SetDefaultScale sets the scale that tempoch.time uses on thread when
// the script does not name one. Without it the default is JD.
func SetDefaultScale(thread *starlark.Thread, id tempoch.ScaleID) {
	thread.SetLocal(defaultScaleKey, id)
}

// DefaultScale returns the scale set by SetDefaultScale, or JD.
func DefaultScale(thread *starlark.Thread) tempoch.ScaleID {
	if id, ok := thread.Local(defaultScaleKey).(tempoch.ScaleID); ok {
		return id
	}
	return tempoch.ScaleJD
}

func scaleNames() starlark.Tuple {
	var names starlark.Tuple
	for _, id := range tempoch.Scales() {
		names = append(names, starlark.String(id.String()))
	}
	return names
}

// scaleArg unpacks a scale name.
type scaleArg tempoch.ScaleID

func (s *scaleArg) Unpack(v starlark.Value) error {
	name, ok := starlark.AsString(v)
	if !ok {
		return fmt.Errorf("got %s, want scale name", v.Type())
	}
	id, err := tempoch.ParseScale(name)
	if err != nil {
		return err
	}
	*s = scaleArg(id)
	return nil
}

// floatArg unpacks an int or float.
type floatArg float64

func (f *floatArg) Unpack(v starlark.Value) error {
	x, ok := starlark.AsFloat(v)
	if !ok {
		return fmt.Errorf("got %s, want float", v.Type())
	}
	*f = floatArg(x)
	return nil
}

func newInstant(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		value floatArg
		scale starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "scale?", &scale); err != nil {
		return nil, err
	}
	id := DefaultScale(thread)
	if scale != starlark.None {
		var s scaleArg
		if err := s.Unpack(scale); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		id = tempoch.ScaleID(s)
	}
	return makeInstant(b.Name(), id, float64(value))
}

func fromUnix(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var sec floatArg
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &sec); err != nil {
		return nil, err
	}
	t, err := tempoch.FromUnixSeconds(float64(sec))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Instant{tempoch.ScaleUnix, t.Value()}, nil
}

// fromUTC converts a time.time value (from the time module) to an
// instant on the requested scale, UTC by default.
func fromUTC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		t     startime.Time
		scale = scaleArg(tempoch.ScaleUnix)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "t", &t, "scale?", &scale); err != nil {
		return nil, err
	}
	unix := tempoch.FromUTC[tempoch.UnixTime](time.Time(t))
	id := tempoch.ScaleID(scale)
	return Instant{id, tempoch.ConvertValue(tempoch.ScaleUnix, id, unix.Value())}, nil
}

func deltaT(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	jd, err := jdArg(b, args, kwargs, tempoch.ScaleUT)
	if err != nil {
		return nil, err
	}
	return starlark.Float(tempoch.DeltaT(jd)), nil
}

func deltaTRegime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	jd, err := jdArg(b, args, kwargs, tempoch.ScaleUT)
	if err != nil {
		return nil, err
	}
	_, regime := tempoch.DeltaTModel(jd)
	return starlark.String(regime.String()), nil
}

// taiMinusUTC takes a Julian Date (UTC) or an instant.
func taiMinusUTC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	var jdUTC float64
	if i, ok := x.(Instant); ok {
		jdUTC = tempoch.ConvertValue(i.scale, tempoch.ScaleUnix, i.v) + tempoch.UnixEpoch
	} else if f, ok := starlark.AsFloat(x); ok {
		jdUTC = f
	} else {
		return nil, fmt.Errorf("%s: got %s, want float or tempoch.instant", b.Name(), x.Type())
	}
	return starlark.Float(tempoch.TAIMinusUTC(jdUTC)), nil
}

func tdbMinusTT(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	jd, err := jdArg(b, args, kwargs, tempoch.ScaleTT)
	if err != nil {
		return nil, err
	}
	return starlark.Float(tempoch.TDBMinusTT(jd)), nil
}

// jdArg unpacks a single Julian Date argument. An instant is converted
// to the given Julian Date scale first.
func jdArg(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, as tempoch.ScaleID) (float64, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return 0, err
	}
	if i, ok := x.(Instant); ok {
		return tempoch.ConvertValue(i.scale, as, i.v), nil
	}
	if f, ok := starlark.AsFloat(x); ok {
		return f, nil
	}
	return 0, fmt.Errorf("%s: got %s, want float or tempoch.instant", b.Name(), x.Type())
}
