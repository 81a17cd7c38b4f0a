package starlarktempoch

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/Siderust/tempoch"
)

// Period is a Starlark representation of a span between two instants
// on the same scale.
type Period struct {
	iv tempoch.Interval[Instant]
}

// Interval returns the underlying interval.
func (p Period) Interval() tempoch.Interval[Instant] { return p.iv }

func (p Period) scale() tempoch.ScaleID { return p.iv.Start().scale }

// newPeriod implements tempoch.period(start, end, scale=None). Start
// and end are instants on one scale, or numbers on the given (or
// default) scale.
func newPeriod(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		startV, endV starlark.Value
		scale        starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "start", &startV, "end", &endV, "scale?", &scale); err != nil {
		return nil, err
	}
	id := DefaultScale(thread)
	if i, ok := startV.(Instant); ok {
		id = i.scale
	} else if i, ok := endV.(Instant); ok {
		id = i.scale
	}
	if scale != starlark.None {
		var s scaleArg
		if err := s.Unpack(scale); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		id = tempoch.ScaleID(s)
	}
	start, err := endpoint(b.Name(), startV, id)
	if err != nil {
		return nil, err
	}
	end, err := endpoint(b.Name(), endV, id)
	if err != nil {
		return nil, err
	}
	if err := sameScale(start, end); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	iv, err := tempoch.NewInterval(start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return Period{iv}, nil
}

func endpoint(fn string, v starlark.Value, id tempoch.ScaleID) (Instant, error) {
	if i, ok := v.(Instant); ok {
		return i, nil
	}
	f, ok := starlark.AsFloat(v)
	if !ok {
		return Instant{}, fmt.Errorf("%s: got %s, want tempoch.instant or float", fn, v.Type())
	}
	return Instant{id, f}, nil
}

// String implements the Stringer interface.
func (p Period) String() string { return p.iv.String() }

// Type returns "tempoch.period".
func (p Period) Type() string { return "tempoch.period" }

// Freeze is a no-op: a Period is immutable.
func (p Period) Freeze() {}

// Hash returns a function of x such that Equals(x, y) => Hash(x) == Hash(y).
func (p Period) Hash() (uint32, error) {
	h1, _ := p.iv.Start().Hash()
	h2, _ := p.iv.End().Hash()
	return h1 ^ (h2*31 + 7), nil
}

// Truth reports whether the period has a non-zero length.
func (p Period) Truth() starlark.Bool { return p.iv.Start().v != p.iv.End().v }

var periodMethods = map[string]builtinMethod{
	"to":           periodTo,
	"intersection": periodIntersection,
	"contains":     periodContains,
}

// Attr gets a value for a string attribute, implementing dot expression
// support in starlark.
func (p Period) Attr(name string) (starlark.Value, error) {
	switch name {
	case "start":
		return p.iv.Start(), nil
	case "end":
		return p.iv.End(), nil
	case "duration":
		return starlark.Float(p.iv.End().v - p.iv.Start().v), nil
	case "scale":
		return starlark.String(p.scale().String()), nil
	}
	return builtinAttr(p, name, periodMethods)
}

// AttrNames lists available dot expression strings.
func (p Period) AttrNames() []string {
	return append(builtinAttrNames(periodMethods), "duration", "end", "scale", "start")
}

// CompareSameType implements equality of periods.
func (p Period) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	q := yV.(Period)
	switch op {
	case syntax.EQL, syntax.NEQ:
		eq := p.scale() == q.scale() && p.iv == q.iv
		return eq == (op == syntax.EQL), nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, q.Type())
}

func periodTo(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var scale scaleArg
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &scale); err != nil {
		return nil, err
	}
	p := recV.(Period)
	id := tempoch.ScaleID(scale)
	return Period{tempoch.NewIntervalUnchecked(p.iv.Start().To(id), p.iv.End().To(id))}, nil
}

// periodIntersection returns the overlap, or None if there is none.
func periodIntersection(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var q Period
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &q); err != nil {
		return nil, err
	}
	p := recV.(Period)
	if err := sameScale(p.iv.Start(), q.iv.Start()); err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	iv, ok := p.iv.Intersection(q.iv)
	if !ok {
		return starlark.None, nil
	}
	return Period{iv}, nil
}

func periodContains(fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t Instant
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &t); err != nil {
		return nil, err
	}
	p := recV.(Period)
	if err := sameScale(p.iv.Start(), t); err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return starlark.Bool(p.iv.Contains(t)), nil
}

// periodList unpacks an iterable of periods that share one scale.
func periodList(fnname string, v starlark.Value) ([]tempoch.Interval[Instant], error) {
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, fmt.Errorf("%s: got %s, want iterable of tempoch.period", fnname, v.Type())
	}
	defer iter.Done()
	var (
		out []tempoch.Interval[Instant]
		x   starlark.Value
	)
	for iter.Next(&x) {
		p, ok := x.(Period)
		if !ok {
			return nil, fmt.Errorf("%s: element %d is %s, want tempoch.period", fnname, len(out), x.Type())
		}
		if len(out) > 0 {
			if err := sameScale(out[0].Start(), p.iv.Start()); err != nil {
				return nil, fmt.Errorf("%s: element %d: %w", fnname, len(out), err)
			}
		}
		out = append(out, p.iv)
	}
	return out, nil
}

func periodValues(ivs []tempoch.Interval[Instant]) *starlark.List {
	elems := make([]starlark.Value, len(ivs))
	for i, iv := range ivs {
		elems[i] = Period{iv}
	}
	return starlark.NewList(elems)
}

func normalize(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ps starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &ps); err != nil {
		return nil, err
	}
	ivs, err := periodList(b.Name(), ps)
	if err != nil {
		return nil, err
	}
	return periodValues(tempoch.NormalizePeriods(ivs)), nil
}

func validate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ps starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &ps); err != nil {
		return nil, err
	}
	ivs, err := periodList(b.Name(), ps)
	if err != nil {
		return nil, err
	}
	if err := tempoch.ValidatePeriodList(ivs); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.None, nil
}

func intersect(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var aV, bV starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &aV, &bV); err != nil {
		return nil, err
	}
	a, err := periodList(b.Name(), aV)
	if err != nil {
		return nil, err
	}
	c, err := periodList(b.Name(), bV)
	if err != nil {
		return nil, err
	}
	if len(a) > 0 && len(c) > 0 {
		if err := sameScale(a[0].Start(), c[0].Start()); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	return periodValues(tempoch.IntersectPeriods(a, c)), nil
}

func complement(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		outer Period
		psV   starlark.Value
	)
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &outer, &psV); err != nil {
		return nil, err
	}
	ps, err := periodList(b.Name(), psV)
	if err != nil {
		return nil, err
	}
	if len(ps) > 0 {
		if err := sameScale(outer.iv.Start(), ps[0].Start()); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
	}
	return periodValues(tempoch.ComplementWithin(outer.iv, ps)), nil
}
