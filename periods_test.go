package tempoch_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Siderust/tempoch"
)

type P = tempoch.Period[tempoch.MJD]

// periods builds a list from [start, end] pairs.
func periods(pairs ...[2]float64) []P {
	ps := make([]P, len(pairs))
	for i, p := range pairs {
		ps[i] = period(p[0], p[1])
	}
	return ps
}

// flat renders a list as pairs, for diffing.
func flat(ps []P) [][2]float64 {
	out := make([][2]float64, len(ps))
	for i, p := range ps {
		out[i] = [2]float64{p.Start().Value(), p.End().Value()}
	}
	return out
}

func TestWorkedExample(t *testing.T) {
	outer := period(0, 10)
	a := periods([2]float64{1, 4}, [2]float64{6, 9})
	b := periods([2]float64{2, 3}, [2]float64{7, 8})

	if diff := cmp.Diff([][2]float64{{2, 3}, {7, 8}}, flat(tempoch.IntersectPeriods(a, b))); diff != "" {
		t.Errorf("intersect (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][2]float64{{0, 1}, {4, 6}, {9, 10}}, flat(tempoch.ComplementWithin(outer, a))); diff != "" {
		t.Errorf("complement (-want +got):\n%s", diff)
	}
}

func TestThresholdWindows(t *testing.T) {
	// Time above a lower threshold and not above an upper one.
	aboveMin := periods([2]float64{1, 3}, [2]float64{5, 9})
	aboveMax := periods([2]float64{2, 4}, [2]float64{7, 8})
	belowMax := tempoch.ComplementWithin(period(0, 10), aboveMax)
	got := tempoch.IntersectPeriods(aboveMin, belowMax)
	if diff := cmp.Diff([][2]float64{{1, 2}, {5, 7}, {8, 9}}, flat(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestValidatePeriodList(t *testing.T) {
	for _, test := range []struct {
		ps    []P
		index int // -1 for valid
	}{
		{nil, -1},
		{periods([2]float64{0, 1}), -1},
		{periods([2]float64{0, 1}, [2]float64{1, 2}), -1}, // touching
		{periods([2]float64{0, 1}, [2]float64{2, 3}, [2]float64{3, 3}), -1},
		{periods([2]float64{0, 2}, [2]float64{1, 3}), 1}, // overlap
		{periods([2]float64{2, 3}, [2]float64{0, 1}), 1}, // unsorted
		{periods([2]float64{0, 1}, [2]float64{2, 5}, [2]float64{4, 6}), 2},
	} {
		err := tempoch.ValidatePeriodList(test.ps)
		if test.index < 0 {
			if err != nil {
				t.Errorf("%v: unexpected error %v", flat(test.ps), err)
			}
			continue
		}
		var pe *tempoch.PeriodListError
		if !errors.As(err, &pe) || pe.Index != test.index || !errors.Is(err, tempoch.ErrInvalidPeriodList) {
			t.Errorf("%v: got %v, want error at index %d", flat(test.ps), err, test.index)
		}
	}
}

func TestNormalizePeriods(t *testing.T) {
	for _, test := range []struct {
		in, want [][2]float64
	}{
		{nil, [][2]float64{}},
		{[][2]float64{{5, 6}, {1, 2}}, [][2]float64{{1, 2}, {5, 6}}},
		{[][2]float64{{1, 3}, {2, 4}}, [][2]float64{{1, 4}}},
		{[][2]float64{{1, 2}, {2, 3}}, [][2]float64{{1, 3}}}, // touching merge
		{[][2]float64{{1, 10}, {2, 3}, {4, 5}}, [][2]float64{{1, 10}}},
		{[][2]float64{{3, 4}, {1, 2}, {1, 5}, {7, 8}}, [][2]float64{{1, 5}, {7, 8}}},
	} {
		in := periods(test.in...)
		before := flat(in)
		got := flat(tempoch.NormalizePeriods(in))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("NormalizePeriods(%v) (-want +got):\n%s", test.in, diff)
		}
		if diff := cmp.Diff(before, flat(in)); diff != "" {
			t.Errorf("NormalizePeriods modified its input:\n%s", diff)
		}
	}
}

func TestComplementWithinClips(t *testing.T) {
	for _, test := range []struct {
		outer [2]float64
		in    [][2]float64
		want  [][2]float64
	}{
		{[2]float64{0, 10}, nil, [][2]float64{{0, 10}}},
		{[2]float64{0, 10}, [][2]float64{{-5, 2}, {8, 15}}, [][2]float64{{2, 8}}},
		{[2]float64{0, 10}, [][2]float64{{-5, 15}}, [][2]float64{}},
		{[2]float64{0, 10}, [][2]float64{{-5, -1}, {12, 15}}, [][2]float64{{0, 10}}},
		{[2]float64{0, 10}, [][2]float64{{0, 2}, {2, 4}}, [][2]float64{{4, 10}}},
		{[2]float64{5, 5}, [][2]float64{{1, 2}}, [][2]float64{}},
	} {
		got := flat(tempoch.ComplementWithin(period(test.outer[0], test.outer[1]), periods(test.in...)))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ComplementWithin(%v, %v) (-want +got):\n%s", test.outer, test.in, diff)
		}
	}
}

// randomPeriods returns n periods with integer endpoints in [0, 100),
// in no particular order and possibly overlapping.
func randomPeriods(rng *rand.Rand, n int) []P {
	ps := make([]P, n)
	for i := range ps {
		a, b := float64(rng.Intn(100)), float64(rng.Intn(100))
		if a > b {
			a, b = b, a
		}
		ps[i] = period(a, b)
	}
	return ps
}

// covered reports whether x lies in some period of ps, treating each
// period as half-open.
func covered(ps []P, x float64) bool {
	for _, p := range ps {
		if p.Contains(mjd(x)) {
			return true
		}
	}
	return false
}

func TestAlgebraProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	outer := period(10, 90)
	for iter := 0; iter < 500; iter++ {
		raw := randomPeriods(rng, rng.Intn(8))
		a := tempoch.NormalizePeriods(raw)
		b := tempoch.NormalizePeriods(randomPeriods(rng, rng.Intn(8)))

		if err := tempoch.ValidatePeriodList(a); err != nil {
			t.Fatalf("normalized list %v is invalid: %v", flat(a), err)
		}
		if diff := cmp.Diff(flat(a), flat(tempoch.NormalizePeriods(a))); diff != "" {
			t.Fatalf("normalize is not idempotent:\n%s", diff)
		}

		ab := tempoch.IntersectPeriods(a, b)
		if diff := cmp.Diff(flat(ab), flat(tempoch.IntersectPeriods(b, a))); diff != "" {
			t.Fatalf("intersect is not symmetric for %v, %v:\n%s", flat(a), flat(b), diff)
		}
		if err := tempoch.ValidatePeriodList(ab); err != nil {
			t.Fatalf("intersection %v is invalid: %v", flat(ab), err)
		}

		c := tempoch.ComplementWithin(outer, a)
		if err := tempoch.ValidatePeriodList(c); err != nil {
			t.Fatalf("complement %v is invalid: %v", flat(c), err)
		}

		// Pointwise checks on half-integers, which never fall on an
		// endpoint.
		for x := 0.5; x < 100; x++ {
			inA, inB, inRaw := covered(a, x), covered(b, x), covered(raw, x)
			if inA != inRaw {
				t.Fatalf("normalize changed coverage of %v", x)
			}
			if covered(ab, x) != (inA && inB) {
				t.Fatalf("intersection wrong at %v: a=%v b=%v", x, flat(a), flat(b))
			}
			inOuter := outer.Contains(mjd(x))
			if covered(c, x) != (inOuter && !inA) {
				t.Fatalf("complement wrong at %v: a=%v", x, flat(a))
			}
		}

		// Complementing twice gives back a, clipped to outer.
		var clipped []P
		for _, p := range a {
			if q, ok := p.Intersection(outer); ok {
				clipped = append(clipped, q)
			}
		}
		twice := tempoch.ComplementWithin(outer, c)
		if diff := cmp.Diff(flat(clipped), flat(twice)); diff != "" {
			t.Fatalf("double complement of %v (-want +got):\n%s", flat(a), diff)
		}
	}
}

func FuzzNormalizePeriods(f *testing.F) {
	f.Add([]byte{1, 4, 6, 9, 2, 3})
	f.Add([]byte{})
	f.Add([]byte{5, 5, 5, 5})
	f.Fuzz(func(t *testing.T, data []byte) {
		var ps []P
		for i := 0; i+1 < len(data); i += 2 {
			a, b := float64(data[i]), float64(data[i+1])
			if a > b {
				a, b = b, a
			}
			ps = append(ps, period(a, b))
		}
		norm := tempoch.NormalizePeriods(ps)
		if err := tempoch.ValidatePeriodList(norm); err != nil {
			t.Fatalf("NormalizePeriods(%v) = %v: %v", flat(ps), flat(norm), err)
		}
		for i := 1; i < len(norm); i++ {
			if !norm[i-1].End().Before(norm[i].Start()) {
				t.Fatalf("NormalizePeriods(%v) left touching periods: %v", flat(ps), flat(norm))
			}
		}
		outer := period(0, 256)
		gaps := tempoch.ComplementWithin(outer, norm)
		if err := tempoch.ValidatePeriodList(gaps); err != nil {
			t.Fatalf("ComplementWithin gave %v: %v", flat(gaps), err)
		}
		if len(tempoch.IntersectPeriods(norm, gaps)) != 0 {
			t.Fatalf("periods %v intersect their own complement %v", flat(norm), flat(gaps))
		}
	})
}
