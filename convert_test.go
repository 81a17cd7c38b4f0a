package tempoch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Siderust/tempoch"
)

const secondDays = 1.0 / tempoch.SecondsPerDay

// seconds returns a−b in seconds.
func seconds(a, b float64) float64 { return (a - b) * tempoch.SecondsPerDay }

func TestEpochCounters(t *testing.T) {
	jd := tempoch.NewUnchecked[tempoch.JD](2451545.0)
	if got := tempoch.To[tempoch.MJD](jd).Value(); got != 51544.5 {
		t.Errorf("MJD of J2000: got %v, want 51544.5", got)
	}
	if got := tempoch.To[tempoch.JDE](jd).Value(); got != 2451545.0 {
		t.Errorf("JDE of J2000: got %v, want 2451545", got)
	}
	mjd := tempoch.NewUnchecked[tempoch.MJD](0)
	if got := tempoch.To[tempoch.JD](mjd).Value(); got != 2400000.5 {
		t.Errorf("JD of MJD 0: got %v, want 2400000.5", got)
	}
}

func TestConstantOffsets(t *testing.T) {
	tai := tempoch.NewUnchecked[tempoch.TAI](2451545.0)
	if d := seconds(tempoch.To[tempoch.TT](tai).Value(), tai.Value()); math.Abs(d-32.184) > 1e-4 {
		t.Errorf("TT−TAI: got %v s, want 32.184", d)
	}

	gps := tempoch.NewUnchecked[tempoch.GPS](0)
	want := 2444244.5 + 51.184*secondDays
	if d := seconds(tempoch.To[tempoch.TT](gps).Value(), want); math.Abs(d) > 1e-4 {
		t.Errorf("GPS epoch in TT is off by %v s", d)
	}

	// GPS runs 19 s behind TAI.
	gpsTAI := tempoch.To[tempoch.TAI](gps)
	if d := seconds(gpsTAI.Value(), 2444244.5); math.Abs(d-19) > 1e-4 {
		t.Errorf("TAI at GPS epoch: got %v s after midnight, want 19", d)
	}
}

func TestUnixTime(t *testing.T) {
	for _, test := range []struct {
		unix, jd, offset float64 // offset in seconds, TT−UTC
	}{
		{0, 2440587.5, 42.184},         // 1970: TAI−UTC held at 10 s
		{18262, 2458849.5, 69.184},     // 2020-01-01: 37 s
		{730.5, 2441318.0, 42.184},     // 1972-01-01T12:00
		{10957, 2451544.5, 64.184},     // 2000-01-01: 32 s
		{17166.5, 2457754.0, 68.184},   // 2016-12-31T12:00: 36 s
		{17167.25, 2457754.75, 69.184}, // 2017-01-01T06:00: 37 s
	} {
		u := tempoch.NewUnchecked[tempoch.UnixTime](test.unix)
		tt := tempoch.To[tempoch.TT](u).Value()
		if d := seconds(tt, test.jd); math.Abs(d-test.offset) > 1e-4 {
			t.Errorf("Unix %v: TT−UTC = %v s, want %v", test.unix, d, test.offset)
		}
	}
}

func TestCoordinateScales(t *testing.T) {
	tt := tempoch.NewUnchecked[tempoch.TT](tempoch.J2000)

	tcg := tempoch.To[tempoch.TCG](tt)
	if d := seconds(tcg.Value(), tt.Value()); math.Abs(d-0.506) > 1e-3 {
		t.Errorf("TCG−TT at J2000: got %v s, want ≈0.506", d)
	}
	tcb := tempoch.To[tempoch.TCB](tt)
	if d := seconds(tcb.Value(), tt.Value()); math.Abs(d-11.25) > 0.01 {
		t.Errorf("TCB−TT at J2000: got %v s, want ≈11.25", d)
	}

	// At T₀ (1977-01-01T00:00:32.184 TAI) TCG and TT agree exactly.
	t0 := tempoch.NewUnchecked[tempoch.TT](2443144.5003725)
	if d := seconds(tempoch.To[tempoch.TCG](t0).Value(), t0.Value()); math.Abs(d) > 1e-4 {
		t.Errorf("TCG−TT at T₀: got %v s, want 0", d)
	}
}

func TestTDBMinusTT(t *testing.T) {
	if d := tempoch.TDBMinusTT(tempoch.J2000); math.Abs(float64(d)) > 2e-3 {
		t.Errorf("TDB−TT at J2000: got %v", d)
	}
	// The annual term dominates: the difference stays within ±1.7 ms
	// and swings through most of that range over a year.
	lo, hi := math.Inf(1), math.Inf(-1)
	for jd := tempoch.J2000; jd < tempoch.J2000+366; jd++ {
		d := float64(tempoch.TDBMinusTT(jd))
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	if lo < -1.8e-3 || hi > 1.8e-3 || hi-lo < 3e-3 {
		t.Errorf("TDB−TT over 2000: range [%v, %v]", lo, hi)
	}

	tdb := tempoch.To[tempoch.TDB](tempoch.NewUnchecked[tempoch.TT](tempoch.J2000))
	if d := seconds(tdb.Value(), tempoch.J2000); math.Abs(d-float64(tempoch.TDBMinusTT(tempoch.J2000))) > 1e-4 {
		t.Errorf("To[TDB] disagrees with TDBMinusTT by %v s", d)
	}
}

func TestUTRoute(t *testing.T) {
	ut := tempoch.NewUnchecked[tempoch.UT](tempoch.J2000)
	tt := tempoch.To[tempoch.TT](ut)
	if d := seconds(tt.Value(), ut.Value()); math.Abs(d-63.83) > 0.1 {
		t.Errorf("TT−UT at J2000: got %v s, want ≈63.83", d)
	}
}

// samples are Julian Dates (TT) spread over every ΔT regime, away
// from regime boundaries and leap seconds.
var samples = []float64{
	2000000.0, // 763 CE
	2100000.0, // 1037
	2378496.5, // 1800
	2415020.5, // 1900
	2440587.5, // 1970
	2451545.0, // 2000
	2457754.7, // 2017
	2458849.5, // 2020
	2469807.5, // 2050
}

func TestUTRoundTripAcrossRegimeBoundaries(t *testing.T) {
	for _, edge := range []float64{2067314.5, 2312752.5, 2448622.5, 2461041.5} { // 948, 1620, 1992, 2026
		for s := -200.0; s <= 200; s += 0.5 {
			tt := tempoch.NewUnchecked[tempoch.TT](edge + s*secondDays)
			back := tempoch.To[tempoch.TT](tempoch.To[tempoch.UT](tt))
			if d := seconds(back.Value(), tt.Value()); math.Abs(d) > 1e-3 {
				t.Fatalf("TT→UT→TT at %v%+v s is off by %v s", edge, s, d)
			}
		}
	}
}

func TestRoundTripAllPairs(t *testing.T) {
	for _, jd := range samples {
		for _, src := range tempoch.Scales() {
			v := tempoch.ConvertValue(tempoch.ScaleTT, src, jd)
			for _, dst := range tempoch.Scales() {
				back := tempoch.ConvertValue(dst, src, tempoch.ConvertValue(src, dst, v))
				if d := math.Abs(back - v); d > 1e-8 {
					t.Errorf("%v → %v → %v at JD %v: off by %g d", src, dst, src, jd, d)
				}
			}
		}
	}
}

func TestRoundTripGeneric(t *testing.T) {
	for _, jd := range samples {
		tt := tempoch.NewUnchecked[tempoch.TT](jd)
		checks := []struct {
			name string
			back float64
		}{
			{"UT", tempoch.To[tempoch.TT](tempoch.To[tempoch.UT](tt)).Value()},
			{"TDB", tempoch.To[tempoch.TT](tempoch.To[tempoch.TDB](tt)).Value()},
			{"TCB", tempoch.To[tempoch.TT](tempoch.To[tempoch.TCB](tt)).Value()},
			{"TCG", tempoch.To[tempoch.TT](tempoch.To[tempoch.TCG](tt)).Value()},
			{"Unix", tempoch.To[tempoch.TT](tempoch.To[tempoch.UnixTime](tt)).Value()},
			{"GPS", tempoch.To[tempoch.TT](tempoch.To[tempoch.GPS](tt)).Value()},
		}
		for _, c := range checks {
			if d := math.Abs(c.back - jd); d > 1e-8 {
				t.Errorf("TT → %s → TT at %v: off by %g d", c.name, jd, d)
			}
		}
	}
}

func TestConvertValueMatchesTo(t *testing.T) {
	for _, jd := range samples {
		ut := tempoch.NewUnchecked[tempoch.UT](jd)
		static := tempoch.To[tempoch.UnixTime](ut).Value()
		dynamic := tempoch.ConvertValue(tempoch.ScaleUT, tempoch.ScaleUnix, jd)
		if static != dynamic {
			t.Errorf("UT→Unix at %v: To gives %v, ConvertValue gives %v", jd, static, dynamic)
		}
	}
}

func TestUnixRoundTripAtLeapSecond(t *testing.T) {
	// 2017-01-01 is Unix day 17167.
	for _, v := range []float64{17166.99999, 17166.9999999, 17167, 17167.00001} {
		u := tempoch.NewUnchecked[tempoch.UnixTime](v)
		back := tempoch.To[tempoch.UnixTime](tempoch.To[tempoch.TT](u)).Value()
		if d := math.Abs(back - v); d > 2e-9 {
			t.Errorf("Unix %v round trip: got %v", v, back)
		}
	}
}

func TestNew(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := tempoch.New[tempoch.MJD](v)
		if !errors.Is(err, tempoch.ErrNonFinite) {
			t.Errorf("New(%v): got %v, want ErrNonFinite", v, err)
		}
		var nf *tempoch.NonFiniteError
		if !errors.As(err, &nf) || nf.Scale != "MJD" {
			t.Errorf("New(%v): got %#v, want *NonFiniteError for MJD", v, err)
		}
		if _, err := tempoch.FromDays[tempoch.TT](tempoch.Days(v)); !errors.Is(err, tempoch.ErrNonFinite) {
			t.Errorf("FromDays(%v): got %v", v, err)
		}
	}
	x, err := tempoch.New[tempoch.MJD](51544.5)
	if err != nil || x.Value() != 51544.5 {
		t.Fatalf("New(51544.5) = %v, %v", x, err)
	}
	if u := tempoch.NewUnchecked[tempoch.TT](math.NaN()); u.IsFinite() {
		t.Errorf("NewUnchecked(NaN) reports finite")
	}
}

func TestTimeArithmetic(t *testing.T) {
	a := tempoch.NewUnchecked[tempoch.MJD](60000)
	b := a.Add(1.5)
	if got := b.Sub(a); got != 1.5 {
		t.Errorf("Sub: got %v, want 1.5", got)
	}
	if !a.Before(b) || !b.After(a) || a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("ordering of %v and %v is wrong", a, b)
	}
	if a.Min(b) != a || a.Max(b) != b {
		t.Errorf("Min/Max wrong")
	}
	if got := a.Mean(b).Value(); got != 60000.75 {
		t.Errorf("Mean: got %v", got)
	}
	if got := a.String(); got != "MJD 60000" {
		t.Errorf("String: got %q", got)
	}
	j := tempoch.NewUnchecked[tempoch.JD](tempoch.J2000 + tempoch.JulianCentury)
	if got := j.JulianCenturies(); got != 1 {
		t.Errorf("JulianCenturies: got %v, want 1", got)
	}
	if got := tempoch.Days(1).Seconds(); got != 86400 {
		t.Errorf("Days.Seconds: got %v", got)
	}
}

func TestParseScale(t *testing.T) {
	for _, test := range []struct {
		in   string
		want tempoch.ScaleID
	}{
		{"jd", tempoch.ScaleJD},
		{"MJD", tempoch.ScaleMJD},
		{"unix", tempoch.ScaleUnix},
		{"UnixTime", tempoch.ScaleUnix},
		{"ut1", tempoch.ScaleUT},
		{" tcb ", tempoch.ScaleTCB},
	} {
		got, err := tempoch.ParseScale(test.in)
		if err != nil || got != test.want {
			t.Errorf("ParseScale(%q) = %v, %v; want %v", test.in, got, err, test.want)
		}
	}
	if _, err := tempoch.ParseScale("TOD"); !errors.Is(err, tempoch.ErrUnknownScale) {
		t.Errorf("ParseScale(TOD): got %v", err)
	}
	for _, id := range tempoch.Scales() {
		back, err := tempoch.ParseScale(id.String())
		if err != nil || back != id {
			t.Errorf("ParseScale(%v.String()) = %v, %v", id, back, err)
		}
	}
}
