package tempoch

import "fmt"

// A DeltaTRegime identifies which part of the ΔT model produced a value.
type DeltaTRegime uint8

const (
	DeltaTAncient      DeltaTRegime = iota // before 948 CE: Stephenson & Houlden
	DeltaTMedieval                         // 948–1620: Stephenson & Houlden, blended into its neighbours
	DeltaTTabulated                        // 1620–1992: Meeus biennial table
	DeltaTObserved                         // 1992–2025: IERS annual values
	DeltaTExtrapolated                     // after 2026.0: linear, 0.02 s/yr
)

var regimeNames = [...]string{"ancient", "medieval", "tabulated", "observed", "extrapolated"}

func (r DeltaTRegime) String() string {
	if int(r) < len(regimeNames) {
		return regimeNames[r]
	}
	return fmt.Sprintf("DeltaTRegime(%d)", uint8(r))
}

// Regime boundaries, as Julian Dates (UT).
const (
	jdMedieval     = 2067314.5 // 948-01-01
	jdTable        = tableStart
	jdObserved     = 2448622.5 // 1992-01-01
	jdExtrapolated = 2461041.5 // 2026-01-01

	tableStart = 2312752.5 // 1620-01-01
	tableStep  = 730.5     // two Julian years
	tableFirst = 124       // ΔT at tableStart, s

	jd1850 = 2396758.5 // origin of the medieval parabola
)

// The medieval parabola misses the ancient polynomial at 948 by about
// −0.48 s and the first table entry at 1620 by about +4.98 s. A linear
// ramp between the two offsets is added across the medieval regime, so
// ΔT is continuous at both ends.
const (
	cMedieval  = (jdMedieval - jd1850) / JulianCentury
	cTable     = (jdTable - jd1850) / JulianCentury
	medievalLo = 1830 - 22.5*cMedieval*cMedieval
	medievalHi = tableFirst - 22.5*cTable*cTable
)

// Meeus, Astronomical Algorithms (2nd ed.), table 10.A: ΔT in seconds
// for even years 1620–1992.
var biennialDeltaT = [...]float64{
	tableFirst, 115, 106, 98, 91, 85, 79, 74, 70, 65,
	62, 58, 55, 53, 50, 48, 46, 44, 42, 40,
	37, 35, 33, 31, 28, 26, 24, 22, 20, 18,
	16, 14, 13, 12, 11, 10, 9, 9, 9, 9,
	9, 9, 9, 9, 10, 10, 10, 10, 10, 11,
	11, 11, 11, 11, 11, 11, 12, 12, 12, 12,
	12, 12, 13, 13, 13, 13, 14, 14, 14, 15,
	15, 15, 15, 16, 16, 16, 16, 16, 17, 17,
	17, 17, 17, 17, 17, 17, 16, 16, 15, 14,
	13.7, 13.1, 12.7, 12.5, 12.5, 12.5, 12.5, 12.5, 12.5, 12.3,
	12.0, 11.4, 10.6, 9.6, 8.6, 7.5, 6.6, 6.0, 5.7, 5.6,
	5.7, 5.9, 6.2, 6.5, 6.8, 7.1, 7.3, 7.5, 7.7, 7.8,
	7.9, 7.5, 6.4, 5.4, 2.9, 1.6, -1.0, -2.7, -3.6, -4.7,
	-5.4, -5.2, -5.5, -5.6, -5.8, -5.9, -6.2, -6.4, -6.1, -4.7,
	-2.7, 0.0, 2.6, 5.4, 7.7, 10.5, 13.4, 16.0, 18.2, 20.2,
	21.2, 22.4, 23.5, 23.9, 24.3, 24.0, 23.9, 23.9, 23.7, 24.0,
	24.3, 25.3, 26.2, 27.3, 28.2, 29.1, 30.0, 30.7, 31.4, 32.2,
	33.1, 34.0, 35.0, 36.5, 38.3, 40.2, 42.2, 44.5, 46.5, 48.5,
	50.5, 52.2, 53.8, 54.9, 55.8, 56.9, 58.3,
}

// Annual ΔT values at the start of each year 1992–2025 (IERS/USNO).
const observedFirstYear = 1992

var observedDeltaT = [...]float64{
	58.31, 59.12, 59.98, 60.78, 61.63, 62.30, 62.97, 63.47,
	63.83, 64.09, 64.30, 64.47, 64.57, 64.69, 64.85, 65.15,
	65.46, 65.78, 66.07, 66.32, 66.60, 66.91, 67.28, 67.64,
	68.10, 68.59, 68.97, 69.22, 69.36, 69.36, 69.29, 69.18,
	69.09, 69.36,
}

// deltaTRate is the secular drift assumed after the observed table.
const deltaTRate = 0.02 // s/yr

// DeltaT returns ΔT = TT − UT in seconds at the given Julian Date (UT).
// See DeltaTModel for the regimes.
func DeltaT(jdUT float64) Seconds {
	dt, _ := DeltaTModel(jdUT)
	return dt
}

// DeltaTModel returns ΔT = TT − UT at the given Julian Date (UT) along
// with the part of the model that produced it.
//
// Values after 2026.0 are a linear extrapolation of the last observed
// value at 0.02 s per year and are increasingly uncertain; callers that
// care should check for DeltaTExtrapolated.
func DeltaTModel(jdUT float64) (Seconds, DeltaTRegime) {
	switch {
	case jdUT < jdMedieval:
		c := (jdUT - jdMedieval) / JulianCentury
		return Seconds(1830 - 405*c + 46.5*c*c), DeltaTAncient
	case jdUT < jdTable:
		c := (jdUT - jd1850) / JulianCentury
		f := (jdUT - jdMedieval) / (jdTable - jdMedieval)
		return Seconds(22.5*c*c + medievalLo + f*(medievalHi-medievalLo)), DeltaTMedieval
	case jdUT < jdObserved:
		return Seconds(biennial(jdUT)), DeltaTTabulated
	case jdUT < jdExtrapolated:
		return Seconds(observed(jdUT)), DeltaTObserved
	default:
		year := 2000 + (jdUT-J2000)/JulianYear
		last := observedDeltaT[len(observedDeltaT)-1]
		return Seconds(last + deltaTRate*(year-2026)), DeltaTExtrapolated
	}
}

// biennial interpolates the Meeus table through three consecutive
// entries (Meeus, eq. 3.3), centred on the entry after the one at or
// before jd. Dates past the table reuse its last three entries.
func biennial(jd float64) float64 {
	const last = len(biennialDeltaT) - 3
	x := (jd - tableStart) / tableStep
	i := 0
	if x > 0 {
		i = int(x)
	}
	if i > last {
		i = last
	}
	t := &biennialDeltaT
	a := t[i+1] - t[i]
	b := t[i+2] - t[i+1]
	c := b - a
	n := x - float64(i+1)
	return t[i+1] + n/2*(a+b+n*c)
}

// observed interpolates linearly between annual values. Over the first
// year the table's value at 1992.0 is blended in, so that the two
// regimes meet.
func observed(jd float64) float64 {
	year := 2000 + (jd-J2000)/JulianYear
	x := year - observedFirstYear
	if x < 0 {
		x = 0
	}
	i := int(x)
	if i+1 >= len(observedDeltaT) {
		return observedDeltaT[len(observedDeltaT)-1]
	}
	f := x - float64(i)
	v := observedDeltaT[i] + f*(observedDeltaT[i+1]-observedDeltaT[i])
	if i == 0 {
		v += (1 - f) * (biennial(jdObserved) - observedDeltaT[0])
	}
	return v
}
