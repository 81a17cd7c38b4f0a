package tempoch

import "math"

// A periodicTerm contributes amplitude·Tᵖ·sin(frequency·T + phase)
// seconds, with T in Julian centuries of TT since J2000.0.
type periodicTerm struct {
	amplitude float64 // s
	frequency float64 // rad per Julian century
	phase     float64 // rad
	power     int
}

// Leading terms of the Fairhead & Bretagnon (1990) series, as given in
// USNO Circular 179, eq. 2.6. Accurate to about 10 µs for 1600–2200.
var tdbSeries = [...]periodicTerm{
	{0.001657, 628.3076, 6.2401, 0},
	{0.000022, 575.3385, 4.2970, 0},
	{0.000014, 1256.6152, 6.1969, 0},
	{0.000005, 606.9777, 4.0212, 0},
	{0.000005, 52.9691, 0.4444, 0},
	{0.000002, 21.3299, 5.5431, 0},
	{0.000010, 628.3076, 4.2490, 1},
}

// TDBMinusTT returns TDB − TT in seconds at the given Julian Date (TT).
// This is the only evaluation of the periodic series; every scale that
// needs it goes through here.
//
// The series' argument is strictly TDB, but the difference is below
// 2 ms and the induced error is far below the series' own accuracy.
func TDBMinusTT(jdTT float64) Seconds {
	t := (jdTT - J2000) / JulianCentury
	var sum float64
	for _, term := range tdbSeries {
		s := term.amplitude * math.Sin(term.frequency*t+term.phase)
		for i := 0; i < term.power; i++ {
			s *= t
		}
		sum += s
	}
	return Seconds(sum)
}

// tdbToTT solves jdTDB = jdTT + (TDB−TT)(jdTT) for jdTT.
func tdbToTT(jdTDB float64) float64 {
	tt := jdTDB
	for i := 0; i < 3; i++ {
		tt = jdTDB - float64(TDBMinusTT(tt))/SecondsPerDay
	}
	return tt
}
