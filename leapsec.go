package tempoch

import "sort"

// leapSeconds lists, for each UTC day on which TAI−UTC changed, the
// Julian Date (UTC) of 00:00 that day and the new cumulative offset.
// Source: IERS Bulletin C. The last change was 2017-01-01.
var leapSeconds = [...]struct {
	jd     float64
	offset Seconds
}{
	{2441317.5, 10}, // 1972-01-01
	{2441499.5, 11}, // 1972-07-01
	{2441683.5, 12}, // 1973-01-01
	{2442048.5, 13}, // 1974-01-01
	{2442413.5, 14}, // 1975-01-01
	{2442778.5, 15}, // 1976-01-01
	{2443144.5, 16}, // 1977-01-01
	{2443509.5, 17}, // 1978-01-01
	{2443874.5, 18}, // 1979-01-01
	{2444239.5, 19}, // 1980-01-01
	{2444786.5, 20}, // 1981-07-01
	{2445151.5, 21}, // 1982-07-01
	{2445516.5, 22}, // 1983-07-01
	{2446247.5, 23}, // 1985-07-01
	{2447161.5, 24}, // 1988-01-01
	{2447892.5, 25}, // 1990-01-01
	{2448257.5, 26}, // 1991-01-01
	{2448804.5, 27}, // 1992-07-01
	{2449169.5, 28}, // 1993-07-01
	{2449534.5, 29}, // 1994-07-01
	{2450083.5, 30}, // 1996-01-01
	{2450630.5, 31}, // 1997-07-01
	{2451179.5, 32}, // 1999-01-01
	{2453736.5, 33}, // 2006-01-01
	{2454832.5, 34}, // 2009-01-01
	{2456109.5, 35}, // 2012-07-01
	{2457204.5, 36}, // 2015-07-01
	{2457754.5, 37}, // 2017-01-01
}

// TAIMinusUTC returns the cumulative leap-second offset TAI−UTC in
// effect at the given Julian Date (UTC).
//
// Before 1972 the offset is held at 10 s (the pre-1972 rubber-second
// era is not modelled); after the last table entry it is held at the
// last value. Both are approximations. The result is non-decreasing
// in jdUTC.
func TAIMinusUTC(jdUTC float64) Seconds {
	// Index of the first entry strictly after jdUTC.
	i := sort.Search(len(leapSeconds), func(i int) bool { return leapSeconds[i].jd > jdUTC })
	if i == 0 {
		return leapSeconds[0].offset
	}
	return leapSeconds[i-1].offset
}

// utcFromJDTT inverts JD(TT) = JD(UTC) + (ΔAT(JD(UTC)) + 32.184 s).
//
// The estimate first uses the offset in effect at the TAI instant,
// which is never smaller than the UTC one. If the UTC date it gives
// falls before a leap-second step, the earlier offset is tried. An
// instant that neither offset labels lies inside an inserted leap
// second, or on the step itself within rounding, and maps to the step:
// 00:00:00 of the following UTC day.
func utcFromJDTT(jdTT float64) float64 {
	tai := jdTT - ttMinusTAI/SecondsPerDay
	offset := TAIMinusUTC(tai)
	utc := tai - float64(offset)/SecondsPerDay
	prev := TAIMinusUTC(utc)
	if prev == offset {
		return utc
	}
	if earlier := tai - float64(prev)/SecondsPerDay; TAIMinusUTC(earlier) == prev {
		return earlier
	}
	i := sort.Search(len(leapSeconds), func(i int) bool { return leapSeconds[i].jd > utc })
	return leapSeconds[i].jd
}
