package tempoch

import (
	"strconv"
	"time"
)

// Days is a length of time in days of 86400 SI seconds.
type Days float64

// Seconds is a length of time in SI seconds.
type Seconds float64

func (d Days) Seconds() Seconds { return Seconds(d * SecondsPerDay) }
func (s Seconds) Days() Days    { return Days(s / SecondsPerDay) }

// Duration converts d to a time.Duration, rounding to the nearest
// nanosecond. Values beyond the range of time.Duration saturate.
func (d Days) Duration() time.Duration { return d.Seconds().Duration() }

func (s Seconds) Duration() time.Duration {
	ns := float64(s) * 1e9
	switch {
	case ns >= float64(1<<63-1):
		return 1<<63 - 1
	case ns <= -float64(1<<63):
		return -1 << 63
	}
	return time.Duration(ns + 0.5*sign(ns))
}

func (d Days) String() string    { return strconv.FormatFloat(float64(d), 'g', -1, 64) + " d" }
func (s Seconds) String() string { return strconv.FormatFloat(float64(s), 'g', -1, 64) + " s" }

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
