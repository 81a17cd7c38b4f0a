package tempoch

import (
	"fmt"
	"math"
	"time"
)

// maxUnixSeconds bounds the instants ToUTC accepts: beyond 2⁵³ s a
// float64 no longer resolves whole seconds.
const maxUnixSeconds = 1 << 53

// FromUTC returns the instant on scale S of the civil time t. The
// conversion goes through UnixTime and therefore applies the leap
// second table.
func FromUTC[S Scale](t time.Time) Time[S] {
	days := float64(t.Unix())/SecondsPerDay + float64(t.Nanosecond())/(SecondsPerDay*1e9)
	return To[S](Time[UnixTime]{days})
}

// ToUTC returns the civil UTC time of t, rounded to the nanosecond.
// It fails with an error wrapping ErrUTCConversion if t is not finite
// or lies outside the range a time.Time can hold exactly.
func ToUTC[S Scale](t Time[S]) (time.Time, error) {
	sec := To[UnixTime](t).v * SecondsPerDay
	if math.IsNaN(sec) || math.Abs(sec) > maxUnixSeconds {
		return time.Time{}, fmt.Errorf("%w: %v is outside the representable range", ErrUTCConversion, t)
	}
	whole := math.Floor(sec)
	nsec := math.Round((sec - whole) * 1e9)
	return time.Unix(int64(whole), int64(nsec)).UTC(), nil
}
