package tempoch

import (
	"fmt"
	"strings"
)

// Astronomical constants, in days unless noted.
const (
	J2000            = 2451545.0 // JD of 2000-01-01T12:00:00 TT
	JulianYear       = 365.25
	JulianCentury    = 36525.0
	JulianMillennium = 365250.0
	SecondsPerDay    = 86400.0
	UnixEpoch        = 2440587.5 // JD (UTC) of 1970-01-01T00:00:00

	mjdEpoch = 2400000.5

	ttMinusTAI   = 32.184 // seconds, exact by definition
	taiMinusGPS  = 19.0   // seconds
	gpsEpochJDTT = 2444244.5 + (taiMinusGPS+ttMinusTAI)/SecondsPerDay

	// IAU 2000 Resolution B1.9 and IAU 2006 Resolution B3.
	lG     = 6.969290134e-10
	lB     = 1.550519768e-8
	tdb0   = -6.55e-5 / SecondsPerDay
	epoch0 = 2443144.5003725 // 1977-01-01T00:00:32.184 TAI, as JD(TT)
)

// A Scale identifies a time scale. The set of scales is closed: only
// the marker types declared in this package implement it.
//
// Each scale maps its own day count onto a Julian Date in TT (the hub)
// and back. Every conversion is routed through the hub.
type Scale interface {
	ID() ScaleID
	toJDTT(v float64) float64
	fromJDTT(jd float64) float64
}

// Scale markers. The zero value is the only value.
type (
	// JD is the Julian Date on the TT axis.
	JD struct{}
	// JDE is the Julian Ephemeris Date. Numerically identical to JD;
	// the distinct type records that the value is an ephemeris argument.
	JDE struct{}
	// MJD is the Modified Julian Date, JD − 2400000.5.
	MJD struct{}
	// TT is Terrestrial Time, as a Julian Date.
	TT struct{}
	// TDB is Barycentric Dynamical Time, as a Julian Date.
	TDB struct{}
	// TAI is International Atomic Time, as a Julian Date.
	TAI struct{}
	// TCG is Geocentric Coordinate Time, as a Julian Date.
	TCG struct{}
	// TCB is Barycentric Coordinate Time, as a Julian Date.
	TCB struct{}
	// GPS is GPS time in days since 1980-01-06T00:00:00 UTC.
	GPS struct{}
	// UnixTime is days since 1970-01-01T00:00:00 UTC, counted on the
	// UTC axis: leap seconds are not days.
	UnixTime struct{}
	// UT is Universal Time (UT1), as a Julian Date.
	//
	// UT is linked to TT by ΔT, which is modelled (see DeltaT) rather
	// than observed, and the inverse solve evaluates ΔT at successive UT
	// estimates. The model is continuous across its regimes, so every TT
	// instant has a UT preimage. Conversions are accurate to the model,
	// not to IERS bulletins.
	UT struct{}
)

func (JD) ID() ScaleID                 { return ScaleJD }
func (JD) toJDTT(v float64) float64    { return v }
func (JD) fromJDTT(jd float64) float64 { return jd }

func (JDE) ID() ScaleID                 { return ScaleJDE }
func (JDE) toJDTT(v float64) float64    { return v }
func (JDE) fromJDTT(jd float64) float64 { return jd }

func (MJD) ID() ScaleID                 { return ScaleMJD }
func (MJD) toJDTT(v float64) float64    { return v + mjdEpoch }
func (MJD) fromJDTT(jd float64) float64 { return jd - mjdEpoch }

func (TT) ID() ScaleID                 { return ScaleTT }
func (TT) toJDTT(v float64) float64    { return v }
func (TT) fromJDTT(jd float64) float64 { return jd }

func (TAI) ID() ScaleID                 { return ScaleTAI }
func (TAI) toJDTT(v float64) float64    { return v + ttMinusTAI/SecondsPerDay }
func (TAI) fromJDTT(jd float64) float64 { return jd - ttMinusTAI/SecondsPerDay }

func (GPS) ID() ScaleID                 { return ScaleGPS }
func (GPS) toJDTT(v float64) float64    { return v + gpsEpochJDTT }
func (GPS) fromJDTT(jd float64) float64 { return jd - gpsEpochJDTT }

func (TDB) ID() ScaleID                 { return ScaleTDB }
func (TDB) toJDTT(v float64) float64    { return tdbToTT(v) }
func (TDB) fromJDTT(jd float64) float64 { return jd + float64(TDBMinusTT(jd))/SecondsPerDay }

// TT = TCG − L_G·(JD_TCG − T₀), inverted exactly.
func (TCG) ID() ScaleID                 { return ScaleTCG }
func (TCG) toJDTT(v float64) float64    { return v - lG*(v-epoch0) }
func (TCG) fromJDTT(jd float64) float64 { return epoch0 + (jd-epoch0)/(1-lG) }

// TDB = TCB − L_B·(JD_TCB − T₀) + TDB₀. The TDB leg delegates to the
// periodic series.
func (TCB) ID() ScaleID              { return ScaleTCB }
func (TCB) toJDTT(v float64) float64 { return tdbToTT(v - lB*(v-epoch0) + tdb0) }
func (TCB) fromJDTT(jd float64) float64 {
	tdb := TDB{}.fromJDTT(jd)
	return epoch0 + (tdb-tdb0-epoch0)/(1-lB)
}

func (UnixTime) ID() ScaleID { return ScaleUnix }
func (UnixTime) toJDTT(v float64) float64 {
	utc := v + UnixEpoch
	return utc + (float64(TAIMinusUTC(utc))+ttMinusTAI)/SecondsPerDay
}
func (UnixTime) fromJDTT(jd float64) float64 { return utcFromJDTT(jd) - UnixEpoch }

func (UT) ID() ScaleID { return ScaleUT }
func (UT) toJDTT(v float64) float64 {
	return v + float64(DeltaT(v))/SecondsPerDay
}
func (UT) fromJDTT(jd float64) float64 {
	ut := jd
	for i := 0; i < 3; i++ {
		ut = jd - float64(DeltaT(ut))/SecondsPerDay
	}
	return ut
}

// A ScaleID names a scale at run time, for callers (scripts, command
// lines, decoders) that cannot carry the scale in a type parameter.
type ScaleID uint8

const (
	ScaleJD ScaleID = iota
	ScaleJDE
	ScaleMJD
	ScaleTT
	ScaleTDB
	ScaleTAI
	ScaleTCG
	ScaleTCB
	ScaleGPS
	ScaleUnix
	ScaleUT
	numScales
)

var scaleTable = [numScales]struct {
	name       string
	toJDTT     func(float64) float64
	fromJDTT   func(float64) float64
	julianDate bool // value is a Julian Date, not a count from a civil epoch
}{
	ScaleJD:   {"JD", JD{}.toJDTT, JD{}.fromJDTT, true},
	ScaleJDE:  {"JDE", JDE{}.toJDTT, JDE{}.fromJDTT, true},
	ScaleMJD:  {"MJD", MJD{}.toJDTT, MJD{}.fromJDTT, false},
	ScaleTT:   {"TT", TT{}.toJDTT, TT{}.fromJDTT, true},
	ScaleTDB:  {"TDB", TDB{}.toJDTT, TDB{}.fromJDTT, true},
	ScaleTAI:  {"TAI", TAI{}.toJDTT, TAI{}.fromJDTT, true},
	ScaleTCG:  {"TCG", TCG{}.toJDTT, TCG{}.fromJDTT, true},
	ScaleTCB:  {"TCB", TCB{}.toJDTT, TCB{}.fromJDTT, true},
	ScaleGPS:  {"GPS", GPS{}.toJDTT, GPS{}.fromJDTT, false},
	ScaleUnix: {"UNIX", UnixTime{}.toJDTT, UnixTime{}.fromJDTT, false},
	ScaleUT:   {"UT", UT{}.toJDTT, UT{}.fromJDTT, true},
}

// Scales returns every scale, in declaration order.
func Scales() []ScaleID {
	ids := make([]ScaleID, numScales)
	for i := range ids {
		ids[i] = ScaleID(i)
	}
	return ids
}

func (id ScaleID) String() string {
	if id < numScales {
		return scaleTable[id].name
	}
	return fmt.Sprintf("ScaleID(%d)", uint8(id))
}

// Valid reports whether id names a scale.
func (id ScaleID) Valid() bool { return id < numScales }

// IsJulianDate reports whether values of this scale are Julian Dates
// (as opposed to day counts from MJD, GPS or Unix epochs).
func (id ScaleID) IsJulianDate() bool { return id.Valid() && scaleTable[id].julianDate }

// ParseScale returns the scale with the given label, ignoring case.
// "UNIX" and "UNIXTIME" both name UnixTime; "UT1" names UT.
func ParseScale(name string) (ScaleID, error) {
	switch up := strings.ToUpper(strings.TrimSpace(name)); up {
	case "UNIXTIME":
		return ScaleUnix, nil
	case "UT1":
		return ScaleUT, nil
	default:
		for i := range scaleTable {
			if scaleTable[i].name == up {
				return ScaleID(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

func label[S Scale]() string {
	var s S
	return s.ID().String()
}
