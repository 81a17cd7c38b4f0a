package tempoch

import "errors"

// A Status is a stable numeric error code for callers across a foreign
// boundary (C ABI, RPC) that cannot inspect Go errors. Codes are never
// renumbered.
type Status int32

const (
	StatusOK Status = iota
	StatusNonFinite
	StatusInvalidInterval
	StatusInvalidPeriodList
	StatusUTCConversionFailed
	StatusNoIntersection
	StatusUnknownScale
	StatusUnknown Status = 255
)

var statusNames = map[Status]string{
	StatusOK:                  "ok",
	StatusNonFinite:           "non-finite value",
	StatusInvalidInterval:     "invalid interval",
	StatusInvalidPeriodList:   "invalid period list",
	StatusUTCConversionFailed: "UTC conversion failed",
	StatusNoIntersection:      "no intersection",
	StatusUnknownScale:        "unknown scale",
	StatusUnknown:             "unknown error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[StatusUnknown]
}

// StatusOf classifies err. A nil error is StatusOK.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNonFinite):
		return StatusNonFinite
	case errors.Is(err, ErrInvalidInterval):
		return StatusInvalidInterval
	case errors.Is(err, ErrInvalidPeriodList):
		return StatusInvalidPeriodList
	case errors.Is(err, ErrUTCConversion):
		return StatusUTCConversionFailed
	case errors.Is(err, ErrNoIntersection):
		return StatusNoIntersection
	case errors.Is(err, ErrUnknownScale):
		return StatusUnknownScale
	}
	return StatusUnknown
}
