package tempoch

// To converts t to scale Dst. The value is mapped to a Julian Date in
// TT by the source scale and from there onto Dst, so each pair of
// scales costs two steps and no pair needs a dedicated rule.
//
// To never fails. A non-finite input (possible only through
// NewUnchecked) yields a non-finite output.
func To[Dst, Src Scale](t Time[Src]) Time[Dst] {
	var src Src
	var dst Dst
	return Time[Dst]{dst.fromJDTT(src.toJDTT(t.v))}
}

// ConvertValue is the run-time form of To, for callers that hold the
// scales as ScaleIDs. It panics if either scale is invalid.
func ConvertValue(from, to ScaleID, v float64) float64 {
	return scaleTable[to].fromJDTT(scaleTable[from].toJDTT(v))
}

// ToJulianDate maps a value on the given scale to a Julian Date in TT.
func ToJulianDate(from ScaleID, v float64) float64 { return scaleTable[from].toJDTT(v) }
