package swipe

import "math"

// EffectProgress maps a raw drag fraction to effect progress. Below
// gap−band the mapping is the identity; inside the band it follows a
// logarithmic curve that reaches gap exactly at raw = gap; beyond that the
// result stays at gap.
//
// The curve is log10(1 + 9·local) rather than log10(1 + local): the factor
// rescales it so that it ends at gap instead of approaching it.
func EffectProgress(raw, gap, band float64) float64 {
	start := gap - band
	if raw <= start {
		return raw
	}
	if band <= 0 {
		return gap
	}
	local := (raw - start) / band
	rate := math.Log10(1 + 9*local)
	if rate > 1 {
		return gap
	}
	return start + band*rate
}
