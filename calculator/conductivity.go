package calculator

import (
	"math"

	"rothermal/model"
)

type depthStep struct {
	own float64
	k   float64 // conductivity
	d   float64 // flux weight
	cp  float64
}

// AverageAcrossSegment replaces every sample's resistance and capacity by a
// depth weighted average over the own-temperature span [own*cold/hot, own].
//
// The reference sample is the first one whose own temperature is within
// window of the hot side. Without it, or when its resistance is 0, the input is
// returned unchanged.
func AverageAcrossSegment(length float64, mapped model.MappedSeries, hotSide, coldSide, window float64) model.MappedSeries {
	ref, ok := referenceSample(mapped, hotSide, window)
	if !ok || ref.Rth == 0 || hotSide == 0 {
		return mapped.Clone()
	}

	tempFrac := coldSide / hotSide
	kRef := length / ref.Rth * 1000
	qRef := ref.Own / kRef // d_ref = 1

	// q = T * d / k  ->  d = q * k / T
	steps := make([]depthStep, len(mapped))
	for i, s := range mapped {
		step := depthStep{own: s.Own, cp: s.Cp}
		if s.Rth != 0 && s.Own > 0 {
			step.k = length / s.Rth * 1000
			step.d = qRef * step.k / s.Own
		}
		steps[i] = step
	}

	out := mapped.Clone()
	for n := range out {
		var rth, cp, dSum float64
		lower, upper := steps[n].own*tempFrac, steps[n].own
		for _, st := range steps {
			if !usable(st) || st.own < lower || st.own > upper {
				continue
			}
			rth += st.d / st.k * 1000
			cp += st.cp * st.d
			dSum += st.d
		}
		if dSum == 0 {
			continue
		}
		out[n].Rth = rth / dSum * length
		out[n].Cp = cp / dSum
	}
	return out
}

func referenceSample(mapped model.MappedSeries, hotSide, window float64) (model.MappedSample, bool) {
	for _, s := range mapped {
		if hotSide <= s.Own+window && hotSide >= s.Own-window {
			return s, true
		}
	}
	return model.MappedSample{}, false
}

func usable(st depthStep) bool {
	return st.d > 0 && st.k > 0 && !math.IsInf(st.d, 0) && !math.IsNaN(st.d) && !math.IsInf(st.k, 0)
}
