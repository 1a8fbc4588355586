package calculator

import (
	"errors"

	"rothermal/model"
)

var ErrZeroAssemblyDensity = errors.New("assembly areal density is 0")

// TemperatureRatio is (own-eq)/(parent-eq), 1 when both sit at the calibration point.
func TemperatureRatio(own, parent, eq float64) float64 {
	if parent == eq {
		return 1
	}
	return (own - eq) / (parent - eq)
}

// WeightByDensity scales the capacity channel by the segment's mass fraction
// of the assembly and by its own/parent temperature ratio.
func WeightByDensity(assemblyDensity, segmentDensity, eq float64, mapped model.MappedSeries) (model.MappedSeries, error) {
	if assemblyDensity == 0 {
		return nil, ErrZeroAssemblyDensity
	}
	frac := segmentDensity / assemblyDensity
	out := mapped.Clone()
	for i := range out {
		out[i].Cp *= TemperatureRatio(out[i].Own, out[i].Parent, eq) * frac
	}
	return out, nil
}
