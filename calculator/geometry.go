package calculator

import "rothermal/model"

// ArealDensity is the mass per area: density * thickness + additive weight.
func ArealDensity(density, thickness, additive float64) float64 {
	return density*thickness + additive
}

// NormalizeGeometry returns a copy of layer with its areal density set and the
// gap-filled series converted to installed-thickness resistances. The input
// series is taken from layer.Trace.Filled, falling back to layer.Raw.
func NormalizeGeometry(layer model.Layer) model.Layer {
	out := layer
	out.ArealDensity = ArealDensity(layer.Density, layer.Thickness, layer.AdditiveArealWeight)

	src := layer.Trace.Filled
	if src == nil {
		src = layer.Raw
	}
	out.Trace.Normalized = AdjustToHeight(layer.Thickness*layer.Portion, src)
	return out
}

// AdjustToHeight converts the specified insulance constant of every sample into
// an absolute resistance for height. A zero resistance means "no contribution"
// and is left untouched.
func AdjustToHeight(height float64, series model.Series) model.Series {
	out := series.Clone()
	for i := range out {
		if out[i].Rth != 0 {
			out[i].Rth = height / out[i].Rth * 1000
		}
	}
	return out
}
