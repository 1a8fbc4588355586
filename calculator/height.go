package calculator

import (
	"fmt"

	"rothermal/model"
)

// HeightFactor is the position of h between the two stored thicknesses.
// ok is false when both variants have the same thickness.
func HeightFactor(min, max model.Variant, h float64) (factor float64, ok bool) {
	span := max.Thickness - min.Thickness
	if span == 0 {
		return 0, false
	}
	return (h - min.Thickness) / span, true
}

// InterpolateHeight returns the variant at thickness h, blended between the
// stored min and max variants. Factors inside the snap band of opts return a
// copy of the nearest stored variant.
func InterpolateHeight(min, max model.Variant, h float64, opts Options) (model.Variant, error) {
	return interpolateHeight(min, max, h, min, opts)
}

// interpolateHeight keeps the emissivity and layers of base, the variant the
// result replaces.
func interpolateHeight(min, max model.Variant, h float64, base model.Variant, opts Options) (model.Variant, error) {
	if len(min.Series) != len(max.Series) {
		return model.Variant{}, fmt.Errorf("height interpolation: min has %d samples, max has %d", len(min.Series), len(max.Series))
	}
	f, ok := HeightFactor(min, max, h)
	switch {
	case !ok:
		return base.Clone(), nil
	case f <= opts.SnapLow:
		return min.Clone(), nil
	case f >= opts.SnapHigh:
		return max.Clone(), nil
	}

	out := base.Clone()
	out.Thickness = (max.Thickness-min.Thickness)*f + min.Thickness
	out.ArealDensity = (max.ArealDensity-min.ArealDensity)*f + min.ArealDensity
	for i := range out.Series {
		e := out.Series[i].E
		out.Series[i].Data = min.Series[i].Lerp(max.Series[i].Data, f)
		out.Series[i].E = e
	}
	return out, nil
}

// ResizeAssembly applies a part entry's height bounds to asm. +Inf for the min
// bound means "use the max variant", -Inf for the max bound "use the min
// variant"; the opposite infinities keep the stored variant. Both bounds are
// computed from the stored variants of asm, which is not modified.
func ResizeAssembly(asm model.Assembly, heightMin, heightMax float64, opts Options) (model.Assembly, error) {
	out := asm.Clone()
	var err error

	switch {
	case model.IsMaxSentinel(heightMin):
		out.Min = asm.Max.Clone()
	case model.IsMinSentinel(heightMin):
	default:
		if out.Min, err = interpolateHeight(asm.Min, asm.Max, heightMin, asm.Min, opts); err != nil {
			return model.Assembly{}, fmt.Errorf("%s min: %w", asm.Name, err)
		}
	}

	switch {
	case model.IsMinSentinel(heightMax):
		out.Max = asm.Min.Clone()
	case model.IsMaxSentinel(heightMax):
	default:
		if out.Max, err = interpolateHeight(asm.Min, asm.Max, heightMax, asm.Max, opts); err != nil {
			return model.Assembly{}, fmt.Errorf("%s max: %w", asm.Name, err)
		}
	}
	return out, nil
}
