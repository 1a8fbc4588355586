package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"rothermal/model"
)

// TemperatureMultiplier stretches a component's temperature domain onto its
// parent's when the component peaks lower than the parent.
func TemperatureMultiplier(parentPeak, componentPeak, eq float64) float64 {
	if componentPeak < parentPeak && componentPeak != eq {
		return (parentPeak - eq) / (componentPeak - eq)
	}
	return 1
}

// MapTemperatures expresses series on the parent's temperature axis, keeping
// the component's own temperature on every sample.
func MapTemperatures(parentPeak, componentPeak, eq float64, series model.Series) model.MappedSeries {
	m := TemperatureMultiplier(parentPeak, componentPeak, eq)
	out := make(model.MappedSeries, len(series))
	for i, s := range series {
		out[i] = model.MappedSample{
			Parent: (s.Temperature-eq)*m + eq,
			Data:   s.Data,
			Own:    s.Temperature,
		}
	}
	return out
}

// MapToGrid maps series onto the parent axis and resamples it on grid.
func MapToGrid(parentPeak, componentPeak, eq float64, series model.Series, grid model.Grid) (model.MappedSeries, error) {
	if len(series) == 0 {
		return nil, model.ErrEmptySeries
	}
	return Resample(MapTemperatures(parentPeak, componentPeak, eq, series), grid)
}

// Resample returns exactly one sample per grid point. Below the mapped domain
// the first sample's data is held and its own temperature scaled with the grid
// point, above the domain the same is done with the last sample, inside it
// data and own temperature are interpolated linearly.
func Resample(mapped model.MappedSeries, grid model.Grid) (model.MappedSeries, error) {
	if len(mapped) == 0 {
		return nil, model.ErrEmptySeries
	}
	in, err := newMappedInterpolator(mapped)
	if err != nil {
		return nil, err
	}

	first, last := mapped[0], mapped[len(mapped)-1]
	out := make(model.MappedSeries, len(grid))
	for i, g := range grid {
		switch {
		case g < first.Parent:
			out[i] = model.MappedSample{Parent: g, Data: first.Data, Own: scaleOwn(first, g)}
		case g > last.Parent:
			out[i] = model.MappedSample{Parent: g, Data: last.Data, Own: scaleOwn(last, g)}
		default:
			out[i] = in.at(g)
		}
	}
	return out, nil
}

func scaleOwn(s model.MappedSample, g float64) float64 {
	if s.Parent == 0 {
		return s.Own
	}
	return s.Own * g / s.Parent
}

// mappedInterpolator fits one piecewise linear function per channel over the
// parent temperature axis.
type mappedInterpolator struct {
	single *model.MappedSample
	cp     interp.PiecewiseLinear
	rth    interp.PiecewiseLinear
	e      interp.PiecewiseLinear
	own    interp.PiecewiseLinear
}

func newMappedInterpolator(mapped model.MappedSeries) (*mappedInterpolator, error) {
	if len(mapped) == 1 {
		s := mapped[0]
		return &mappedInterpolator{single: &s}, nil
	}
	n := len(mapped)
	xs := make([]float64, n)
	cp := make([]float64, n)
	rth := make([]float64, n)
	e := make([]float64, n)
	own := make([]float64, n)
	for i, s := range mapped {
		xs[i], cp[i], rth[i], e[i], own[i] = s.Parent, s.Cp, s.Rth, s.E, s.Own
	}

	in := &mappedInterpolator{}
	fits := []struct {
		pl *interp.PiecewiseLinear
		ys []float64
	}{{&in.cp, cp}, {&in.rth, rth}, {&in.e, e}, {&in.own, own}}
	for _, f := range fits {
		if err := f.pl.Fit(xs, f.ys); err != nil {
			return nil, fmt.Errorf("resample: %w", err)
		}
	}
	return in, nil
}

func (in *mappedInterpolator) at(g float64) model.MappedSample {
	if in.single != nil {
		s := *in.single
		s.Parent = g
		return s
	}
	return model.MappedSample{
		Parent: g,
		Data: model.Data{
			Cp:  in.cp.Predict(g),
			Rth: in.rth.Predict(g),
			E:   in.e.Predict(g),
		},
		Own: in.own.Predict(g),
	}
}
