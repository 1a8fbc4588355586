package calculator

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"rothermal/model"
)

var (
	ErrNoLayers     = errors.New("assembly has no layers")
	ErrNoComponents = errors.New("part has no assemblies")
)

// LengthError reports a series that is not aligned to the reference grid.
type LengthError struct {
	Name string
	Got  int
	Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: series has %d samples, reference grid has %d", e.Name, e.Got, e.Want)
}

// AggregateAssembly sums the weighted layer series index-wise. Capacities and
// resistances are added, emissivity is taken from the first layer (declared
// order) that reports a positive value.
func AggregateAssembly(layers []model.Layer, grid model.Grid) (arealDensity, thickness float64, series model.Series, err error) {
	if len(layers) == 0 {
		return 0, 0, nil, ErrNoLayers
	}
	densities := make([]float64, len(layers))
	thicknesses := make([]float64, len(layers))
	for i, l := range layers {
		if len(l.Trace.Weighted) != len(grid) {
			return 0, 0, nil, &LengthError{Name: l.Name, Got: len(l.Trace.Weighted), Want: len(grid)}
		}
		densities[i] = l.PortionedArealDensity()
		thicknesses[i] = l.Thickness
	}

	series = make(model.Series, len(grid))
	for i, temp := range grid {
		var d model.Data
		for _, l := range layers {
			w := l.Trace.Weighted[i]
			d.Cp += w.Cp
			d.Rth += w.Rth
			if d.E <= 0 {
				d.E = w.E
			}
		}
		series[i] = model.Sample{Temperature: temp, Data: d}
	}
	return floats.Sum(densities), floats.Sum(thicknesses), series, nil
}

// PartProfile is the aggregate of a part's components.
type PartProfile struct {
	ArealDensityMin float64
	ArealDensityMax float64
	ThicknessMin    float64
	ThicknessMax    float64
	SeriesMin       model.Series
	SeriesMax       model.Series
}

// AggregatePart combines the components' mapped series. Capacity is weighted
// by mass fraction, portion and the own/parent temperature ratio; resistance
// and emissivity by portion alone. The stored resistance is 1/sum, the
// temperature axis is shifted by opts.OutputOffset.
func AggregatePart(components []model.Component, grid model.Grid, opts Options) (PartProfile, error) {
	var p PartProfile
	if len(components) == 0 {
		return p, ErrNoComponents
	}

	thickMin := make([]float64, len(components))
	thickMax := make([]float64, len(components))
	for i, c := range components {
		if len(c.MappedMin) != len(grid) {
			return p, &LengthError{Name: c.Assembly.Name + " (min)", Got: len(c.MappedMin), Want: len(grid)}
		}
		if len(c.MappedMax) != len(grid) {
			return p, &LengthError{Name: c.Assembly.Name + " (max)", Got: len(c.MappedMax), Want: len(grid)}
		}
		p.ArealDensityMin += c.Assembly.Min.ArealDensity * c.Portion
		p.ArealDensityMax += c.Assembly.Max.ArealDensity * c.Portion
		thickMin[i] = c.Assembly.Min.Thickness
		thickMax[i] = c.Assembly.Max.Thickness
	}
	if p.ArealDensityMin == 0 || p.ArealDensityMax == 0 {
		return p, ErrZeroAssemblyDensity
	}
	p.ThicknessMin = floats.Min(thickMin)
	p.ThicknessMax = floats.Max(thickMax)

	p.SeriesMin = make(model.Series, len(grid))
	p.SeriesMax = make(model.Series, len(grid))
	for i, temp := range grid {
		var lo, hi partAccumulator
		for _, c := range components {
			lo.add(c.MappedMin[i], c.Portion, c.Assembly.Min.ArealDensity/p.ArealDensityMin, opts.Equalized)
			hi.add(c.MappedMax[i], c.Portion, c.Assembly.Max.ArealDensity/p.ArealDensityMax, opts.Equalized)
		}
		p.SeriesMin[i] = lo.sample(temp - opts.OutputOffset)
		p.SeriesMax[i] = hi.sample(temp - opts.OutputOffset)
	}
	return p, nil
}

type partAccumulator struct {
	cp, rth, e float64
}

func (a *partAccumulator) add(s model.MappedSample, portion, massFrac, eq float64) {
	a.cp += s.Cp * massFrac * portion * TemperatureRatio(s.Own, s.Parent, eq)
	a.rth += portion * s.Rth
	a.e += portion * s.E
}

func (a *partAccumulator) sample(temp float64) model.Sample {
	var rth float64
	if a.rth != 0 {
		rth = 1 / a.rth
	}
	return model.Sample{Temperature: temp, Data: model.Data{Cp: a.cp, Rth: rth, E: a.e}}
}
