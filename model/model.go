package model

import (
	"errors"
	"fmt"
)

// Data holds the three thermal channels at one temperature point.
type Data struct {
	Cp  float64 `json:"cp"`  // heat capacity
	Rth float64 `json:"rth"` // thermal resistance
	E   float64 `json:"e"`   // emissivity
}

func (d Data) Add(o Data) Data {
	return Data{Cp: d.Cp + o.Cp, Rth: d.Rth + o.Rth, E: d.E + o.E}
}

func (d Data) Sub(o Data) Data {
	return Data{Cp: d.Cp - o.Cp, Rth: d.Rth - o.Rth, E: d.E - o.E}
}

func (d Data) Scale(f float64) Data {
	return Data{Cp: d.Cp * f, Rth: d.Rth * f, E: d.E * f}
}

// Lerp returns d + (o-d)*f on every channel.
func (d Data) Lerp(o Data, f float64) Data {
	return o.Sub(d).Scale(f).Add(d)
}

// Sample is one measured or derived temperature point.
type Sample struct {
	Temperature float64 `json:"temperature"`
	Data
}

// Series is ordered by strictly increasing temperature.
type Series []Sample

var (
	ErrNotAscending = errors.New("temperatures are not strictly increasing")
	ErrEmptySeries  = errors.New("series is empty")
)

func (s Series) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i := 1; i < len(s); i++ {
		if s[i].Temperature <= s[i-1].Temperature {
			return fmt.Errorf("%w at index %d (%v after %v)", ErrNotAscending, i, s[i].Temperature, s[i-1].Temperature)
		}
	}
	return nil
}

func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// MappedSample is a sample expressed on the parent's temperature axis.
// Own keeps the temperature the component itself reported.
type MappedSample struct {
	Parent float64 `json:"parent"`
	Data
	Own float64 `json:"own"`
}

type MappedSeries []MappedSample

func (m MappedSeries) Clone() MappedSeries {
	if m == nil {
		return nil
	}
	out := make(MappedSeries, len(m))
	copy(out, m)
	return out
}

// Grid is the reference temperature list every final series is aligned to.
type Grid []float64

func (g Grid) Validate() error {
	if len(g) == 0 {
		return errors.New("reference grid is empty")
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("reference grid: %w at index %d", ErrNotAscending, i)
		}
	}
	return nil
}
