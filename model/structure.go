package model

import (
	"encoding/json"
	"math"
)

// LayerTrace keeps every stage output of one layer for the debug dump.
type LayerTrace struct {
	Filled     Series       `json:"filled,omitempty"`
	Normalized Series       `json:"normalized,omitempty"`
	Mapped     MappedSeries `json:"mapped,omitempty"`
	Averaged   MappedSeries `json:"averaged,omitempty"`
	Weighted   MappedSeries `json:"weighted,omitempty"`
}

// Layer is one material instance inside an assembly.
type Layer struct {
	Name                string  `json:"name"`
	Path                string  `json:"path"`
	Portion             float64 `json:"portion"`   // area fraction, 0-1
	Thickness           float64 `json:"thickness"` // installed thickness
	HotSide             float64 `json:"hot_side"`  // hot side temperature
	ColdSide            float64 `json:"cold_side"` // cold side temperature
	MaxTemperature      float64 `json:"max_temperature"`
	Density             float64 `json:"density"`
	AdditiveArealWeight float64 `json:"additive_areal_weight"`
	ArealDensity        float64 `json:"areal_density"`

	Raw   Series     `json:"raw,omitempty"`
	Trace LayerTrace `json:"trace"`
}

// PortionedArealDensity is the layer's mass per assembly area.
func (l Layer) PortionedArealDensity() float64 {
	return l.ArealDensity * l.Portion
}

// Variant is one thickness bound of an assembly.
type Variant struct {
	Layers       []Layer `json:"layers,omitempty"`
	ArealDensity float64 `json:"areal_density"`
	Thickness    float64 `json:"thickness"`
	Series       Series  `json:"series"`
}

func (v Variant) Clone() Variant {
	out := v
	out.Series = v.Series.Clone()
	if v.Layers != nil {
		out.Layers = make([]Layer, len(v.Layers))
		copy(out.Layers, v.Layers)
	}
	return out
}

// Assembly (structure / TPS) is a stack of layers, the first one is the hot side.
type Assembly struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Temperature        float64 `json:"temperature"` // peak operating temperature
	AbsorptionConstant float64 `json:"absorption_constant"`
	CostPerArea        float64 `json:"cost_per_area"`
	HasAblator         bool    `json:"has_ablator"`
	Min                Variant `json:"min"`
	Max                Variant `json:"max"`
}

func (a Assembly) Clone() Assembly {
	out := a
	out.Min = a.Min.Clone()
	out.Max = a.Max.Clone()
	return out
}

// PartEntry references an assembly by name. HeightMin/HeightMax may be
// +Inf / -Inf, see IsMaxSentinel and IsMinSentinel.
type PartEntry struct {
	Name      string  `json:"name"`
	Portion   float64 `json:"portion"`
	HeightMin float64 `json:"height_min"`
	HeightMax float64 `json:"height_max"`
}

// IsMaxSentinel reports the "max" keyword of a part file.
func IsMaxSentinel(h float64) bool { return math.IsInf(h, 1) }

// IsMinSentinel reports the "min" keyword of a part file.
func IsMinSentinel(h float64) bool { return math.IsInf(h, -1) }

// Component is a resolved part entry: the resized assembly and its data
// mapped onto the part's temperature axis.
type Component struct {
	Assembly  Assembly     `json:"assembly"`
	Portion   float64      `json:"portion"`
	MappedMin MappedSeries `json:"mapped_min"`
	MappedMax MappedSeries `json:"mapped_max"`
}

// Part is a weighted mixture of assemblies.
type Part struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Temperature        float64     `json:"temperature"`
	AbsorptionConstant float64     `json:"absorption_constant"`
	CostPerArea        float64     `json:"cost_per_area"`
	HasAblator         bool        `json:"has_ablator"`
	Entries            []PartEntry `json:"entries"`
	Components         []Component `json:"components,omitempty"`

	ArealDensityMin float64 `json:"areal_density_min"`
	ArealDensityMax float64 `json:"areal_density_max"`
	ThicknessMin    float64 `json:"thickness_min"`
	ThicknessMax    float64 `json:"thickness_max"`
	SeriesMin       Series  `json:"series_min"`
	SeriesMax       Series  `json:"series_max"`
}

type partEntryJSON struct {
	Name      string      `json:"name"`
	Portion   float64     `json:"portion"`
	HeightMin interface{} `json:"height_min"`
	HeightMax interface{} `json:"height_max"`
}

// MarshalJSON writes the infinite sentinels back as the "max"/"min" keywords,
// encoding/json rejects infinities.
func (e PartEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(partEntryJSON{
		Name:      e.Name,
		Portion:   e.Portion,
		HeightMin: heightValue(e.HeightMin),
		HeightMax: heightValue(e.HeightMax),
	})
}

func heightValue(h float64) interface{} {
	switch {
	case IsMaxSentinel(h):
		return "max"
	case IsMinSentinel(h):
		return "min"
	}
	return h
}
