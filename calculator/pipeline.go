package calculator

import (
	log "github.com/sirupsen/logrus"

	"rothermal/model"
)

// Builder runs the forward pipeline for one reference grid.
// Every method returns new records, inputs are never modified.
type Builder struct {
	grid   model.Grid
	opts   Options
	logger *log.Entry
}

func NewBuilder(grid model.Grid, opts Options, logger *log.Entry) (*Builder, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Builder{grid: grid, opts: opts, logger: logger}, nil
}

func (b *Builder) Grid() model.Grid { return b.grid }

func (b *Builder) Options() Options { return b.opts }

// BuildLayer runs gap filling, geometry normalization, grid mapping and
// segment averaging for a layer of an assembly peaking at asmTemp.
func (b *Builder) BuildLayer(asmName string, layer model.Layer, asmTemp float64) (model.Layer, error) {
	fields := log.Fields{"assembly": asmName, "layer": layer.Name}

	filled, empty, err := fillGaps(layer.Raw)
	if err != nil {
		return model.Layer{}, &StageError{Owner: asmName, Item: layer.Name, Stage: "fill gaps", Err: err}
	}
	for _, c := range empty {
		b.logger.WithFields(fields).WithField("channel", c.String()).Warn("channel has no measured value, left at 0")
	}
	if layer.MaxTemperature > 0 && layer.HotSide > layer.MaxTemperature {
		b.logger.WithFields(fields).WithFields(log.Fields{
			"hotSide": layer.HotSide,
			"limit":   layer.MaxTemperature,
		}).Warn("hot side above material temperature limit")
	}

	out := layer
	out.Trace = model.LayerTrace{Filled: filled}
	out = NormalizeGeometry(out)

	mapped, err := MapToGrid(asmTemp, out.HotSide, b.opts.Equalized, out.Trace.Normalized, b.grid)
	if err != nil {
		return model.Layer{}, &StageError{Owner: asmName, Item: layer.Name, Stage: "map to grid", Err: err}
	}
	out.Trace.Mapped = mapped

	if ref, ok := referenceSample(mapped, out.HotSide, b.opts.ReferenceWindow); !ok || ref.Rth == 0 {
		b.logger.WithFields(fields).WithField("hotSide", out.HotSide).Debug("no reference resistance near hot side, segment not averaged")
	}
	out.Trace.Averaged = AverageAcrossSegment(out.Thickness, mapped, out.HotSide, out.ColdSide, b.opts.ReferenceWindow)

	b.logger.WithFields(fields).WithFields(log.Fields{
		"arealDensity": out.ArealDensity,
		"samples":      len(out.Raw),
	}).Debug("layer mapped")
	return out, nil
}

// BuildVariant builds every layer of one thickness variant and aggregates them.
func (b *Builder) BuildVariant(asmName string, layers []model.Layer, asmTemp float64) (model.Variant, error) {
	if len(layers) == 0 {
		return model.Variant{}, &StageError{Owner: asmName, Stage: "aggregate", Err: ErrNoLayers}
	}
	built := make([]model.Layer, len(layers))
	var total float64
	for i, l := range layers {
		bl, err := b.BuildLayer(asmName, l, asmTemp)
		if err != nil {
			return model.Variant{}, err
		}
		built[i] = bl
		total += bl.PortionedArealDensity()
	}

	for i := range built {
		w, err := WeightByDensity(total, built[i].PortionedArealDensity(), b.opts.Equalized, built[i].Trace.Averaged)
		if err != nil {
			return model.Variant{}, &StageError{Owner: asmName, Item: built[i].Name, Stage: "weight by density", Err: err}
		}
		built[i].Trace.Weighted = w
	}

	density, thickness, series, err := AggregateAssembly(built, b.grid)
	if err != nil {
		return model.Variant{}, &StageError{Owner: asmName, Stage: "aggregate", Err: err}
	}
	return model.Variant{Layers: built, ArealDensity: density, Thickness: thickness, Series: series}, nil
}

// BuildAssembly derives both thickness variants. A structure without max
// layers reuses its min layers.
func (b *Builder) BuildAssembly(asm model.Assembly) (model.Assembly, error) {
	out := asm
	maxLayers := asm.Max.Layers
	if len(maxLayers) == 0 {
		maxLayers = asm.Min.Layers
	}

	var err error
	if out.Min, err = b.BuildVariant(asm.Name, asm.Min.Layers, asm.Temperature); err != nil {
		return model.Assembly{}, err
	}
	if out.Max, err = b.BuildVariant(asm.Name, maxLayers, asm.Temperature); err != nil {
		return model.Assembly{}, err
	}

	b.logger.WithFields(log.Fields{
		"assembly":        asm.Name,
		"thicknessMin":    out.Min.Thickness,
		"thicknessMax":    out.Max.Thickness,
		"arealDensityMin": out.Min.ArealDensity,
		"arealDensityMax": out.Max.ArealDensity,
	}).Info("assembly built")
	return out, nil
}

// ResolvePart looks up, resizes and maps every assembly a part references.
// All missing names are reported together in an *UnresolvedError.
func (b *Builder) ResolvePart(part model.Part, assemblies map[string]model.Assembly) (model.Part, error) {
	var missing []string
	for _, e := range part.Entries {
		if _, ok := assemblies[e.Name]; !ok {
			missing = append(missing, e.Name)
		}
	}
	if len(missing) > 0 {
		return model.Part{}, &UnresolvedError{Part: part.Name, Names: missing}
	}

	out := part
	out.Components = make([]model.Component, 0, len(part.Entries))
	for _, e := range part.Entries {
		asm, err := ResizeAssembly(assemblies[e.Name], e.HeightMin, e.HeightMax, b.opts)
		if err != nil {
			return model.Part{}, &StageError{Owner: part.Name, Item: e.Name, Stage: "resize", Err: err}
		}
		mappedMin, err := MapToGrid(part.Temperature, asm.Temperature, b.opts.Equalized, asm.Min.Series, b.grid)
		if err != nil {
			return model.Part{}, &StageError{Owner: part.Name, Item: e.Name, Stage: "map min to grid", Err: err}
		}
		mappedMax, err := MapToGrid(part.Temperature, asm.Temperature, b.opts.Equalized, asm.Max.Series, b.grid)
		if err != nil {
			return model.Part{}, &StageError{Owner: part.Name, Item: e.Name, Stage: "map max to grid", Err: err}
		}
		out.Components = append(out.Components, model.Component{
			Assembly:  asm,
			Portion:   e.Portion,
			MappedMin: mappedMin,
			MappedMax: mappedMax,
		})
	}
	return out, nil
}

// BuildPart resolves part against the built assemblies and aggregates it.
func (b *Builder) BuildPart(part model.Part, assemblies map[string]model.Assembly) (model.Part, error) {
	out, err := b.ResolvePart(part, assemblies)
	if err != nil {
		return model.Part{}, err
	}
	profile, err := AggregatePart(out.Components, b.grid, b.opts)
	if err != nil {
		return model.Part{}, &StageError{Owner: part.Name, Stage: "aggregate", Err: err}
	}
	out.ArealDensityMin = profile.ArealDensityMin
	out.ArealDensityMax = profile.ArealDensityMax
	out.ThicknessMin = profile.ThicknessMin
	out.ThicknessMax = profile.ThicknessMax
	out.SeriesMin = profile.SeriesMin
	out.SeriesMax = profile.SeriesMax

	b.logger.WithFields(log.Fields{
		"part":            part.Name,
		"assemblies":      len(out.Components),
		"arealDensityMin": out.ArealDensityMin,
		"arealDensityMax": out.ArealDensityMax,
	}).Info("part built")
	return out, nil
}
