package writer

import (
	"fmt"
	"io"

	"rothermal/model"
)

func sampleAt(s model.Series, i int) model.Data {
	if i < 0 || i >= len(s) {
		return model.Data{}
	}
	return s[i].Data
}

type preset struct {
	name, description string
	maxTemp           float64
	emissive          float64
	absorptive        float64
	heightMin         float64
	massMin           float64
	cpMin             float64
	insulanceMin      float64
	heightMax         float64
	massMax           float64
	cpMax             float64
	insulanceMax      float64
	ablator           bool
	costPerArea       float64
}

func (p preset) write(out io.Writer) error {
	_, err := fmt.Fprintf(out, `ROThermal_PRESET
{
    name = %s
    description = %s
    type = Skin

    skinMaxTemp = %s
    emissiveConstant = %s
    absorptiveConstant = %s

    skinHeightMin = %.4f
    skinMassPerArea = %s
    skinSpecificHeatCapacity = %s
    thermalInsulance = %s

    skinHeightMax = %.4f
    skinMassPerAreaMax = %s
    skinSpecificHeatCapacityMax = %s
    thermalInsulanceMax = %s

    disableModAblator = %t
    costPerArea = %s
}
`,
		p.name, p.description,
		formatFloat(p.maxTemp), formatFloat(p.emissive), formatFloat(p.absorptive),
		p.heightMin, formatFloat(p.massMin), formatFloat(p.cpMin), formatFloat(p.insulanceMin),
		p.heightMax, formatFloat(p.massMax), formatFloat(p.cpMax), formatFloat(p.insulanceMax),
		p.ablator, formatFloat(p.costPerArea),
	)
	return err
}

// assemblyPreset writes the cfg block of an assembly followed by its layer
// listing. Insulance is the summed resistance at the peak row.
func assemblyPreset(out io.Writer, asm model.Assembly) error {
	idx := peakIndex(asm.Min.Series, asm.Temperature)
	lo, hi := sampleAt(asm.Min.Series, idx), sampleAt(asm.Max.Series, idx)
	p := preset{
		name:         asm.Name,
		description:  asm.Description,
		maxTemp:      asm.Temperature,
		emissive:     lo.E,
		absorptive:   asm.AbsorptionConstant,
		heightMin:    asm.Min.Thickness,
		massMin:      asm.Min.ArealDensity,
		cpMin:        lo.Cp,
		insulanceMin: lo.Rth,
		heightMax:    asm.Max.Thickness,
		massMax:      asm.Max.ArealDensity,
		cpMax:        hi.Cp,
		insulanceMax: hi.Rth,
		ablator:      asm.HasAblator,
		costPerArea:  asm.CostPerArea,
	}
	if err := p.write(out); err != nil {
		return err
	}
	for _, v := range []struct {
		title  string
		layers []model.Layer
	}{{"Min", asm.Min.Layers}, {"Max", asm.Max.Layers}} {
		if _, err := fmt.Fprintf(out, "// %s:\n// Segment, Height\n", v.title); err != nil {
			return err
		}
		for _, l := range v.layers {
			if _, err := fmt.Fprintf(out, "// %s, %s\n", l.Name, formatFloat(l.Thickness)); err != nil {
				return err
			}
		}
	}
	return nil
}

// partPreset writes the cfg block of a part. The stored part resistance is
// 1/sum(R), the cfg carries its inverse.
func partPreset(out io.Writer, part model.Part) error {
	idx := peakIndex(part.SeriesMin, part.Temperature)
	lo, hi := sampleAt(part.SeriesMin, idx), sampleAt(part.SeriesMax, idx)
	p := preset{
		name:         part.Name,
		description:  part.Description,
		maxTemp:      part.Temperature,
		emissive:     lo.E,
		absorptive:   part.AbsorptionConstant,
		heightMin:    part.ThicknessMin,
		massMin:      part.ArealDensityMin,
		cpMin:        lo.Cp,
		insulanceMin: inverse(lo.Rth),
		heightMax:    part.ThicknessMax,
		massMax:      part.ArealDensityMax,
		cpMax:        hi.Cp,
		insulanceMax: inverse(hi.Rth),
		ablator:      part.HasAblator,
		costPerArea:  part.CostPerArea,
	}
	if err := p.write(out); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "// Segment, Portion, Min Height, Max Height"); err != nil {
		return err
	}
	for _, c := range part.Components {
		if _, err := fmt.Fprintf(out, "// %s, %s, %s, %s\n", c.Assembly.Name, formatFloat(c.Portion),
			formatFloat(c.Assembly.Min.Thickness), formatFloat(c.Assembly.Max.Thickness)); err != nil {
			return err
		}
	}
	return nil
}
