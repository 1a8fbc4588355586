package reader

import (
	"fmt"
	"path/filepath"

	"rothermal/model"
)

// ReadAssembly reads a structure file and the material file of every layer.
//
// "Min" and "Max" rows switch the variant the following layers belong to.
// "Top Layer" rows are placed before the "Layer" rows of the same variant.
// Material paths are taken relative to the structure file unless absolute.
// Name and Temperature are required.
func ReadAssembly(path string) (model.Assembly, error) {
	records, err := readRecords(path)
	if err != nil {
		return model.Assembly{}, err
	}

	var (
		asm            model.Assembly
		readMax        bool
		top, rest      [2][]model.Layer
		hasTemperature bool
	)
	for _, rec := range records {
		switch cell(rec, 0) {
		case "Name":
			asm.Name = cell(rec, 1)
		case "Description":
			asm.Description = cell(rec, 1)
		case "Temperature":
			if asm.Temperature, err = parseFloat(path, "Temperature", rec, 1); err != nil {
				return model.Assembly{}, err
			}
			hasTemperature = true
		case "AbsorbationConstant":
			if asm.AbsorptionConstant, err = parseFloat(path, "AbsorbationConstant", rec, 1); err != nil {
				return model.Assembly{}, err
			}
		case "CostPerArea":
			if asm.CostPerArea, err = parseFloat(path, "CostPerArea", rec, 1); err != nil {
				return model.Assembly{}, err
			}
		case "HasAblator":
			if asm.HasAblator, err = parseBool(path, "HasAblator", rec, 1); err != nil {
				return model.Assembly{}, err
			}
		case "Min":
			readMax = false
		case "Max":
			readMax = true
		case "Top Layer", "Layer":
			l, err := parseLayer(path, rec)
			if err != nil {
				return model.Assembly{}, err
			}
			v := 0
			if readMax {
				v = 1
			}
			if cell(rec, 0) == "Top Layer" {
				top[v] = append(top[v], l)
			} else {
				rest[v] = append(rest[v], l)
			}
		}
	}
	if asm.Name == "" {
		return model.Assembly{}, &ParseError{File: path, Field: "Name", Err: ErrMissing}
	}
	if !hasTemperature || asm.Temperature == 0 {
		return model.Assembly{}, &ParseError{File: path, Field: "Temperature", Err: ErrMissing}
	}

	asm.Min.Layers = append(top[0], rest[0]...)
	asm.Max.Layers = append(top[1], rest[1]...)

	materials := map[string]Material{}
	for _, layers := range [][]model.Layer{asm.Min.Layers, asm.Max.Layers} {
		for i := range layers {
			if err := attachMaterial(&layers[i], path, materials); err != nil {
				return model.Assembly{}, err
			}
		}
	}
	return asm, nil
}

func parseLayer(file string, rec []string) (model.Layer, error) {
	var (
		l   model.Layer
		err error
	)
	if l.Path = cell(rec, 1); l.Path == "" {
		return l, &ParseError{File: file, Field: "layer path", Err: ErrMissing}
	}
	field := func(name string) string { return fmt.Sprintf("%s (%s)", name, l.Path) }
	if l.Portion, err = parseFloat(file, field("Portion"), rec, 2); err != nil {
		return l, err
	}
	if l.Thickness, err = parseFloat(file, field("Thickness"), rec, 3); err != nil {
		return l, err
	}
	if l.HotSide, err = parseFloat(file, field("Temp Hot Side"), rec, 4); err != nil {
		return l, err
	}
	if l.ColdSide, err = parseFloat(file, field("Temp Cold Side"), rec, 5); err != nil {
		return l, err
	}
	return l, nil
}

func attachMaterial(l *model.Layer, structurePath string, cache map[string]Material) error {
	p := l.Path
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(structurePath), p)
	}
	m, ok := cache[p]
	if !ok {
		var err error
		if m, err = ReadMaterial(p); err != nil {
			return fmt.Errorf("%s: layer %s: %w", structurePath, l.Path, err)
		}
		cache[p] = m
	}
	l.Path = p
	l.Name = m.Name
	l.MaxTemperature = m.MaxTemperature
	l.Density = m.Density
	l.AdditiveArealWeight = m.AdditiveArealWeight
	l.Raw = m.Series.Clone()
	return nil
}
