package reader

import (
	"fmt"
	"math"

	"rothermal/model"
)

// ReadPart reads a part file. Every "Structure" row references an assembly
// by name with its portion and height bounds; the keywords "max" and "min"
// are stored as +Inf and -Inf. Name and Temperature are required.
func ReadPart(path string) (model.Part, error) {
	records, err := readRecords(path)
	if err != nil {
		return model.Part{}, err
	}

	var (
		part           model.Part
		hasTemperature bool
	)
	for _, rec := range records {
		switch cell(rec, 0) {
		case "Name":
			part.Name = cell(rec, 1)
		case "Description":
			part.Description = cell(rec, 1)
		case "Temperature":
			if part.Temperature, err = parseFloat(path, "Temperature", rec, 1); err != nil {
				return model.Part{}, err
			}
			hasTemperature = true
		case "AbsorbationConstant":
			if part.AbsorptionConstant, err = parseFloat(path, "AbsorbationConstant", rec, 1); err != nil {
				return model.Part{}, err
			}
		case "CostPerArea":
			if part.CostPerArea, err = parseFloat(path, "CostPerArea", rec, 1); err != nil {
				return model.Part{}, err
			}
		case "HasAblator":
			if part.HasAblator, err = parseBool(path, "HasAblator", rec, 1); err != nil {
				return model.Part{}, err
			}
		case "Structure":
			e, err := parseEntry(path, rec)
			if err != nil {
				return model.Part{}, err
			}
			part.Entries = append(part.Entries, e)
		}
	}
	if part.Name == "" {
		return model.Part{}, &ParseError{File: path, Field: "Name", Err: ErrMissing}
	}
	if !hasTemperature {
		return model.Part{}, &ParseError{File: path, Field: "Temperature", Err: ErrMissing}
	}
	return part, nil
}

func parseEntry(file string, rec []string) (model.PartEntry, error) {
	var (
		e   model.PartEntry
		err error
	)
	if e.Name = cell(rec, 1); e.Name == "" {
		return e, &ParseError{File: file, Field: "Structure name", Err: ErrMissing}
	}
	field := func(name string) string { return fmt.Sprintf("%s (%s)", name, e.Name) }
	if e.Portion, err = parseFloat(file, field("Portion"), rec, 2); err != nil {
		return e, err
	}
	if e.HeightMin, err = parseHeight(file, field("Height Min"), rec, 3); err != nil {
		return e, err
	}
	if e.HeightMax, err = parseHeight(file, field("Height Max"), rec, 4); err != nil {
		return e, err
	}
	return e, nil
}

func parseHeight(file, field string, rec []string, i int) (float64, error) {
	switch cell(rec, i) {
	case "max":
		return math.Inf(1), nil
	case "min":
		return math.Inf(-1), nil
	}
	return parseFloat(file, field, rec, i)
}
