package reader

import (
	"path/filepath"
	"strconv"
	"strings"

	"rothermal/model"
)

// Material is the content of a material file.
type Material struct {
	Name                string
	MaxTemperature      float64
	Density             float64
	AdditiveArealWeight float64
	Series              model.Series
}

// ReadMaterial reads a material file. Key rows (Name, Temperature Limit,
// Density) come first and Density is required. The "Temperature" row starts
// the data table of temperature, cp, R_th and e. Data cells that do not parse are read as 0,
// the "not measured" placeholder.
func ReadMaterial(path string) (Material, error) {
	records, err := readRecords(path)
	if err != nil {
		return Material{}, err
	}
	var (
		m          Material
		table      bool
		hasDensity bool
	)
	for _, rec := range records {
		if table {
			m.Series = append(m.Series, model.Sample{
				Temperature: lenient(rec, 0),
				Data:        model.Data{Cp: lenient(rec, 1), Rth: lenient(rec, 2), E: lenient(rec, 3)},
			})
			continue
		}
		switch cell(rec, 0) {
		case "Name":
			m.Name = cell(rec, 1)
		case "Temperature Limit":
			if m.MaxTemperature, err = parseFloat(path, "Temperature Limit", rec, 1); err != nil {
				return Material{}, err
			}
		case "Density":
			if m.Density, err = parseFloat(path, "Density", rec, 1); err != nil {
				return Material{}, err
			}
			hasDensity = true
			if cell(rec, 2) == "Additive Areal Weight" {
				if m.AdditiveArealWeight, err = parseFloat(path, "Additive Areal Weight", rec, 3); err != nil {
					return Material{}, err
				}
			}
		case "Temperature":
			table = true
		}
	}
	if !hasDensity {
		return Material{}, &ParseError{File: path, Field: "Density", Err: ErrMissing}
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func lenient(rec []string, i int) float64 {
	v, err := strconv.ParseFloat(cell(rec, i), 64)
	if err != nil {
		return 0
	}
	return v
}
