// Package writer stores built assemblies and parts: per-variant csv tables,
// ROThermal_PRESET cfg blocks and, in debug mode, every layer stage.
package writer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"rothermal/model"
)

// peakWindow selects the cfg row: the last sample within this distance of the
// record's peak temperature.
const peakWindow = 25

var (
	assemblyHeader = []string{"Temp Part", "Heat Capacity", "Thermal Insulance", "Emissivity"}
	partHeader     = []string{"Temp Part", "Heat Capacity", "1 / Thermal Insulance", "Emissivity"}
	layerHeader    = []string{"Temp Layer", "Heat Capacity", "Thermal Insulance", "Emissivity"}
	mappedHeader   = []string{"Temp Part", "Heat Capacity", "Thermal Insulance", "Emissivity", "Temp Layer"}
)

type Writer struct {
	dir    string
	debug  bool
	logger *log.Entry
}

func New(dir string, debug bool, logger *log.Entry) *Writer {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Writer{dir: dir, debug: debug, logger: logger}
}

func (w *Writer) Dir() string { return w.dir }

// WriteAssembly writes csv/<name>_min.csv, csv/<name>_max.csv (resistance
// written as 1/R_th), TPS/<name>.cfg and the debug dumps of the min layers.
func (w *Writer) WriteAssembly(asm model.Assembly) error {
	for _, v := range []struct {
		suffix string
		series model.Series
	}{{"_min", asm.Min.Series}, {"_max", asm.Max.Series}} {
		p := filepath.Join(w.dir, "csv", fileName(asm.Name)+v.suffix+".csv")
		if err := w.writeSeries(p, assemblyHeader, v.series, inverse); err != nil {
			return err
		}
	}
	if err := w.writeFile(filepath.Join(w.dir, "TPS", fileName(asm.Name)+".cfg"), func(out io.Writer) error {
		return assemblyPreset(out, asm)
	}); err != nil {
		return err
	}
	if w.debug {
		dir := filepath.Join(w.dir, "Debug_Info", fileName(asm.Name))
		for _, l := range asm.Min.Layers {
			if err := w.writeTrace(dir, l); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePart writes csv/<name>_min.csv, csv/<name>_max.csv with the stored
// 1/sum(R) and Part/<name>.cfg.
func (w *Writer) WritePart(part model.Part) error {
	for _, v := range []struct {
		suffix string
		series model.Series
	}{{"_min", part.SeriesMin}, {"_max", part.SeriesMax}} {
		p := filepath.Join(w.dir, "csv", fileName(part.Name)+v.suffix+".csv")
		if err := w.writeSeries(p, partHeader, v.series, identity); err != nil {
			return err
		}
	}
	return w.writeFile(filepath.Join(w.dir, "Part", fileName(part.Name)+".cfg"), func(out io.Writer) error {
		return partPreset(out, part)
	})
}

func (w *Writer) writeTrace(dir string, l model.Layer) error {
	name := fileName(l.Name)
	if err := w.writeSeries(filepath.Join(dir, name+"_filled.csv"), layerHeader, l.Trace.Filled, identity); err != nil {
		return err
	}
	if err := w.writeSeries(filepath.Join(dir, name+"_height_adjusted.csv"), layerHeader, l.Trace.Normalized, identity); err != nil {
		return err
	}
	stages := []struct {
		name   string
		series model.MappedSeries
	}{
		{"_temp_map", l.Trace.Mapped},
		{"_avg_r", l.Trace.Averaged},
		{"_temp_mult", l.Trace.Weighted},
	}
	for _, s := range stages {
		if err := w.writeMapped(filepath.Join(dir, name+s.name+".csv"), s.series); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSeries(path string, header []string, s model.Series, rth func(float64) float64) error {
	return w.writeFile(path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, smp := range s {
			if err := cw.Write([]string{
				formatFloat(smp.Temperature),
				formatFloat(smp.Cp),
				formatFloat(rth(smp.Rth)),
				formatFloat(smp.E),
			}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func (w *Writer) writeMapped(path string, m model.MappedSeries) error {
	return w.writeFile(path, func(out io.Writer) error {
		cw := csv.NewWriter(out)
		if err := cw.Write(mappedHeader); err != nil {
			return err
		}
		for _, smp := range m {
			if err := cw.Write([]string{
				formatFloat(smp.Parent),
				formatFloat(smp.Cp),
				formatFloat(smp.Rth),
				formatFloat(smp.E),
				formatFloat(smp.Own),
			}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// writeFile creates path and its directory and hands a buffered writer to fill.
func (w *Writer) writeFile(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(f)
	if err := fill(buf); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.logger.WithField("file", path).Debug("file written")
	return nil
}

// fileName turns a record name into a single path element.
func fileName(name string) string {
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "_" + name
	}
	return name
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func identity(v float64) float64 { return v }

// inverse is 1/v, 0 for a zero resistance.
func inverse(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// peakIndex is the last sample within peakWindow of peak, 0 if there is none.
func peakIndex(s model.Series, peak float64) int {
	idx := 0
	for i, smp := range s {
		if smp.Temperature >= peak-peakWindow && smp.Temperature <= peak+peakWindow {
			idx = i
		}
	}
	return idx
}
