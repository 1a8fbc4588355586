// Package runner executes one batch run: read the inputs, build every
// assembly and part, write the outputs.
package runner

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"rothermal/calculator"
	"rothermal/config"
	"rothermal/metrics"
	"rothermal/model"
	"rothermal/reader"
	"rothermal/writer"
)

// Catalog is the result of a run.
type Catalog struct {
	RunID      string
	Grid       model.Grid
	Assemblies map[string]model.Assembly
	Parts      map[string]model.Part
}

func (c *Catalog) AssemblyNames() []string {
	return sortedKeys(c.Assemblies)
}

func (c *Catalog) PartNames() []string {
	return sortedKeys(c.Parts)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Run builds everything cfg points at. The first error aborts the run.
func Run(cfg config.Config, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	start := time.Now()
	defer metrics.ObserveRun(start)

	id := uuid.NewString()
	entry := logger.WithField("run", id)
	entry.WithFields(log.Fields{
		"tempList": cfg.Paths.TempList,
		"tpsDir":   cfg.Paths.TPSDir,
		"partDir":  cfg.Paths.PartDir,
		"output":   cfg.Paths.OutputDir,
	}).Info("run started")

	grid, err := reader.ReadTempList(cfg.Paths.TempList)
	if err != nil {
		return nil, fmt.Errorf("read temperature list: %w", err)
	}
	b, err := calculator.NewBuilder(grid, cfg.Calculator, entry)
	if err != nil {
		return nil, err
	}
	w := writer.New(cfg.Paths.OutputDir, cfg.Paths.Debug, entry)

	cat := &Catalog{
		RunID:      id,
		Grid:       grid,
		Assemblies: map[string]model.Assembly{},
		Parts:      map[string]model.Part{},
	}
	if err := buildAssemblies(cfg.Paths.TPSDir, b, w, cat, entry); err != nil {
		return nil, err
	}
	if err := buildParts(cfg.Paths.PartDir, b, w, cat, entry); err != nil {
		return nil, err
	}

	entry.WithFields(log.Fields{
		"assemblies": len(cat.Assemblies),
		"parts":      len(cat.Parts),
		"elapsed":    time.Since(start).String(),
	}).Info("run finished")
	return cat, nil
}

func buildAssemblies(dir string, b *calculator.Builder, w *writer.Writer, cat *Catalog, logger *log.Entry) error {
	paths, err := reader.ListFiles(dir, "csv")
	if err != nil {
		return fmt.Errorf("list structures: %w", err)
	}
	for _, p := range paths {
		asm, err := reader.ReadAssembly(p)
		if err != nil {
			metrics.Built("assembly", err)
			return err
		}
		built, err := b.BuildAssembly(asm)
		metrics.Built("assembly", err)
		if err != nil {
			return err
		}
		if _, dup := cat.Assemblies[built.Name]; dup {
			logger.WithFields(log.Fields{"assembly": built.Name, "file": p}).Warn("duplicate structure name, replacing the earlier one")
		}
		if err := w.WriteAssembly(built); err != nil {
			return err
		}
		cat.Assemblies[built.Name] = built
	}
	return nil
}

func buildParts(dir string, b *calculator.Builder, w *writer.Writer, cat *Catalog, logger *log.Entry) error {
	paths, err := reader.ListFiles(dir, "csv")
	if err != nil {
		return fmt.Errorf("list parts: %w", err)
	}
	for _, p := range paths {
		part, err := reader.ReadPart(p)
		if err != nil {
			metrics.Built("part", err)
			return err
		}
		built, err := b.BuildPart(part, cat.Assemblies)
		metrics.Built("part", err)
		if err != nil {
			return err
		}
		if _, dup := cat.Parts[built.Name]; dup {
			logger.WithFields(log.Fields{"part": built.Name, "file": p}).Warn("duplicate part name, replacing the earlier one")
		}
		if err := w.WritePart(built); err != nil {
			return err
		}
		cat.Parts[built.Name] = built
	}
	return nil
}
