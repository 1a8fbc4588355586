// Package reader loads the csv inputs of a run: the reference temperature
// list, structure (assembly) files, the material files they reference and
// part files.
package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"rothermal/model"
)

var ErrMissing = errors.New("missing value")

// ParseError is a malformed input record. It is fatal for the run.
type ParseError struct {
	File  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ListFiles returns the files in dir with the given extension ("csv" or
// ".csv"), sorted by name.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ext = "." + strings.TrimPrefix(ext, ".")
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func newCSV(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// readRecords reads every record of the file at path.
func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := newCSV(f).ReadAll()
	if err != nil {
		return nil, &ParseError{File: path, Field: "csv", Err: err}
	}
	return records, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(file, field string, rec []string, i int) (float64, error) {
	s := cell(rec, i)
	if s == "" {
		return 0, &ParseError{File: file, Field: field, Err: ErrMissing}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{File: file, Field: field, Err: err}
	}
	return v, nil
}

func parseBool(file, field string, rec []string, i int) (bool, error) {
	v, err := strconv.ParseBool(cell(rec, i))
	if err != nil {
		return false, &ParseError{File: file, Field: field, Err: err}
	}
	return v, nil
}

// ReadTempList reads the reference temperature grid: a header row, then one
// temperature per row in the first column.
func ReadTempList(path string) (model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseTempList(path, f)
}

func parseTempList(name string, r io.Reader) (model.Grid, error) {
	cr := newCSV(r)
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, &ParseError{File: name, Field: "header", Err: ErrMissing}
		}
		return nil, &ParseError{File: name, Field: "header", Err: err}
	}
	var g model.Grid
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{File: name, Field: "csv", Err: err}
		}
		v, err := parseFloat(name, fmt.Sprintf("temperature (row %d)", row), rec, 0)
		if err != nil {
			return nil, err
		}
		g = append(g, v)
	}
	if err := g.Validate(); err != nil {
		return nil, &ParseError{File: name, Field: "temperature", Err: err}
	}
	return g, nil
}
