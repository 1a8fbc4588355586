package runner

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	log "github.com/sirupsen/logrus"

	"rothermal/calculator"
	"rothermal/config"
)

func quietLogger() *log.Logger {
	l := log.New()
	l.Out = io.Discard
	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// fixture lays out a library with one material, one structure and the given part file.
func fixture(t *testing.T, part string) config.Config {
	t.Helper()
	dir := t.TempDir()
	temps := "Temperature\n"
	for temp := 0; temp <= 1000; temp += 100 {
		temps += strconv.Itoa(temp) + "\n"
	}
	writeFile(t, filepath.Join(dir, "bib", "Temp_List.csv"), temps)
	writeFile(t, filepath.Join(dir, "bib", "material", "felt.csv"), `Name,Felt
Temperature Limit,1200
Density,100
Temperature,cp,k,e
0,1000,0.5,0.8
500,1000,0.5,0.8
1000,1000,0.5,0.8
`)
	writeFile(t, filepath.Join(dir, "bib", "tps", "shield.csv"), `Name,Shield
Temperature,1000
Min
Layer,../material/felt.csv,1,0.01,1000,300
`)
	writeFile(t, filepath.Join(dir, "bib", "part", "wing.csv"), part)

	cfg := config.Config{
		Paths: config.Paths{
			TempList:  filepath.Join(dir, "bib", "Temp_List.csv"),
			TPSDir:    filepath.Join(dir, "bib", "tps"),
			PartDir:   filepath.Join(dir, "bib", "part"),
			OutputDir: filepath.Join(dir, "out"),
			Debug:     true,
		},
		Calculator: calculator.DefaultOptions(),
	}
	return cfg
}

func TestRun(t *testing.T) {
	cfg := fixture(t, "Name,Wing\nTemperature,1000\nStructure,Shield,1,min,max\n")
	cat, err := Run(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if cat.RunID == "" || len(cat.Grid) != 11 {
		t.Fatalf("catalog = %+v", cat)
	}
	if !reflect.DeepEqual(cat.AssemblyNames(), []string{"Shield"}) || !reflect.DeepEqual(cat.PartNames(), []string{"Wing"}) {
		t.Fatalf("names = %v %v", cat.AssemblyNames(), cat.PartNames())
	}

	asm := cat.Assemblies["Shield"]
	for _, s := range asm.Max.Series {
		if math.Abs(s.Cp-1000) > 1e-6 || math.Abs(s.Rth-20) > 1e-6 || math.Abs(s.E-0.8) > 1e-9 {
			t.Fatalf("assembly sample = %+v", s)
		}
	}
	part := cat.Parts["Wing"]
	for _, s := range part.SeriesMin {
		if math.Abs(s.Rth-0.05) > 1e-9 {
			t.Fatalf("part sample = %+v", s)
		}
	}

	for _, f := range []string{
		"csv/Shield_min.csv",
		"csv/Shield_max.csv",
		"TPS/Shield.cfg",
		"csv/Wing_min.csv",
		"Part/Wing.cfg",
		"Debug_Info/Shield/Felt_avg_r.csv",
	} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, f)); err != nil {
			t.Fatalf("output %s: %v", f, err)
		}
	}
}

func TestRun_UnresolvedPart(t *testing.T) {
	cfg := fixture(t, "Name,Wing\nTemperature,1000\nStructure,Nope,0.5,min,max\nStructure,Gone,0.5,min,max\n")
	_, err := Run(cfg, quietLogger())
	var ue *calculator.UnresolvedError
	if !errors.As(err, &ue) || !reflect.DeepEqual(ue.Names, []string{"Nope", "Gone"}) {
		t.Fatalf("err = %v, want *UnresolvedError", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "Part", "Wing.cfg")); !os.IsNotExist(err) {
		t.Fatal("part output written for an unresolved part")
	}
}

func TestRun_MissingTempList(t *testing.T) {
	cfg := fixture(t, "Name,Wing\n")
	cfg.Paths.TempList = filepath.Join(t.TempDir(), "missing.csv")
	if _, err := Run(cfg, quietLogger()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
