package calculator

import (
	"io"
	"math"
	"testing"

	log "github.com/sirupsen/logrus"

	"rothermal/model"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b))
}

func quietLogger() *log.Entry {
	l := log.New()
	l.Out = io.Discard
	return log.NewEntry(l)
}

func series(rows ...[4]float64) model.Series {
	out := make(model.Series, len(rows))
	for i, r := range rows {
		out[i] = model.Sample{Temperature: r[0], Data: model.Data{Cp: r[1], Rth: r[2], E: r[3]}}
	}
	return out
}

func grid(start, step float64, n int) model.Grid {
	g := make(model.Grid, n)
	for i := range g {
		g[i] = start + step*float64(i)
	}
	return g
}

func assertData(t *testing.T, what string, got, want model.Data) {
	t.Helper()
	if !approx(got.Cp, want.Cp) || !approx(got.Rth, want.Rth) || !approx(got.E, want.E) {
		t.Fatalf("%s = %+v, want %+v", what, got, want)
	}
}
