package calculator

import (
	"math"
	"reflect"
	"testing"

	"rothermal/model"
)

func variants() (model.Variant, model.Variant) {
	min := model.Variant{
		Thickness:    10,
		ArealDensity: 2,
		Series:       series([4]float64{0, 100, 4, 0.5}, [4]float64{50, 200, 8, 0.6}),
	}
	max := model.Variant{
		Thickness:    20,
		ArealDensity: 6,
		Series:       series([4]float64{0, 300, 12, 0.7}, [4]float64{50, 400, 16, 0.8}),
	}
	return min, max
}

func TestInterpolateHeight_Boundaries(t *testing.T) {
	min, max := variants()
	opts := DefaultOptions()

	got, err := InterpolateHeight(min, max, 10, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, min) {
		t.Fatalf("factor 0 = %+v, want the min variant", got)
	}

	got, err = InterpolateHeight(min, max, 20, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, max) {
		t.Fatalf("factor 1 = %+v, want the max variant", got)
	}
}

func TestInterpolateHeight_SnapBand(t *testing.T) {
	min, max := variants()
	cases := []struct {
		h    float64
		want model.Variant
	}{
		{10.005, min},
		{5, min},
		{19.995, max},
		{30, max},
	}
	for _, c := range cases {
		got, err := InterpolateHeight(min, max, c.h, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("h %v: got thickness %v, want %v", c.h, got.Thickness, c.want.Thickness)
		}
	}
}

func TestInterpolateHeight_Midway(t *testing.T) {
	min, max := variants()
	got, err := InterpolateHeight(min, max, 15, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.Thickness, 15) || !approx(got.ArealDensity, 4) {
		t.Fatalf("thickness %v density %v, want 15 and 4", got.Thickness, got.ArealDensity)
	}
	assertData(t, "sample 0", got.Series[0].Data, model.Data{Cp: 200, Rth: 8, E: 0.5})
	assertData(t, "sample 1", got.Series[1].Data, model.Data{Cp: 300, Rth: 12, E: 0.6})
	if min.Series[0].Cp != 100 {
		t.Fatal("min variant was modified")
	}
}

func TestInterpolateHeight_Degenerate(t *testing.T) {
	min, _ := variants()
	got, err := InterpolateHeight(min, min, 12, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, min) {
		t.Fatal("equal thicknesses must return the stored variant")
	}
	max := model.Variant{Thickness: 20, Series: series([4]float64{0, 1, 1, 1})}
	if _, err := InterpolateHeight(min, max, 15, DefaultOptions()); err == nil {
		t.Fatal("expected an error for misaligned variants")
	}
}

func TestResizeAssembly(t *testing.T) {
	min, max := variants()
	asm := model.Assembly{Name: "tps", Temperature: 1200, Min: min, Max: max}
	opts := DefaultOptions()
	inf := math.Inf(1)

	got, err := ResizeAssembly(asm, math.Inf(-1), inf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, asm) {
		t.Fatal("min/max keywords must keep the stored variants")
	}

	got, err = ResizeAssembly(asm, inf, inf, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Min, max) || !reflect.DeepEqual(got.Max, max) {
		t.Fatal("+Inf min bound must collapse onto the max variant")
	}

	got, err = ResizeAssembly(asm, math.Inf(-1), math.Inf(-1), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Max, min) || !reflect.DeepEqual(got.Min, min) {
		t.Fatal("-Inf max bound must collapse onto the min variant")
	}

	got, err = ResizeAssembly(asm, 12.5, 17.5, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !approx(got.Min.Thickness, 12.5) || !approx(got.Max.Thickness, 17.5) {
		t.Fatalf("thickness %v / %v, want 12.5 / 17.5", got.Min.Thickness, got.Max.Thickness)
	}
	assertData(t, "min sample", got.Min.Series[0].Data, model.Data{Cp: 150, Rth: 6, E: 0.5})
	assertData(t, "max sample", got.Max.Series[0].Data, model.Data{Cp: 250, Rth: 10, E: 0.7})
	if !reflect.DeepEqual(asm.Min, min) || !reflect.DeepEqual(asm.Max, max) {
		t.Fatal("stored variants were modified")
	}
}
