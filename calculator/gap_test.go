package calculator

import (
	"errors"
	"reflect"
	"testing"

	"rothermal/model"
)

func TestFillGaps_LeadingAndTrailing(t *testing.T) {
	in := series(
		[4]float64{0, 1, 0, 0},
		[4]float64{100, 2, 4, 0.5},
		[4]float64{200, 3, 0, 0.5},
	)
	out, err := FillGaps(in)
	if err != nil {
		t.Fatal(err)
	}
	if out[2].Rth != 4 {
		t.Fatalf("R_th at 200 = %v, want 4", out[2].Rth)
	}
	if out[0].Rth != 4 {
		t.Fatalf("R_th at 0 = %v, want 4", out[0].Rth)
	}
	if out[0].E != 0.5 {
		t.Fatalf("e at 0 = %v, want 0.5", out[0].E)
	}
	if in[0].Rth != 0 {
		t.Fatal("input series was modified")
	}
}

func TestFillGaps_Interior(t *testing.T) {
	in := series(
		[4]float64{0, 0, 1, 0.1},
		[4]float64{100, 10, 0, 0.2},
		[4]float64{200, 0, 0, 0},
		[4]float64{300, 0, 4, 0},
		[4]float64{400, 40, 0, 0.5},
	)
	out, err := FillGaps(in)
	if err != nil {
		t.Fatal(err)
	}
	wantCp := []float64{10, 10, 20, 30, 40}
	wantRth := []float64{1, 2, 3, 4, 4}
	wantE := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	for i := range out {
		if !approx(out[i].Cp, wantCp[i]) || !approx(out[i].Rth, wantRth[i]) || !approx(out[i].E, wantE[i]) {
			t.Fatalf("sample %d = %+v, want cp %v R_th %v e %v", i, out[i].Data, wantCp[i], wantRth[i], wantE[i])
		}
	}
}

func TestFillGaps_PreservesMeasuredAndLeavesNoPlaceholder(t *testing.T) {
	cases := []model.Series{
		series([4]float64{10, 5, 0, 0}, [4]float64{20, 0, 3, 0}, [4]float64{30, 0, 0, 0.9}),
		series([4]float64{0, 0, 0, 0.2}, [4]float64{50, 7, 0, 0}, [4]float64{60, 0, 1, 0}, [4]float64{90, 8, 2, 0}),
		series([4]float64{-100, 1, 1, 1}),
	}
	for n, in := range cases {
		out, err := FillGaps(in)
		if err != nil {
			t.Fatalf("case %d: %v", n, err)
		}
		if len(out) != len(in) {
			t.Fatalf("case %d: len %d, want %d", n, len(out), len(in))
		}
		for i := range in {
			if out[i].Temperature != in[i].Temperature {
				t.Fatalf("case %d: temperature changed at %d", n, i)
			}
			for _, c := range channels {
				got, orig := *channelPtr(&out[i].Data, c), *channelPtr(&in[i].Data, c)
				if got == 0 {
					t.Fatalf("case %d: %s placeholder left at %d", n, c, i)
				}
				if orig != 0 && got != orig {
					t.Fatalf("case %d: measured %s changed at %d: %v -> %v", n, c, i, orig, got)
				}
			}
		}
	}
}

func TestFillGaps_Idempotent(t *testing.T) {
	in := series(
		[4]float64{0, 0, 0, 0.3},
		[4]float64{25, 2, 0, 0},
		[4]float64{75, 0, 8, 0},
		[4]float64{150, 6, 0, 0.7},
		[4]float64{300, 0, 0, 0},
	)
	once, err := FillGaps(in)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := FillGaps(once)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed the series:\n%v\n%v", once, twice)
	}
}

func TestFillGaps_EmptyChannel(t *testing.T) {
	in := series([4]float64{0, 1, 0, 0}, [4]float64{100, 2, 0, 0})
	out, err := FillGaps(in)
	if err != nil {
		t.Fatal(err)
	}
	for i := range out {
		if out[i].Rth != 0 || out[i].E != 0 {
			t.Fatalf("empty channel filled at %d: %+v", i, out[i].Data)
		}
	}
	got := EmptyChannels(in)
	if !reflect.DeepEqual(got, []Channel{ChannelRth, ChannelE}) {
		t.Fatalf("EmptyChannels = %v", got)
	}
}

func TestFillGaps_NotAscending(t *testing.T) {
	in := series([4]float64{100, 1, 1, 1}, [4]float64{100, 2, 0, 0})
	if _, err := FillGaps(in); !errors.Is(err, model.ErrNotAscending) {
		t.Fatalf("err = %v, want ErrNotAscending", err)
	}
}

func TestFillGaps_Empty(t *testing.T) {
	out, err := FillGaps(nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("FillGaps(nil) = %v, %v", out, err)
	}
}
