package calculator

import (
	"reflect"
	"testing"

	"rothermal/model"
)

func TestAverageAcrossSegment_NoReference(t *testing.T) {
	mapped := model.MappedSeries{
		{Parent: 0, Data: model.Data{Cp: 1, Rth: 2}, Own: 0},
		{Parent: 100, Data: model.Data{Cp: 2, Rth: 3}, Own: 100},
	}
	got := AverageAcrossSegment(1, mapped, 1000, 300, 25)
	if !reflect.DeepEqual(got, mapped) {
		t.Fatalf("series changed without a reference sample: %v", got)
	}
}

func TestAverageAcrossSegment_ZeroReferenceResistance(t *testing.T) {
	mapped := model.MappedSeries{
		{Parent: 100, Data: model.Data{Cp: 1, Rth: 2}, Own: 100},
		{Parent: 200, Data: model.Data{Cp: 2, Rth: 0}, Own: 200},
	}
	got := AverageAcrossSegment(1, mapped, 210, 100, 25)
	if !reflect.DeepEqual(got, mapped) {
		t.Fatalf("series changed with a zero reference resistance: %v", got)
	}
}

func TestAverageAcrossSegment_UniformMaterial(t *testing.T) {
	var mapped model.MappedSeries
	for _, temp := range []float64{0, 100, 200, 300} {
		mapped = append(mapped, model.MappedSample{Parent: temp, Data: model.Data{Cp: 5, Rth: 2, E: 0.7}, Own: temp})
	}
	got := AverageAcrossSegment(0.02, mapped, 300, 100, 25)
	for i := range got {
		assertData(t, "averaged", got[i].Data, mapped[i].Data)
	}
}

func TestAverageAcrossSegment_Weighting(t *testing.T) {
	mapped := model.MappedSeries{
		{Parent: 100, Data: model.Data{Cp: 10, Rth: 1, E: 0.5}, Own: 100},
		{Parent: 200, Data: model.Data{Cp: 20, Rth: 2, E: 0.5}, Own: 200},
	}
	// k_ref = 500, q_ref = 0.4, d = {4, 1}
	got := AverageAcrossSegment(1, mapped, 200, 100, 25)
	assertData(t, "sample 0", got[0].Data, model.Data{Cp: 10, Rth: 1, E: 0.5})
	assertData(t, "sample 1", got[1].Data, model.Data{Cp: 12, Rth: 1.2, E: 0.5})
	if mapped[1].Cp != 20 {
		t.Fatal("input series was modified")
	}
}
