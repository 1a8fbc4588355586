package calculator

// Options are the numeric constants of the pipeline.
type Options struct {
	Equalized       float64 // calibration temperature of the mapping, 0 by default
	ReferenceWindow float64 // tolerance when looking up the hot side reference sample
	OutputOffset    float64 // shift applied to the part temperature axis
	SnapLow         float64 // height factors at or below snap to the min variant
	SnapHigh        float64 // height factors at or above snap to the max variant
}

func DefaultOptions() Options {
	return Options{
		Equalized:       0,
		ReferenceWindow: 25,
		OutputOffset:    25,
		SnapLow:         0.001,
		SnapHigh:        0.999,
	}
}
