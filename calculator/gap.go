package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"rothermal/model"
)

// Channel names a data channel of a sample.
type Channel int

const (
	ChannelCp Channel = iota
	ChannelRth
	ChannelE
)

func (c Channel) String() string {
	switch c {
	case ChannelCp:
		return "cp"
	case ChannelRth:
		return "R_th"
	case ChannelE:
		return "e"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

var channels = [...]Channel{ChannelCp, ChannelRth, ChannelE}

func channelPtr(d *model.Data, c Channel) *float64 {
	switch c {
	case ChannelCp:
		return &d.Cp
	case ChannelRth:
		return &d.Rth
	default:
		return &d.E
	}
}

// FillGaps replaces the 0 placeholders ("not measured") of every channel.
// Leading placeholders take the first measured value, trailing ones the last,
// gaps in between are interpolated linearly in temperature. Measured values are
// kept as they are. A channel without any measured value stays 0.
func FillGaps(series model.Series) (model.Series, error) {
	filled, _, err := fillGaps(series)
	return filled, err
}

// EmptyChannels lists the channels of series that carry no measured value at all.
func EmptyChannels(series model.Series) []Channel {
	var empty []Channel
	for _, c := range channels {
		found := false
		for i := range series {
			if *channelPtr(&series[i].Data, c) != 0 {
				found = true
				break
			}
		}
		if !found {
			empty = append(empty, c)
		}
	}
	return empty
}

func fillGaps(series model.Series) (model.Series, []Channel, error) {
	if len(series) == 0 {
		return model.Series{}, nil, nil
	}
	if err := series.Validate(); err != nil {
		return nil, nil, err
	}
	out := series.Clone()
	var empty []Channel
	for _, c := range channels {
		ok, err := fillChannel(out, c)
		if err != nil {
			return nil, nil, fmt.Errorf("fill %s: %w", c, err)
		}
		if !ok {
			empty = append(empty, c)
		}
	}
	return out, empty, nil
}

// fillChannel reports false when the channel has no measured value.
func fillChannel(series model.Series, c Channel) (bool, error) {
	var xs, ys []float64
	for i := range series {
		if v := *channelPtr(&series[i].Data, c); v != 0 {
			xs = append(xs, series[i].Temperature)
			ys = append(ys, v)
		}
	}
	switch len(xs) {
	case 0:
		return false, nil
	case len(series):
		return true, nil
	case 1:
		for i := range series {
			*channelPtr(&series[i].Data, c) = ys[0]
		}
		return true, nil
	}

	// PiecewiseLinear holds the end values outside [xs[0], xs[n-1]],
	// which is exactly the leading / trailing copy.
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return false, err
	}
	for i := range series {
		v := channelPtr(&series[i].Data, c)
		if *v == 0 {
			*v = pl.Predict(series[i].Temperature)
		}
	}
	return true, nil
}
