// Package report turns a spectra.Dataset into things people look at:
// per-channel statistics, spreadsheets and plots.
package report

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/robert-malhotra/go-spectra/spectra"
)

// ChannelSummary describes one channel across all spectra of a Dataset.
type ChannelSummary struct {
	Axis   float64
	Mean   float64
	StdDev float64 // population
	Min    float64
	Max    float64
	Median float64
}

// Summarize computes a ChannelSummary per channel, in axis order.
func Summarize(ds *spectra.Dataset) ([]ChannelSummary, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	out := make([]ChannelSummary, ds.Channels())
	col := make([]float64, ds.Rows())
	for j := range out {
		mat.Col(col, j, ds.Intensities)
		s, err := summarize(col)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", j, err)
		}
		s.Axis = ds.Axis[j]
		out[j] = s
	}
	return out, nil
}

func summarize(data stats.Float64Data) (ChannelSummary, error) {
	var s ChannelSummary
	var err error

	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	// Median sorts a copy; col is reused by the caller.
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	return s, nil
}
