package sample

import (
	"fmt"
	"sort"
	"strconv"

	"statlab/domain/core"
)

// WeightedObservation is a single (value, weight) pair. Weight > 0 always:
// 1 for a raw sample point, the class frequency for grouped data.
type WeightedObservation struct {
	Value  float64
	Weight float64
}

// WeightedSeries is the normalized input representation shared by raw value
// lists and variational (frequency) series. It is built once and read-only
// for the computation that consumes it.
type WeightedSeries []WeightedObservation

// SeriesFromValues builds a series from raw sample points, each with weight 1.
func SeriesFromValues(values []float64) WeightedSeries {
	series := make(WeightedSeries, 0, len(values))
	for _, v := range values {
		series = append(series, WeightedObservation{Value: v, Weight: 1})
	}
	return series
}

// SeriesFromVariational builds a series from a frequency table mapping a
// decimal class mark to its count. An unparseable key or a non-positive
// count is a malformed dataset, not a recoverable condition.
// Observations are ordered by class mark so repeated runs sum identically.
func SeriesFromVariational(table map[string]float64) (WeightedSeries, error) {
	series := make(WeightedSeries, 0, len(table))
	for key, count := range table {
		value, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, core.NewMalformedInputError(fmt.Sprintf("variational series key %q is not a number", key))
		}
		if count <= 0 {
			return nil, core.NewMalformedInputError(fmt.Sprintf("variational series count for %q must be positive, got %g", key, count))
		}
		series = append(series, WeightedObservation{Value: value, Weight: count})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Value < series[j].Value })
	return series, nil
}
