// Package summary computes order statistics of a weighted series for
// presentation next to the moment-based statistics.
package summary

import (
	"math"

	"github.com/montanaflynn/stats"

	"statlab/domain/analysis"
	"statlab/domain/core"
	"statlab/domain/sample"
)

// Compute returns min/max/median/quartiles over the expanded series. Whole
// weights (raw points and frequency counts) are expanded into repeated
// observations; fractional weights fall back to the bare class marks, which
// keeps the range exact even when the quartiles are approximate.
func Compute(series sample.WeightedSeries) (*analysis.Summary, error) {
	data := expand(series)
	if len(data) == 0 {
		return nil, core.ErrEmptySample
	}

	min, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return nil, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = median
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = median
	}

	return &analysis.Summary{Min: min, Max: max, Median: median, Q25: q25, Q75: q75}, nil
}

func expand(series sample.WeightedSeries) []float64 {
	const expansionCap = 1 << 20

	total := 0.0
	wholeWeights := true
	for _, obs := range series {
		if obs.Weight != math.Trunc(obs.Weight) {
			wholeWeights = false
			break
		}
		total += obs.Weight
	}

	if !wholeWeights || total > expansionCap {
		data := make([]float64, 0, len(series))
		for _, obs := range series {
			data = append(data, obs.Value)
		}
		return data
	}

	data := make([]float64, 0, int(total))
	for _, obs := range series {
		for i := 0; i < int(obs.Weight); i++ {
			data = append(data, obs.Value)
		}
	}
	return data
}
