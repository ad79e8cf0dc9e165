// Package moments computes weight-aware descriptive statistics over a
// WeightedSeries. All functions are pure, single logical passes with O(1)
// auxiliary state.
//
// The mean uses the incremental update
//
//	count += w
//	mean  += w * (value - mean) / count
//
// instead of sum(value*w)/sum(w): when values are large relative to their
// spread the running form loses far less precision to cancellation. The
// biased variance reuses the same update over squared deviations from the
// already-computed mean; collapsing it into a one-pass sum-of-squares
// formula would reintroduce exactly the cancellation the incremental mean
// avoids, so the two-pass structure is load-bearing.
package moments

import (
	"math"

	"statlab/domain/core"
	"statlab/domain/sample"
)

// SampleSize returns n, the sum of weights. Summation runs in series order,
// the same order the mean and variance passes use, so all three agree under
// floating-point rounding.
func SampleSize(series sample.WeightedSeries) float64 {
	var n float64
	for _, obs := range series {
		n += obs.Weight
	}
	return n
}

// Mean returns the weighted sample mean via the incremental update.
func Mean(series sample.WeightedSeries) (float64, error) {
	var mean, count float64
	for _, obs := range series {
		count += obs.Weight
		mean += obs.Weight * (obs.Value - mean) / count
	}
	if count == 0 {
		return 0, core.ErrEmptySample
	}
	return mean, nil
}

// BiasedVariance returns the maximum-likelihood variance estimator: the
// weighted mean of squared deviations from the sample mean. Second pass
// shares the incremental-mean update with the first.
func BiasedVariance(series sample.WeightedSeries) (float64, error) {
	mean, err := Mean(series)
	if err != nil {
		return 0, err
	}

	var variance, count float64
	for _, obs := range series {
		deviation := obs.Value - mean
		count += obs.Weight
		variance += obs.Weight * (deviation*deviation - variance) / count
	}
	return variance, nil
}

// UnbiasedVariance returns the Bessel-corrected estimator
// biased * n / (n-1). Undefined for n <= 1.
func UnbiasedVariance(series sample.WeightedSeries) (float64, error) {
	n := SampleSize(series)
	if n <= 1 {
		return 0, core.NewDegenerateSampleError("unbiased variance", n)
	}
	biased, err := BiasedVariance(series)
	if err != nil {
		return 0, err
	}
	return biased * n / (n - 1), nil
}

// BiasedStandardDeviation is the non-negative root of BiasedVariance.
func BiasedStandardDeviation(series sample.WeightedSeries) (float64, error) {
	variance, err := BiasedVariance(series)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// UnbiasedStandardDeviation is the non-negative root of UnbiasedVariance.
func UnbiasedStandardDeviation(series sample.WeightedSeries) (float64, error) {
	variance, err := UnbiasedVariance(series)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}
