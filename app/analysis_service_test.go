package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statlab/adapters/gonumdist"
	"statlab/domain/analysis"
	"statlab/domain/core"
	"statlab/domain/sample"
)

func newService() *AnalysisService {
	return NewAnalysisService(gonumdist.New())
}

func TestReconcileFromRawValues(t *testing.T) {
	record := &sample.Record{Values: []float64{2, 4, 4, 4, 5, 5, 7, 9}}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	require.NotNil(t, out.Params.SampleSize)
	assert.Equal(t, 8.0, *out.Params.SampleSize)
	assert.InDelta(t, 5.0, *out.Statistics.Mean, 1e-12)
	assert.InDelta(t, 4.0, *out.Statistics.BiasedVariance, 1e-12)
	assert.InDelta(t, 32.0/7.0, *out.Statistics.UnbiasedVariance, 1e-12)
	assert.InDelta(t, 2.0, *out.Statistics.BiasedStandardDeviation, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), *out.Statistics.UnbiasedStandardDeviation, 1e-12)

	// Input record stays untouched.
	assert.Nil(t, record.Statistics.Mean)
	assert.Nil(t, record.Params.SampleSize)
}

func TestReconcileFromVariationalSeries(t *testing.T) {
	record := &sample.Record{VariationalSeries: map[string]float64{"1": 3, "2": 5}}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	assert.Equal(t, 8.0, *out.Params.SampleSize)
	assert.InDelta(t, 1.625, *out.Statistics.Mean, 1e-12)
	assert.InDelta(t, 0.234375, *out.Statistics.BiasedVariance, 1e-12)
}

func TestReconcileOverwritesSuppliedSampleSize(t *testing.T) {
	record := &sample.Record{
		Values: []float64{1, 2, 3},
		Params: sample.Params{SampleSize: sample.Scalar(99)},
	}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)
	assert.Equal(t, 3.0, *out.Params.SampleSize)
}

func TestReconcileDerivesUnbiasedFromBiased(t *testing.T) {
	record := &sample.Record{
		Params:     sample.Params{SampleSize: sample.Scalar(8)},
		Statistics: sample.Statistics{BiasedVariance: sample.Scalar(4)},
	}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	assert.InDelta(t, 32.0/7.0, *out.Statistics.UnbiasedVariance, 1e-12)
	assert.InDelta(t, 2.0, *out.Statistics.BiasedStandardDeviation, 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), *out.Statistics.UnbiasedStandardDeviation, 1e-12)
}

func TestReconcileDerivesBiasedFromUnbiased(t *testing.T) {
	record := &sample.Record{
		Params:     sample.Params{SampleSize: sample.Scalar(8)},
		Statistics: sample.Statistics{UnbiasedVariance: sample.Scalar(32.0 / 7.0)},
	}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, *out.Statistics.BiasedVariance, 1e-12)
}

func TestReconcileNeverFabricatesVariance(t *testing.T) {
	record := &sample.Record{
		Params: sample.Params{SampleSize: sample.Scalar(8), Mean: sample.Scalar(5)},
	}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	assert.Nil(t, out.Statistics.BiasedVariance)
	assert.Nil(t, out.Statistics.UnbiasedVariance)
	assert.Nil(t, out.Statistics.BiasedStandardDeviation)
	assert.Nil(t, out.Statistics.UnbiasedStandardDeviation)
}

func TestReconcileIdempotent(t *testing.T) {
	records := []*sample.Record{
		{Values: []float64{2, 4, 4, 4, 5, 5, 7, 9}},
		{VariationalSeries: map[string]float64{"1": 3, "2": 5}},
		{
			Params:     sample.Params{SampleSize: sample.Scalar(8)},
			Statistics: sample.Statistics{BiasedVariance: sample.Scalar(4)},
		},
	}

	service := newService()
	for _, record := range records {
		once, err := service.Reconcile(record)
		require.NoError(t, err)

		twice, err := service.Reconcile(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	}
}

func TestReconcileSingleObservation(t *testing.T) {
	record := &sample.Record{Values: []float64{3.5}}

	out, err := newService().Reconcile(record)
	require.NoError(t, err)

	assert.Equal(t, 3.5, *out.Statistics.Mean)
	assert.Equal(t, 0.0, *out.Statistics.BiasedVariance)
	assert.Nil(t, out.Statistics.UnbiasedVariance, "unbiased variance is undefined for n = 1")
}

func TestReconcileRejectsBothShapes(t *testing.T) {
	record := &sample.Record{
		Values:            []float64{1},
		VariationalSeries: map[string]float64{"1": 1},
	}

	_, err := newService().Reconcile(record)
	require.Error(t, err)
	assert.True(t, core.IsMalformedInput(err))
}

func TestAnalyzeConfidenceIntervals(t *testing.T) {
	record := &sample.Record{
		Name:                        "lab",
		Values:                      []float64{2, 4, 4, 4, 5, 5, 7, 9},
		Params:                      sample.Params{Variance: sample.Scalar(4)},
		Confidence:                  0.95,
		MeanIntervalKnownVariance:   true,
		MeanIntervalUnknownVariance: true,
		VarianceInterval:            true,
	}

	report, err := newService().Analyze(record)
	require.NoError(t, err)
	require.Len(t, report.Intervals, 3)

	const (
		z975    = 1.9599639845
		t975df7 = 2.3646242510
		chiHi   = 16.0127643500
		chiLo   = 1.6898692623
	)
	unbiased := 32.0 / 7.0

	known := report.Intervals[analysis.MeanKnownVariance]
	require.False(t, known.Failed())
	epsKnown := z975 * math.Sqrt(4.0/8)
	assert.InDelta(t, 5.0-epsKnown, known.Interval.Low, 1e-6)
	assert.InDelta(t, 5.0+epsKnown, known.Interval.High, 1e-6)

	unknown := report.Intervals[analysis.MeanUnknownVariance]
	require.False(t, unknown.Failed())
	epsUnknown := t975df7 * math.Sqrt(unbiased/8)
	assert.InDelta(t, 5.0-epsUnknown, unknown.Interval.Low, 1e-6)
	assert.InDelta(t, 5.0+epsUnknown, unknown.Interval.High, 1e-6)
	// Symmetric around the mean.
	assert.InDelta(t, 5.0, (unknown.Interval.Low+unknown.Interval.High)/2, 1e-9)

	variance := report.Intervals[analysis.VarianceInterval]
	require.False(t, variance.Failed())
	assert.InDelta(t, 7*unbiased/chiHi, variance.Interval.Low, 1e-6)
	assert.InDelta(t, 7*unbiased/chiLo, variance.Interval.High, 1e-6)
	// The point estimate sits inside, nearer the low bound: chi-squared
	// asymmetry, not an ordering bug.
	assert.Less(t, variance.Interval.Low, unbiased)
	assert.Greater(t, variance.Interval.High, unbiased)

	require.NotNil(t, report.Summary)
	assert.Equal(t, 2.0, report.Summary.Min)
	assert.Equal(t, 9.0, report.Summary.Max)
}

func TestAnalyzePartialResults(t *testing.T) {
	// Known-variance interval requested without params.variance: that one
	// fails, everything else still comes through.
	record := &sample.Record{
		Values:                      []float64{2, 4, 4, 4, 5, 5, 7, 9},
		Confidence:                  0.95,
		MeanIntervalKnownVariance:   true,
		MeanIntervalUnknownVariance: true,
	}

	report, err := newService().Analyze(record)
	require.NoError(t, err)

	known := report.Intervals[analysis.MeanKnownVariance]
	assert.True(t, known.Failed())
	assert.Contains(t, known.Error, "params.variance")

	unknown := report.Intervals[analysis.MeanUnknownVariance]
	assert.False(t, unknown.Failed())

	assert.InDelta(t, 5.0, *report.Record.Statistics.Mean, 1e-12)
}

func TestAnalyzeDegenerateSampleIntervals(t *testing.T) {
	record := &sample.Record{
		Values:                      []float64{3.5},
		Params:                      sample.Params{Variance: sample.Scalar(4)},
		Confidence:                  0.95,
		MeanIntervalKnownVariance:   true,
		MeanIntervalUnknownVariance: true,
		VarianceInterval:            true,
	}

	report, err := newService().Analyze(record)
	require.NoError(t, err)

	// A single observation is a valid-but-insufficient dataset: every
	// interval must fail as a degenerate sample, never as a missing
	// parameter.
	for _, kind := range analysis.AllIntervalKinds {
		result := report.Intervals[kind]
		require.True(t, result.Failed(), "interval %s must fail for n = 1", kind)
		assert.Contains(t, result.Error, "degenerate sample", "interval %s", kind)
		assert.NotContains(t, result.Error, "invalid parameter", "interval %s", kind)
	}

	// The mean is still reported.
	assert.Equal(t, 3.5, *report.Record.Statistics.Mean)
}

func TestAnalyzeInvalidConfidence(t *testing.T) {
	record := &sample.Record{
		Values:                      []float64{1, 2, 3},
		Confidence:                  1.5,
		MeanIntervalUnknownVariance: true,
	}

	report, err := newService().Analyze(record)
	require.NoError(t, err)

	result := report.Intervals[analysis.MeanUnknownVariance]
	require.True(t, result.Failed())
	assert.Contains(t, result.Error, "confidence")
}
