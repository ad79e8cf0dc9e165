package app

import (
	"math"
	"time"

	"statlab/domain/analysis"
	"statlab/domain/core"
	"statlab/domain/interval"
	"statlab/domain/moments"
	"statlab/domain/sample"
	"statlab/internal/summary"
)

// AnalysisService runs the statistics session for one record: build the
// weighted series, accumulate moments, reconcile the params/statistics set,
// then compute whichever confidence intervals the record requests.
type AnalysisService struct {
	estimator *interval.Estimator
}

// NewAnalysisService creates an analysis service backed by the given
// quantile collaborator.
func NewAnalysisService(quantiles interval.Quantiler) *AnalysisService {
	return &AnalysisService{estimator: interval.NewEstimator(quantiles)}
}

// Reconcile produces a consistent statistics set on a deep copy of the
// record. The input is never mutated. Steps, in order:
//
//  1. If a series can be built, run the accumulator and populate mean,
//     biased variance and sample size.
//  2. Cross-derive the missing variance variant when exactly one is present
//     and n > 1. Neither present: leave both absent, never fabricate.
//  3. Derive both standard deviations from whichever variances are present.
//
// Reconciling an already-consistent record changes nothing.
func (s *AnalysisService) Reconcile(record *sample.Record) (*sample.Record, error) {
	out := record.Clone()

	series, ok, err := out.Series()
	if err != nil {
		return nil, err
	}
	if ok {
		mean, err := moments.Mean(series)
		if err != nil {
			return nil, err
		}
		biased, err := moments.BiasedVariance(series)
		if err != nil {
			return nil, err
		}
		out.Statistics.Mean = sample.Scalar(mean)
		out.Statistics.BiasedVariance = sample.Scalar(biased)
		out.Statistics.UnbiasedVariance = nil
		out.Statistics.UnbiasedStandardDeviation = nil
		out.Params.SampleSize = sample.Scalar(moments.SampleSize(series))
	}

	if n := out.Params.SampleSize; n != nil && *n > 1 {
		biased, unbiased := out.Statistics.BiasedVariance, out.Statistics.UnbiasedVariance
		switch {
		case biased != nil && unbiased == nil:
			out.Statistics.UnbiasedVariance = sample.Scalar(*biased * *n / (*n - 1))
		case unbiased != nil && biased == nil:
			out.Statistics.BiasedVariance = sample.Scalar(*unbiased * (*n - 1) / *n)
		}
	}

	if v := out.Statistics.BiasedVariance; v != nil {
		out.Statistics.BiasedStandardDeviation = sample.Scalar(math.Sqrt(*v))
	}
	if v := out.Statistics.UnbiasedVariance; v != nil {
		out.Statistics.UnbiasedStandardDeviation = sample.Scalar(math.Sqrt(*v))
	}

	return out, nil
}

// Analyze runs the full pipeline and assembles the report. Interval failures
// are recorded per interval; statistics already derived are never discarded.
func (s *AnalysisService) Analyze(record *sample.Record) (*analysis.Report, error) {
	enriched, err := s.Reconcile(record)
	if err != nil {
		return nil, err
	}

	id := record.ID
	if id.IsEmpty() {
		id = core.NewID()
	}

	report := &analysis.Report{
		ID:         id,
		SampleName: record.Name,
		Record:     enriched,
		Intervals:  make(map[analysis.IntervalKind]analysis.IntervalResult),
		CreatedAt:  time.Now().UTC(),
	}

	if series, ok, _ := enriched.Series(); ok {
		if sum, err := summary.Compute(series); err == nil {
			report.Summary = sum
		}
	}

	if enriched.MeanIntervalKnownVariance {
		report.Intervals[analysis.MeanKnownVariance] = s.meanKnownVariance(enriched)
	}
	if enriched.MeanIntervalUnknownVariance {
		report.Intervals[analysis.MeanUnknownVariance] = s.meanUnknownVariance(enriched)
	}
	if enriched.VarianceInterval {
		report.Intervals[analysis.VarianceInterval] = s.varianceInterval(enriched)
	}

	return report, nil
}

func (s *AnalysisService) meanKnownVariance(record *sample.Record) analysis.IntervalResult {
	n, err := requireScalar(record.Params.SampleSize, "params.sampleSize")
	if err != nil {
		return failedInterval(err)
	}
	mean, err := requireScalar(record.Statistics.Mean, "statistics.mean")
	if err != nil {
		return failedInterval(err)
	}
	variance, err := requireScalar(record.Params.Variance, "params.variance")
	if err != nil {
		return failedInterval(err)
	}

	result, err := s.estimator.MeanWithKnownVariance(n, mean, variance, record.Confidence)
	if err != nil {
		return failedInterval(err)
	}
	return analysis.IntervalResult{Interval: &result}
}

func (s *AnalysisService) meanUnknownVariance(record *sample.Record) analysis.IntervalResult {
	n, err := requireScalar(record.Params.SampleSize, "params.sampleSize")
	if err != nil {
		return failedInterval(err)
	}
	// For n <= 1 the unbiased variance is necessarily absent; report the
	// degenerate sample, not the missing field it causes.
	if n <= 1 {
		return failedInterval(core.NewDegenerateSampleError("confidence interval", n))
	}
	mean, err := requireScalar(record.Statistics.Mean, "statistics.mean")
	if err != nil {
		return failedInterval(err)
	}
	variance, err := requireScalar(record.Statistics.UnbiasedVariance, "statistics.unbiasedVariance")
	if err != nil {
		return failedInterval(err)
	}

	result, err := s.estimator.MeanWithUnknownVariance(n, mean, variance, record.Confidence)
	if err != nil {
		return failedInterval(err)
	}
	return analysis.IntervalResult{Interval: &result}
}

func (s *AnalysisService) varianceInterval(record *sample.Record) analysis.IntervalResult {
	n, err := requireScalar(record.Params.SampleSize, "params.sampleSize")
	if err != nil {
		return failedInterval(err)
	}
	if n <= 1 {
		return failedInterval(core.NewDegenerateSampleError("confidence interval", n))
	}
	variance, err := requireScalar(record.Statistics.UnbiasedVariance, "statistics.unbiasedVariance")
	if err != nil {
		return failedInterval(err)
	}

	result, err := s.estimator.Variance(n, variance, record.Confidence)
	if err != nil {
		return failedInterval(err)
	}
	return analysis.IntervalResult{Interval: &result}
}

func requireScalar(value *float64, name string) (float64, error) {
	if value == nil {
		return 0, core.NewInvalidParameterError(name, "is required but absent")
	}
	return *value, nil
}

func failedInterval(err error) analysis.IntervalResult {
	return analysis.IntervalResult{Error: err.Error()}
}
