// Package interval derives two-sided confidence intervals for the population
// mean and variance from accumulated sample statistics, using standard
// sampling-distribution theory.
package interval

import (
	"math"

	"statlab/domain/core"
)

// Interval is a two-sided confidence interval, Low <= High.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Estimator computes confidence intervals against a quantile collaborator.
// Estimators are pure functions of their numeric inputs; nothing here
// mutates the sample record.
type Estimator struct {
	quantiles Quantiler
}

// NewEstimator creates an interval estimator backed by the given quantile
// collaborator.
func NewEstimator(quantiles Quantiler) *Estimator {
	return &Estimator{quantiles: quantiles}
}

// MeanWithKnownVariance is the normal-theory interval for the mean when the
// population variance is supplied externally:
//
//	mean ± Φ⁻¹((c+1)/2) * sqrt(variance / n)
func (e *Estimator) MeanWithKnownVariance(n, mean, variance, confidence float64) (Interval, error) {
	if err := validatePreconditions(n, confidence); err != nil {
		return Interval{}, err
	}
	if variance < 0 {
		return Interval{}, core.NewInvalidParameterError("variance", "must be non-negative")
	}

	quantile, err := e.quantile(Normal(), (confidence+1)/2)
	if err != nil {
		return Interval{}, err
	}

	epsilon := quantile * math.Sqrt(variance/n)
	return Interval{Low: mean - epsilon, High: mean + epsilon}, nil
}

// MeanWithUnknownVariance is the Student's t interval for the mean, scaled by
// the unbiased sample variance:
//
//	mean ± t_{(c+1)/2, n-1} * sqrt(unbiasedVariance / n)
func (e *Estimator) MeanWithUnknownVariance(n, mean, unbiasedVariance, confidence float64) (Interval, error) {
	if err := validatePreconditions(n, confidence); err != nil {
		return Interval{}, err
	}
	if unbiasedVariance < 0 {
		return Interval{}, core.NewInvalidParameterError("unbiasedVariance", "must be non-negative")
	}

	quantile, err := e.quantile(StudentsT(n-1), (confidence+1)/2)
	if err != nil {
		return Interval{}, err
	}

	epsilon := quantile * math.Sqrt(unbiasedVariance/n)
	return Interval{Low: mean - epsilon, High: mean + epsilon}, nil
}

// Variance is the chi-squared pivot interval for the population variance:
//
//	( (n-1)s² / χ²_{(1+c)/2, n-1} , (n-1)s² / χ²_{(1-c)/2, n-1} )
//
// The larger chi-squared quantile yields the lower variance bound and vice
// versa. That pairing is the contract of the pivot; the bounds must not be
// reordered.
func (e *Estimator) Variance(n, unbiasedVariance, confidence float64) (Interval, error) {
	if err := validatePreconditions(n, confidence); err != nil {
		return Interval{}, err
	}
	if unbiasedVariance < 0 {
		return Interval{}, core.NewInvalidParameterError("unbiasedVariance", "must be non-negative")
	}

	upper, err := e.quantile(ChiSquared(n-1), (1+confidence)/2)
	if err != nil {
		return Interval{}, err
	}
	lower, err := e.quantile(ChiSquared(n-1), (1-confidence)/2)
	if err != nil {
		return Interval{}, err
	}

	scaled := (n - 1) * unbiasedVariance
	return Interval{Low: scaled / upper, High: scaled / lower}, nil
}

func (e *Estimator) quantile(dist Distribution, p float64) (float64, error) {
	value, err := e.quantiles.Quantile(dist, p)
	if err != nil {
		return 0, core.NewQuantileError(dist.String(), p, err)
	}
	return value, nil
}

func validatePreconditions(n, confidence float64) error {
	if n <= 1 {
		return core.NewDegenerateSampleError("confidence interval", n)
	}
	if confidence <= 0 || confidence >= 1 {
		return core.NewInvalidParameterError("confidence", "must be inside (0, 1)")
	}
	return nil
}
