// Package analysis defines the enriched output of one analysis run: the
// reconciled record plus whichever confidence intervals were requested.
package analysis

import (
	"time"

	"statlab/domain/core"
	"statlab/domain/interval"
	"statlab/domain/sample"
)

// IntervalKind identifies one of the three supported estimators.
type IntervalKind string

const (
	MeanKnownVariance   IntervalKind = "meanConfidenceIntervalWithKnownVariance"
	MeanUnknownVariance IntervalKind = "meanConfidenceIntervalWithUnknownVariance"
	VarianceInterval    IntervalKind = "varianceConfidenceInterval"
)

// AllIntervalKinds lists the estimators in presentation order.
var AllIntervalKinds = []IntervalKind{MeanKnownVariance, MeanUnknownVariance, VarianceInterval}

// IntervalResult is one requested interval: either the bounds or the error
// that prevented computing them. Failed intervals never discard the rest of
// the report.
type IntervalResult struct {
	Interval *interval.Interval `json:"interval,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Failed reports whether the interval could not be computed.
func (r IntervalResult) Failed() bool {
	return r.Error != ""
}

// Summary carries order statistics of the expanded series, for presentation
// alongside the moment-based statistics.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Report is the complete output for one sample record.
type Report struct {
	ID         core.ID                         `json:"id"`
	SampleName string                          `json:"sample_name"`
	Record     *sample.Record                  `json:"record"`
	Intervals  map[IntervalKind]IntervalResult `json:"intervals,omitempty"`
	Summary    *Summary                        `json:"summary,omitempty"`
	CreatedAt  time.Time                       `json:"created_at"`
}

// Confidence returns the record's confidence level.
func (r *Report) Confidence() float64 {
	return r.Record.Confidence
}
