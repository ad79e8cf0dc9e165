package sample

import (
	"statlab/domain/core"
)

// Params holds named scalars that may be given by the source record (a known
// population variance, for example) or derived during reconciliation. Absent
// fields are nil, never zero-valued.
type Params struct {
	SampleSize        *float64 `json:"sampleSize,omitempty"`
	Mean              *float64 `json:"mean,omitempty"`
	Variance          *float64 `json:"variance,omitempty"`
	StandardDeviation *float64 `json:"standardDeviation,omitempty"`
}

// Statistics holds scalars that are always derived from the series or from
// each other during reconciliation.
type Statistics struct {
	Mean                      *float64 `json:"mean,omitempty"`
	BiasedVariance            *float64 `json:"biasedVariance,omitempty"`
	UnbiasedVariance          *float64 `json:"unbiasedVariance,omitempty"`
	BiasedStandardDeviation   *float64 `json:"biasedStandardDeviation,omitempty"`
	UnbiasedStandardDeviation *float64 `json:"unbiasedStandardDeviation,omitempty"`
}

// Record is the unit of work: one dataset plus the analysis requested for it.
// The JSON shape matches the sample documents on disk.
type Record struct {
	ID   core.ID `json:"-"`
	Name string  `json:"-"`

	Values            []float64          `json:"values,omitempty"`
	VariationalSeries map[string]float64 `json:"variationalSeries,omitempty"`

	Params     Params     `json:"params"`
	Statistics Statistics `json:"statistics"`

	Confidence float64 `json:"confidence,omitempty"`

	MeanIntervalKnownVariance   bool `json:"meanConfidenceIntervalWithKnownVariance,omitempty"`
	MeanIntervalUnknownVariance bool `json:"meanConfidenceIntervalWithUnknownVariance,omitempty"`
	VarianceInterval            bool `json:"varianceConfidenceInterval,omitempty"`
}

// Scalar returns a pointer to v, for populating optional fields.
func Scalar(v float64) *float64 {
	return &v
}

// HasSeries reports whether the record carries either input shape.
func (r *Record) HasSeries() bool {
	return len(r.Values) > 0 || len(r.VariationalSeries) > 0
}

// Series builds the weighted series from whichever input shape is present.
// Exactly one shape may be present: both at once is a malformed record.
// Neither present returns (nil, false, nil); statistics then stay as supplied.
func (r *Record) Series() (WeightedSeries, bool, error) {
	hasValues := len(r.Values) > 0
	hasVariational := len(r.VariationalSeries) > 0

	switch {
	case hasValues && hasVariational:
		return nil, false, core.NewMalformedInputError("record carries both values and variationalSeries")
	case hasValues:
		return SeriesFromValues(r.Values), true, nil
	case hasVariational:
		series, err := SeriesFromVariational(r.VariationalSeries)
		if err != nil {
			return nil, false, err
		}
		return series, true, nil
	default:
		return nil, false, nil
	}
}

// Clone returns a deep copy so enrichment never mutates the loaded input.
func (r *Record) Clone() *Record {
	out := *r

	if r.Values != nil {
		out.Values = append([]float64(nil), r.Values...)
	}
	if r.VariationalSeries != nil {
		out.VariationalSeries = make(map[string]float64, len(r.VariationalSeries))
		for k, v := range r.VariationalSeries {
			out.VariationalSeries[k] = v
		}
	}

	out.Params.SampleSize = cloneScalar(r.Params.SampleSize)
	out.Params.Mean = cloneScalar(r.Params.Mean)
	out.Params.Variance = cloneScalar(r.Params.Variance)
	out.Params.StandardDeviation = cloneScalar(r.Params.StandardDeviation)

	out.Statistics.Mean = cloneScalar(r.Statistics.Mean)
	out.Statistics.BiasedVariance = cloneScalar(r.Statistics.BiasedVariance)
	out.Statistics.UnbiasedVariance = cloneScalar(r.Statistics.UnbiasedVariance)
	out.Statistics.BiasedStandardDeviation = cloneScalar(r.Statistics.BiasedStandardDeviation)
	out.Statistics.UnbiasedStandardDeviation = cloneScalar(r.Statistics.UnbiasedStandardDeviation)

	return &out
}

func cloneScalar(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
