// Package render formats analysis reports for humans: plain console text,
// markdown, and HTML for the API.
package render

import (
	"fmt"
	"io"

	"statlab/domain/analysis"
	"statlab/domain/sample"
)

type paramName struct {
	key  string
	name string
	get  func(*sample.Record) *float64
}

var paramsNames = []paramName{
	{"sampleSize", "Sample size", func(r *sample.Record) *float64 { return r.Params.SampleSize }},
	{"mean", "Mean", func(r *sample.Record) *float64 { return r.Params.Mean }},
	{"variance", "Variance", func(r *sample.Record) *float64 { return r.Params.Variance }},
	{"standardDeviation", "Standard deviation", func(r *sample.Record) *float64 { return r.Params.StandardDeviation }},
}

var statisticsNames = []paramName{
	{"mean", "Mean", func(r *sample.Record) *float64 { return r.Statistics.Mean }},
	{"biasedVariance", "Biased variance", func(r *sample.Record) *float64 { return r.Statistics.BiasedVariance }},
	{"unbiasedVariance", "Unbiased variance", func(r *sample.Record) *float64 { return r.Statistics.UnbiasedVariance }},
	{"biasedStandardDeviation", "Biased standard deviation", func(r *sample.Record) *float64 { return r.Statistics.BiasedStandardDeviation }},
	{"unbiasedStandardDeviation", "Unbiased standard deviation", func(r *sample.Record) *float64 { return r.Statistics.UnbiasedStandardDeviation }},
}

var intervalNames = map[analysis.IntervalKind]string{
	analysis.MeanKnownVariance:   "Mean confidence interval (with known variance)",
	analysis.MeanUnknownVariance: "Mean confidence interval (with unknown variance)",
	analysis.VarianceInterval:    "Variance confidence interval",
}

// Console renders a report as plain text.
type Console struct {
	out io.Writer
}

// NewConsole creates a console renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render writes the known parameters, known statistics, optional summary and
// the requested intervals.
func (c *Console) Render(report *analysis.Report) {
	record := report.Record

	fmt.Fprintln(c.out, "Known parameters:")
	for _, p := range paramsNames {
		if value := p.get(record); value != nil {
			fmt.Fprintf(c.out, "%s: %.8f\n", p.name, *value)
		}
	}

	fmt.Fprintln(c.out, "\nKnown statistics:")
	for _, p := range statisticsNames {
		if value := p.get(record); value != nil {
			fmt.Fprintf(c.out, "%s: %.8f\n", p.name, *value)
		}
	}

	if s := report.Summary; s != nil {
		fmt.Fprintln(c.out, "\nSummary:")
		fmt.Fprintf(c.out, "Min: %.8f\n", s.Min)
		fmt.Fprintf(c.out, "Max: %.8f\n", s.Max)
		fmt.Fprintf(c.out, "Median: %.8f\n", s.Median)
		fmt.Fprintf(c.out, "Q25: %.8f\n", s.Q25)
		fmt.Fprintf(c.out, "Q75: %.8f\n", s.Q75)
	}

	if len(report.Intervals) > 0 {
		fmt.Fprintln(c.out)
	}
	for _, kind := range analysis.AllIntervalKinds {
		result, ok := report.Intervals[kind]
		if !ok {
			continue
		}
		if result.Failed() {
			fmt.Fprintf(c.out, "%s: skipped: %s\n", intervalNames[kind], result.Error)
			continue
		}
		fmt.Fprintf(c.out, "%s: (%.8f, %.8f), confidence = %.2f\n",
			intervalNames[kind], result.Interval.Low, result.Interval.High, report.Confidence())
	}
}
