// Package excel exports analysis reports as xlsx workbooks.
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"statlab/domain/analysis"
)

const sheetName = "Analysis"

// ReportWriter implements ports.ReportSink, writing one workbook per report.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a writer saving workbooks under dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Write saves the report and returns the workbook path.
func (w *ReportWriter) Write(ctx context.Context, report *analysis.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	row := 1
	setRow := func(label string, value interface{}) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}
	section := func(title string) {
		if row > 1 {
			row++
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), title)
		row++
	}

	record := report.Record

	section("Parameters")
	writeScalar(setRow, "Sample size", record.Params.SampleSize)
	writeScalar(setRow, "Mean", record.Params.Mean)
	writeScalar(setRow, "Variance", record.Params.Variance)
	writeScalar(setRow, "Standard deviation", record.Params.StandardDeviation)

	section("Statistics")
	writeScalar(setRow, "Mean", record.Statistics.Mean)
	writeScalar(setRow, "Biased variance", record.Statistics.BiasedVariance)
	writeScalar(setRow, "Unbiased variance", record.Statistics.UnbiasedVariance)
	writeScalar(setRow, "Biased standard deviation", record.Statistics.BiasedStandardDeviation)
	writeScalar(setRow, "Unbiased standard deviation", record.Statistics.UnbiasedStandardDeviation)

	if s := report.Summary; s != nil {
		section("Summary")
		setRow("Min", s.Min)
		setRow("Q25", s.Q25)
		setRow("Median", s.Median)
		setRow("Q75", s.Q75)
		setRow("Max", s.Max)
	}

	if len(report.Intervals) > 0 {
		section(fmt.Sprintf("Confidence intervals (confidence = %.2f)", report.Confidence()))
		names := map[analysis.IntervalKind]string{
			analysis.MeanKnownVariance:   "Mean (known variance)",
			analysis.MeanUnknownVariance: "Mean (unknown variance)",
			analysis.VarianceInterval:    "Variance",
		}
		for _, kind := range analysis.AllIntervalKinds {
			result, ok := report.Intervals[kind]
			if !ok {
				continue
			}
			if result.Failed() {
				setRow(names[kind], "skipped: "+result.Error)
				continue
			}
			setRow(names[kind], fmt.Sprintf("(%.8f, %.8f)", result.Interval.Low, result.Interval.High))
		}
	}

	name := report.SampleName
	if name == "" {
		name = report.ID.String()
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.xlsx", name, report.ID.String()[:8]))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func writeScalar(setRow func(string, interface{}), label string, value *float64) {
	if value != nil {
		setRow(label, *value)
	}
}
