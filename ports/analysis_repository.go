package ports

import (
	"context"

	"statlab/domain/analysis"
	"statlab/domain/core"
)

// AnalysisRepository defines the interface for report persistence.
type AnalysisRepository interface {
	Save(ctx context.Context, report *analysis.Report) error
	GetByID(ctx context.Context, id core.ID) (*analysis.Report, error)
	List(ctx context.Context, limit, offset int) ([]*analysis.Report, error)
}

// ReportSink writes a rendered report to an external destination (an xlsx
// workbook, for example) and returns its location.
type ReportSink interface {
	Write(ctx context.Context, report *analysis.Report) (string, error)
}
