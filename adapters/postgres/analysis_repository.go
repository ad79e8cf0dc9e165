package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"statlab/domain/analysis"
	"statlab/domain/core"
	"statlab/domain/sample"
	"statlab/ports"
)

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

// EnsureSchema creates the analyses table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		sample_name TEXT NOT NULL,
		record JSONB NOT NULL,
		intervals JSONB,
		summary JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}
	return nil
}

// Save inserts a report, replacing any previous run with the same id
func (r *analysisRepository) Save(ctx context.Context, report *analysis.Report) error {
	recordJSON, err := json.Marshal(report.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	intervalsJSON, err := json.Marshal(report.Intervals)
	if err != nil {
		return fmt.Errorf("failed to marshal intervals: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `INSERT INTO analyses (id, sample_name, record, intervals, summary, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		sample_name = EXCLUDED.sample_name,
		record = EXCLUDED.record,
		intervals = EXCLUDED.intervals,
		summary = EXCLUDED.summary,
		created_at = EXCLUDED.created_at`

	_, err = r.db.ExecContext(ctx, query,
		report.ID, report.SampleName, recordJSON, intervalsJSON, summaryJSON, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.ID) (*analysis.Report, error) {
	query := `SELECT id, sample_name, record, intervals, summary, created_at
	FROM analyses WHERE id = $1`

	report, err := r.scanReport(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: analysis %s", core.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return report, nil
}

// List retrieves reports ordered by recency with pagination
func (r *analysisRepository) List(ctx context.Context, limit, offset int) ([]*analysis.Report, error) {
	query := `SELECT id, sample_name, record, intervals, summary, created_at
	FROM analyses
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var reports []*analysis.Report
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *analysisRepository) scanReport(row rowScanner) (*analysis.Report, error) {
	var report analysis.Report
	var recordJSON, intervalsJSON, summaryJSON []byte

	err := row.Scan(
		&report.ID, &report.SampleName, &recordJSON, &intervalsJSON, &summaryJSON, &report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Record = &sample.Record{}
	if err := json.Unmarshal(recordJSON, report.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	report.Record.ID = report.ID
	report.Record.Name = report.SampleName

	if len(intervalsJSON) > 0 {
		if err := json.Unmarshal(intervalsJSON, &report.Intervals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal intervals: %w", err)
		}
	}
	if len(summaryJSON) > 0 && string(summaryJSON) != "null" {
		report.Summary = &analysis.Summary{}
		if err := json.Unmarshal(summaryJSON, report.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
		}
	}

	return &report, nil
}
