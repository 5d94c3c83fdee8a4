package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/de-tools/analytix/pkg/models/store"
	"github.com/de-tools/analytix/pkg/store/duckdb"
)

// Store keeps the history of retrieved reports.
type Store interface {
	// Add stores record and returns its identifier. An empty ID is generated.
	Add(ctx context.Context, record store.ReportRecord) (string, error)
	Get(ctx context.Context, id string) (*store.ReportRecord, error)
	// List returns the reports of profile, most recent first. A limit of
	// zero returns every report.
	List(ctx context.Context, profile string, limit int) ([]store.ReportRecord, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) Add(ctx context.Context, record store.ReportRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO reports (id, profile, report_type, start_date, end_date, retrieved_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		record.ID,
		record.Profile,
		record.ReportType,
		record.StartDate,
		record.EndDate,
		record.RetrievedAt,
		string(record.Payload),
	}

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	return record.ID, nil
}

const selectColumns = `id, profile, report_type, start_date, end_date, retrieved_at, payload`

func (s *reportStore) Get(ctx context.Context, id string) (*store.ReportRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM reports WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return record, nil
}

func (s *reportStore) List(ctx context.Context, profile string, limit int) ([]store.ReportRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM reports WHERE profile = ? ORDER BY retrieved_at DESC`
	args := []any{profile}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []store.ReportRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*store.ReportRecord, error) {
	var (
		record  store.ReportRecord
		payload string
	)
	err := row.Scan(
		&record.ID,
		&record.Profile,
		&record.ReportType,
		&record.StartDate,
		&record.EndDate,
		&record.RetrievedAt,
		&payload,
	)
	if err != nil {
		return nil, err
	}
	record.Payload = []byte(payload)
	return &record, nil
}
