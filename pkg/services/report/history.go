package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/analytix/pkg/adapters"
	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/store/duckdb"
	storereport "github.com/de-tools/analytix/pkg/store/duckdb/report"
)

// History records retrieved reports per profile.
type History struct {
	db    *sql.DB
	store storereport.Store
	now   func() time.Time
}

func NewHistory(db *sql.DB, store storereport.Store) (*History, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if store == nil {
		return nil, fmt.Errorf("report store is nil")
	}
	return &History{db: db, store: store, now: time.Now}, nil
}

// Record stores report as retrieved for req and returns the stored entry.
func (h *History) Record(
	ctx context.Context,
	profile string,
	req *domain.Request,
	report *domain.Report,
) (*domain.ReportEntry, error) {
	entry := &domain.ReportEntry{
		Profile:     profile,
		ReportType:  report.Type(),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		RetrievedAt: h.now().UTC(),
		Report:      report,
	}

	record, err := adapters.MapDomainReportEntryToStore(entry)
	if err != nil {
		return nil, err
	}
	err = duckdb.RunInTransaction(ctx, h.db, func(ctx context.Context) error {
		id, err := h.store.Add(ctx, *record)
		if err != nil {
			return err
		}
		entry.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("id", entry.ID).Str("profile", profile).Msg("report recorded")
	return entry, nil
}

// List returns the most recent reports of profile first.
func (h *History) List(ctx context.Context, profile string, limit int) ([]*domain.ReportEntry, error) {
	records, err := h.store.List(ctx, profile, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.ReportEntry, 0, len(records))
	for i := range records {
		entry, err := adapters.MapStoreReportToDomain(&records[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
