package adapters

import (
	"encoding/json"
	"fmt"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/models/store"
)

func MapDomainReportEntryToStore(e *domain.ReportEntry) (*store.ReportRecord, error) {
	if e == nil || e.Report == nil {
		return nil, fmt.Errorf("report entry has no report")
	}

	payload, err := json.Marshal(e.Report.Payload())
	if err != nil {
		return nil, fmt.Errorf("marshal report payload: %w", err)
	}

	return &store.ReportRecord{
		ID:          e.ID,
		Profile:     e.Profile,
		ReportType:  e.Report.Type(),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		RetrievedAt: e.RetrievedAt,
		Payload:     payload,
	}, nil
}

func MapStoreReportToDomain(r *store.ReportRecord) (*domain.ReportEntry, error) {
	if r == nil {
		return nil, nil
	}

	var payload domain.Payload
	if err := json.Unmarshal(r.Payload, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", r.ID, err)
	}
	report, err := domain.NewReport(r.ReportType, payload)
	if err != nil {
		return nil, fmt.Errorf("rebuild report %s: %w", r.ID, err)
	}

	return &domain.ReportEntry{
		ID:          r.ID,
		Profile:     r.Profile,
		ReportType:  r.ReportType,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		RetrievedAt: r.RetrievedAt,
		Report:      report,
	}, nil
}
