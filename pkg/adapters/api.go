package adapters

import (
	"github.com/de-tools/analytix/pkg/models/api"
	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/services/reporttype"
)

func MapReportTypeDomainToApi(rt reporttype.ReportType) api.ReportType {
	filters := make([]api.Filter, 0, len(rt.Filters.Allowed))
	for _, f := range rt.Filters.Allowed {
		filters = append(filters, api.Filter{Key: f.Key, Values: f.Values, Required: f.Required})
	}

	return api.ReportType{
		ID:             rt.ID,
		Name:           rt.Name,
		Required:       rt.Required,
		OneOf:          rt.OneOf,
		Optional:       rt.Optional,
		MaxOptional:    rt.MaxOptional,
		Metrics:        rt.Metrics,
		SortKeys:       rt.SortKeys,
		Filters:        filters,
		MaxResults:     rt.MaxResults,
		DescendingSort: rt.DescendingSort,
	}
}

func MapReportDomainToApi(id string, r *domain.Report) api.Report {
	rows, cols := r.Shape()
	payload := r.Payload()

	headers := make([]api.ColumnHeader, len(payload.ColumnHeaders))
	for i, h := range payload.ColumnHeaders {
		headers[i] = api.ColumnHeader{Name: h.Name, ColumnType: h.ColumnType, DataType: h.DataType}
	}

	data := r.Rows()
	if data == nil {
		data = [][]any{}
	}

	return api.Report{
		ID:            id,
		ReportType:    r.Type(),
		Rows:          rows,
		Columns:       cols,
		ColumnHeaders: headers,
		Data:          data,
	}
}

func MapReportEntryDomainToApi(e *domain.ReportEntry) api.HistoryEntry {
	entry := api.HistoryEntry{
		ID:          e.ID,
		Profile:     e.Profile,
		ReportType:  e.ReportType,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		RetrievedAt: e.RetrievedAt,
	}
	if e.Report != nil {
		entry.Rows, entry.Columns = e.Report.Shape()
	}
	return entry
}
