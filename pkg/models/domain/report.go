package domain

import "fmt"

// Column types as reported in column headers.
const (
	ColumnTypeDimension = "DIMENSION"
	ColumnTypeMetric    = "METRIC"
)

// Data types declared in column headers.
const (
	DataTypeString  = "STRING"
	DataTypeInteger = "INTEGER"
	DataTypeFloat   = "FLOAT"
)

// Column names that exports may reinterpret as dates.
const (
	ColumnDay   = "day"
	ColumnMonth = "month"
)

// ColumnHeader describes one column of a report payload.
type ColumnHeader struct {
	Name       string `json:"name"`
	ColumnType string `json:"columnType,omitempty"`
	DataType   string `json:"dataType,omitempty"`
}

// Payload is the raw tabular body returned by the analytics endpoint.
type Payload struct {
	Kind          string         `json:"kind,omitempty"`
	ColumnHeaders []ColumnHeader `json:"columnHeaders"`
	// Rows is nil when the response carried no rows key.
	Rows [][]any `json:"rows,omitzero"`
}

// Report is the result of a successful retrieval. The payload must not be
// modified after NewReport; the derived columns and shape are cached.
type Report struct {
	reportType string
	payload    Payload
	columns    []string
	rows       int
}

// NewReport wraps payload as a report of the given type.
func NewReport(reportType string, payload Payload) (*Report, error) {
	columns := make([]string, len(payload.ColumnHeaders))
	for i, h := range payload.ColumnHeaders {
		columns[i] = h.Name
	}
	for i, row := range payload.Rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
	}

	return &Report{
		reportType: reportType,
		payload:    payload,
		columns:    columns,
		rows:       len(payload.Rows),
	}, nil
}

// Type returns the identifier of the matched report type.
func (r *Report) Type() string {
	return r.reportType
}

func (r *Report) Payload() Payload {
	return r.payload
}

func (r *Report) Columns() []string {
	return r.columns
}

func (r *Report) Rows() [][]any {
	return r.payload.Rows
}

// Shape returns the number of rows and columns.
func (r *Report) Shape() (int, int) {
	return r.rows, len(r.columns)
}

// Dimensions returns the dimension columns in the order they appear.
func (r *Report) Dimensions() []string {
	return r.columnsOfType(ColumnTypeDimension)
}

// Metrics returns the metric columns in the order they appear.
func (r *Report) Metrics() []string {
	return r.columnsOfType(ColumnTypeMetric)
}

func (r *Report) columnsOfType(columnType string) []string {
	var names []string
	for _, h := range r.payload.ColumnHeaders {
		if h.ColumnType == columnType {
			names = append(names, h.Name)
		}
	}
	return names
}

func (r *Report) String() string {
	return fmt.Sprintf("%s report shape=(%d, %d)", r.reportType, r.rows, len(r.columns))
}
