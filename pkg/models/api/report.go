package api

import "time"

type ReportType struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Required       []string   `json:"required_dimensions,omitempty" yaml:"required_dimensions,omitempty"`
	OneOf          [][]string `json:"one_of,omitempty" yaml:"one_of,omitempty"`
	Optional       [][]string `json:"optional_dimensions,omitempty" yaml:"optional_dimensions,omitempty"`
	MaxOptional    int        `json:"max_optional,omitempty" yaml:"max_optional,omitempty"`
	Metrics        []string   `json:"metrics" yaml:"metrics"`
	SortKeys       []string   `json:"sort_keys,omitempty" yaml:"sort_keys,omitempty"`
	Filters        []Filter   `json:"filters,omitempty" yaml:"filters,omitempty"`
	MaxResults     int        `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	DescendingSort bool       `json:"descending_sort,omitempty" yaml:"descending_sort,omitempty"`
}

type Filter struct {
	Key      string   `json:"key" yaml:"key"`
	Values   []string `json:"values,omitempty" yaml:"values,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

type DetermineRequest struct {
	Dimensions []string          `json:"dimensions"`
	Metrics    []string          `json:"metrics"`
	Filters    map[string]string `json:"filters"`
	SortBy     []string          `json:"sort"`
	MaxResults int               `json:"max_results"`
}

type DetermineResponse struct {
	ReportType string   `json:"report_type"`
	Name       string   `json:"name"`
	Metrics    []string `json:"metrics"`
}

type ColumnHeader struct {
	Name       string `json:"name"`
	ColumnType string `json:"columnType,omitempty"`
	DataType   string `json:"dataType,omitempty"`
}

type Report struct {
	ID            string         `json:"id,omitempty"`
	ReportType    string         `json:"report_type"`
	Rows          int            `json:"row_count"`
	Columns       int            `json:"column_count"`
	ColumnHeaders []ColumnHeader `json:"columnHeaders"`
	Data          [][]any        `json:"rows"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Profile     string    `json:"profile"`
	ReportType  string    `json:"report_type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Rows        int       `json:"row_count"`
	Columns     int       `json:"column_count"`
}

type Error struct {
	Error string `json:"error"`
}
