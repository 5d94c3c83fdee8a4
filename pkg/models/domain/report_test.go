package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	return Payload{
		Kind: "youtubeAnalytics#resultTable",
		ColumnHeaders: []ColumnHeader{
			{Name: "day", ColumnType: ColumnTypeDimension, DataType: "STRING"},
			{Name: "views", ColumnType: ColumnTypeMetric, DataType: "INTEGER"},
			{Name: "likes", ColumnType: ColumnTypeMetric, DataType: "INTEGER"},
		},
		Rows: [][]any{
			{"2024-01-01", float64(10), float64(1)},
			{"2024-01-02", float64(12), float64(3)},
		},
	}
}

func TestNewReport(t *testing.T) {
	report, err := NewReport("time-based-activity", samplePayload())
	require.NoError(t, err)

	rows, cols := report.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, "time-based-activity", report.Type())
	assert.Equal(t, []string{"day", "views", "likes"}, report.Columns())
	assert.Equal(t, []string{"day"}, report.Dimensions())
	assert.Equal(t, []string{"views", "likes"}, report.Metrics())
	assert.Equal(t, "time-based-activity report shape=(2, 3)", report.String())
}

func TestNewReport_WithoutRows(t *testing.T) {
	payload := samplePayload()
	payload.Rows = nil

	report, err := NewReport("time-based-activity", payload)
	require.NoError(t, err)

	rows, cols := report.Shape()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 3, cols)
	assert.Empty(t, report.Rows())
	assert.Nil(t, report.Payload().Rows)
}

func TestNewReport_RaggedRow(t *testing.T) {
	payload := samplePayload()
	payload.Rows = append(payload.Rows, []any{"2024-01-03"})

	_, err := NewReport("time-based-activity", payload)
	assert.EqualError(t, err, "row 2 has 1 values, expected 3")
}
