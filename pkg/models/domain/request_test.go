package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		modify  func(o *RequestOptions)
		wantErr string
	}{
		{
			name:  "defaults",
			start: start,
			end:   end,
		},
		{
			name:    "negative max results",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.MaxResults = -1 },
			wantErr: "maximum number of results",
		},
		{
			name:    "start index below one",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.StartIndex = 0 },
			wantErr: "start index",
		},
		{
			name:    "end before start",
			start:   end,
			end:     start,
			wantErr: "start date should be earlier",
		},
		{
			name:    "same day",
			start:   start,
			end:     start,
			wantErr: "start date should be earlier",
		},
		{
			name:    "missing start date",
			end:     end,
			wantErr: "dates are required",
		},
		{
			name:    "unknown currency",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.Currency = "ABC" },
			wantErr: "ISO 4217",
		},
		{
			name:    "lower case currency",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.Currency = "usd" },
			wantErr: "ISO 4217",
		},
		{
			name:    "no currency code",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.Currency = "XXX" },
			wantErr: "ISO 4217",
		},
		{
			name:    "testing currency code",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.Currency = "XTS" },
			wantErr: "ISO 4217",
		},
		{
			name:    "retired dimension",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.Dimensions = []string{"day", "7DayTotals"} },
			wantErr: "retired",
		},
		{
			name:    "empty sort key",
			start:   start,
			end:     end,
			modify:  func(o *RequestOptions) { o.SortBy = []string{"-"} },
			wantErr: "empty sort key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			opts := DefaultRequestOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}

			// When
			req, err := NewRequest(tt.start, tt.end, opts)

			// Then
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrMalformedRequest)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultCurrency, req.Currency)
			assert.Equal(t, DefaultStartIndex, req.StartIndex)
			assert.True(t, req.AllMetrics())
		})
	}
}

func TestNewRequest_NormalisesOptions(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req, err := NewRequest(start, start.AddDate(0, 0, 7), RequestOptions{
		StartIndex: 1,
		Metrics:    []string{"views"},
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", req.Currency)
	assert.NotNil(t, req.Filters)
	assert.False(t, req.AllMetrics())
}

func TestRequest_FilterKeys(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := DefaultRequestOptions()
	opts.Filters = map[string]string{"video": "a", "country": "US", "isCurated": "1"}

	req, err := NewRequest(start, start.AddDate(0, 1, 0), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "isCurated", "video"}, req.FilterKeys())
}
