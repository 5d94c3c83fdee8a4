package client

import (
	"net/url"
	"testing"
	"time"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	// Given
	opts := domain.DefaultRequestOptions()
	opts.Dimensions = []string{"day", "country"}
	opts.Filters = map[string]string{"video": "abc", "continent": "150"}
	opts.SortBy = []string{"-views", "day"}
	opts.MaxResults = 10
	opts.Currency = "EUR"
	opts.IncludeHistoricalData = true

	req, err := domain.NewRequest(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		opts,
	)
	require.NoError(t, err)

	// When
	q := BuildQuery(req, []string{"views", "likes"})

	// Then
	keys := make([]string, len(q))
	for i, p := range q {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{
		"ids", "metrics", "startDate", "endDate", "currency", "dimensions", "filters",
		"includeHistoricalChannelData", "maxResults", "sort", "startIndex",
	}, keys)

	expected := map[string]string{
		"ids":                          "channel==MINE",
		"metrics":                      "views,likes",
		"startDate":                    "2024-01-01",
		"endDate":                      "2024-02-01",
		"currency":                     "EUR",
		"dimensions":                   "day,country",
		"filters":                      "continent==150;video==abc",
		"includeHistoricalChannelData": "true",
		"maxResults":                   "10",
		"sort":                         "-views,day",
		"startIndex":                   "1",
	}
	for key, value := range expected {
		got, ok := q.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, value, got, key)
	}
}

func TestQuery_Encode(t *testing.T) {
	q := Query{
		{Key: "ids", Value: "channel==MINE"},
		{Key: "filters", Value: "country==US;video==a b"},
		{Key: "sort", Value: "-views"},
	}

	encoded := q.Encode()

	assert.Equal(t, "ids=channel%3D%3DMINE&filters=country%3D%3DUS%3Bvideo%3D%3Da+b&sort=-views", encoded)
	values, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, "country==US;video==a b", values.Get("filters"))
}
