package client

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// QueryParam is one key/value pair of a report query.
type QueryParam struct {
	Key   string
	Value string
}

// Query keeps its parameters in the order they were added.
type Query []QueryParam

// BuildQuery renders req into the query understood by the reports endpoint.
// Metrics are passed separately because the request may defer them to the
// matched report type.
func BuildQuery(req *domain.Request, metrics []string) Query {
	filters := make([]string, 0, len(req.Filters))
	for _, key := range req.FilterKeys() {
		filters = append(filters, key+"=="+req.Filters[key])
	}

	return Query{
		{Key: "ids", Value: "channel==MINE"},
		{Key: "metrics", Value: strings.Join(metrics, ",")},
		{Key: "startDate", Value: req.StartDate.Format(dateLayout)},
		{Key: "endDate", Value: req.EndDate.Format(dateLayout)},
		{Key: "currency", Value: req.Currency},
		{Key: "dimensions", Value: strings.Join(req.Dimensions, ",")},
		{Key: "filters", Value: strings.Join(filters, ";")},
		{Key: "includeHistoricalChannelData", Value: strconv.FormatBool(req.IncludeHistoricalData)},
		{Key: "maxResults", Value: strconv.Itoa(req.MaxResults)},
		{Key: "sort", Value: strings.Join(req.SortBy, ",")},
		{Key: "startIndex", Value: strconv.Itoa(req.StartIndex)},
	}
}

// Get returns the value of key, if present.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode renders the query string without reordering the parameters.
func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
