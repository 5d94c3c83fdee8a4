package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

const (
	DefaultCurrency   = "USD"
	DefaultStartIndex = 1
)

// RetiredDimensions can no longer be requested from the API.
var RetiredDimensions = []string{"7DayTotals", "30DayTotals"}

// RequestOptions enumerates every optional request setting. Use
// DefaultRequestOptions as the starting point.
type RequestOptions struct {
	Dimensions []string
	// Metrics selects report columns; empty means every metric supported by
	// the matched report type.
	Metrics []string
	Filters map[string]string
	// SortBy keys may be prefixed with "-" for descending order.
	SortBy []string
	// MaxResults of 0 removes the row limit.
	MaxResults int
	// StartIndex is one-based.
	StartIndex            int
	Currency              string
	IncludeHistoricalData bool
}

func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		Filters:    map[string]string{},
		StartIndex: DefaultStartIndex,
		Currency:   DefaultCurrency,
	}
}

// Request is a validated report request. Build it with NewRequest.
type Request struct {
	StartDate time.Time
	EndDate   time.Time
	RequestOptions
}

// NewRequest validates the date range and options and returns a request ready
// for classification.
func NewRequest(start, end time.Time, opts RequestOptions) (*Request, error) {
	if err := CheckRetiredDimensions(opts.Dimensions); err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrMalformedRequest)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: the start date should be earlier than the end date", ErrMalformedRequest)
	}
	if opts.MaxResults < 0 {
		return nil, fmt.Errorf("%w: the maximum number of results should be no less than 0 (0 for unlimited results)",
			ErrMalformedRequest)
	}
	if opts.StartIndex < 1 {
		return nil, fmt.Errorf("%w: the start index should be no less than 1", ErrMalformedRequest)
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if !validCurrency(opts.Currency) {
		return nil, fmt.Errorf("%w: expected valid currency as ISO 4217 code, got %q", ErrMalformedRequest, opts.Currency)
	}
	if opts.Filters == nil {
		opts.Filters = map[string]string{}
	}
	for _, key := range opts.SortBy {
		if strings.TrimPrefix(key, "-") == "" {
			return nil, fmt.Errorf("%w: empty sort key", ErrMalformedRequest)
		}
	}

	return &Request{
		StartDate:      start,
		EndDate:        end,
		RequestOptions: opts,
	}, nil
}

// validCurrency accepts upper case ISO 4217 codes of real currencies. The
// code is sent on the wire as given.
func validCurrency(code string) bool {
	unit, err := currency.ParseISO(code)
	if err != nil || unit.String() != code {
		return false
	}
	return unit != currency.XXX && unit != currency.XTS
}

// CheckRetiredDimensions rejects dimensions the API no longer serves.
func CheckRetiredDimensions(dimensions []string) error {
	for _, d := range dimensions {
		for _, retired := range RetiredDimensions {
			if d == retired {
				return fmt.Errorf("%w: the %q dimension was retired and can no longer be used",
					ErrMalformedRequest, d)
			}
		}
	}
	return nil
}

// FilterKeys returns the filter keys in lexical order.
func (r *Request) FilterKeys() []string {
	keys := make([]string, 0, len(r.Filters))
	for k := range r.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllMetrics reports whether the request defers the metric selection to the
// matched report type.
func (r *Request) AllMetrics() bool {
	return len(r.Metrics) == 0
}
