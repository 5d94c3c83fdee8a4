package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/analytix/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// requestFlags binds every request option to command flags.
type requestFlags struct {
	startDate             string
	endDate               string
	dimensions            []string
	metrics               []string
	filters               string
	sortBy                []string
	maxResults            int
	startIndex            int
	currency              string
	includeHistoricalData bool
	// window is the range used when no start date is given. Zero makes the
	// start date mandatory.
	window time.Duration
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.startDate, "start-date", "s", "", "First day of the report (YYYY-MM-DD)")
	flags.StringVarP(&f.endDate, "end-date", "e", "", "Last day of the report (YYYY-MM-DD), defaults to today")
	flags.StringSliceVarP(&f.dimensions, "dimensions", "d", nil, "Dimensions to group by")
	flags.StringSliceVarP(&f.metrics, "metrics", "m", nil, "Metrics to retrieve, defaults to every supported metric")
	flags.StringVarP(&f.filters, "filters", "f", "", "Filters as key==value pairs separated by ';'")
	flags.StringSliceVar(&f.sortBy, "sort", nil, "Sort keys, prefix with '-' for descending order")
	flags.IntVarP(&f.maxResults, "max-results", "r", 0, "Maximum number of rows, 0 for unlimited")
	flags.IntVar(&f.startIndex, "start-index", domain.DefaultStartIndex, "One-based index of the first row")
	flags.StringVar(&f.currency, "currency", "", "ISO 4217 currency for revenue metrics")
	flags.BoolVar(&f.includeHistoricalData, "include-historical-data", false,
		"Include data from before the channel was linked to the owner")

	if f.window == 0 {
		_ = cmd.MarkFlagRequired("start-date")
	}
}

// build returns the request described by the flags. defaultCurrency applies
// when no currency flag was given.
func (f *requestFlags) build(now time.Time, defaultCurrency string) (*domain.Request, error) {
	end := now.UTC().Truncate(24 * time.Hour)
	if f.endDate != "" {
		t, err := time.Parse(dateLayout, f.endDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", domain.ErrMalformedRequest, f.endDate)
		}
		end = t
	}

	var start time.Time
	switch {
	case f.startDate != "":
		t, err := time.Parse(dateLayout, f.startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date %q", domain.ErrMalformedRequest, f.startDate)
		}
		start = t
	case f.window > 0:
		start = end.Add(-f.window)
	}

	filters, err := domain.ParseFilters(f.filters)
	if err != nil {
		return nil, err
	}

	opts := domain.DefaultRequestOptions()
	opts.Dimensions = f.dimensions
	opts.Metrics = f.metrics
	opts.Filters = filters
	opts.SortBy = f.sortBy
	opts.MaxResults = f.maxResults
	opts.StartIndex = f.startIndex
	opts.IncludeHistoricalData = f.includeHistoricalData
	switch {
	case f.currency != "":
		opts.Currency = f.currency
	case defaultCurrency != "":
		opts.Currency = defaultCurrency
	}

	return domain.NewRequest(start, end, opts)
}
