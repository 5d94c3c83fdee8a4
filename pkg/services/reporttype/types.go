package reporttype

// FilterRule declares one accepted filter key.
type FilterRule struct {
	Key string
	// Values restricts the accepted values; empty accepts any value.
	Values []string
	// Required filters must be present. When Values holds a single entry the
	// filter must also equal it.
	Required bool
}

// FilterPolicy describes which filters a report type accepts. An empty
// Allowed list forbids filters altogether.
type FilterPolicy struct {
	Allowed []FilterRule
	// Exclusive groups allow at most one of their keys per request.
	Exclusive [][]string
}

// Forbidden reports whether the policy rejects every filter.
func (p FilterPolicy) Forbidden() bool {
	return len(p.Allowed) == 0
}

// Rule returns the rule for key.
func (p FilterPolicy) Rule(key string) (FilterRule, bool) {
	for _, r := range p.Allowed {
		if r.Key == key {
			return r, true
		}
	}
	return FilterRule{}, false
}

// ReportType is an immutable catalog entry describing one report shape.
type ReportType struct {
	ID   string
	Name string

	// Required dimensions must all be selected.
	Required []string
	// OneOf groups need exactly one of their dimensions selected.
	OneOf [][]string
	// Optional groups allow at most one of their dimensions.
	Optional [][]string
	// MaxOptional bounds how many optional dimensions may be selected at
	// once. Zero means no bound.
	MaxOptional int

	// Metrics lists the allowed metrics in the order used when a request
	// asks for all of them.
	Metrics []string
	// SortKeys restricts sorting to these columns. Empty allows any selected
	// dimension or metric.
	SortKeys []string
	Filters  FilterPolicy

	// MaxResults, when set, makes max-results mandatory and bounds it.
	MaxResults int
	// DescendingSort requires at least one sort key, all descending.
	DescendingSort bool
}

func (rt ReportType) String() string {
	return rt.Name
}

// RequiredDimensions returns the minimal dimension selection of the type:
// every required dimension plus the first choice of each one-of group.
func (rt ReportType) RequiredDimensions() []string {
	dims := append([]string{}, rt.Required...)
	for _, g := range rt.OneOf {
		if len(g) > 0 {
			dims = append(dims, g[0])
		}
	}
	return dims
}

// RequiredFilters returns the filters every request of this type must carry,
// with their mandated value where the type fixes one.
func (rt ReportType) RequiredFilters() map[string]string {
	filters := map[string]string{}
	for _, r := range rt.Filters.Allowed {
		if !r.Required {
			continue
		}
		value := ""
		if len(r.Values) > 0 {
			value = r.Values[0]
		}
		filters[r.Key] = value
	}
	return filters
}

// Dimensions returns every dimension the type can report on.
func (rt ReportType) Dimensions() []string {
	dims := append([]string{}, rt.Required...)
	for _, g := range rt.OneOf {
		dims = append(dims, g...)
	}
	for _, g := range rt.Optional {
		dims = append(dims, g...)
	}
	return dims
}

// AllowsMetric reports whether metric can be requested from this type.
func (rt ReportType) AllowsMetric(metric string) bool {
	return contains(rt.Metrics, metric)
}

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}
