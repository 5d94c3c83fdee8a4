package reporttype

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// Verify checks a classified request against the rules of rt. Checks run in a
// fixed order and the first violation is returned.
func (rt ReportType) Verify(
	dimensions, metrics []string,
	filters map[string]string,
	sortBy []string,
	maxResults int,
) error {
	checks := []func() error{
		func() error { return rt.verifyMetrics(metrics) },
		func() error { return rt.verifySortKeys(dimensions, metrics, sortBy) },
		func() error { return rt.verifyFilters(filters) },
		func() error { return rt.verifyOptionalCount(dimensions) },
		func() error { return rt.verifyStructure(filters, sortBy, maxResults) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (rt ReportType) verifyMetrics(metrics []string) error {
	for _, m := range metrics {
		if !rt.AllowsMetric(m) {
			return rt.invalid("metric %q is not supported", m)
		}
	}
	return nil
}

func (rt ReportType) verifySortKeys(dimensions, metrics, sortBy []string) error {
	for _, key := range sortBy {
		column := strings.TrimPrefix(key, "-")
		if !contains(dimensions, column) && !contains(metrics, column) {
			return rt.invalid("sort key %q is not a selected dimension or metric", column)
		}
		if len(rt.SortKeys) > 0 && !contains(rt.SortKeys, column) {
			return rt.invalid("sorting by %q is not supported", column)
		}
	}
	return nil
}

func (rt ReportType) verifyFilters(filters map[string]string) error {
	if len(filters) == 0 {
		return nil
	}
	if rt.Filters.Forbidden() {
		return rt.invalid("filters are not supported")
	}

	for _, key := range sortedKeys(filters) {
		rule, ok := rt.Filters.Rule(key)
		if !ok {
			return rt.invalid("filter %q is not supported", key)
		}
		value := filters[key]
		if len(rule.Values) > 0 && !contains(rule.Values, value) {
			return rt.invalid("value %q is not accepted for filter %q", value, key)
		}
	}

	for _, group := range rt.Filters.Exclusive {
		var present []string
		for _, key := range group {
			if _, ok := filters[key]; ok {
				present = append(present, key)
			}
		}
		if len(present) > 1 {
			return rt.invalid("filters %s cannot be used together", strings.Join(present, ", "))
		}
	}
	return nil
}

func (rt ReportType) verifyOptionalCount(dimensions []string) error {
	if rt.MaxOptional == 0 {
		return nil
	}

	selected := toSet(dimensions)
	n := 0
	for _, group := range rt.Optional {
		for _, d := range group {
			if _, ok := selected[d]; ok {
				n++
			}
		}
	}
	if n > rt.MaxOptional {
		return rt.invalid("at most %d optional dimension(s) can be used, got %d", rt.MaxOptional, n)
	}
	return nil
}

func (rt ReportType) verifyStructure(filters map[string]string, sortBy []string, maxResults int) error {
	for _, rule := range rt.Filters.Allowed {
		if !rule.Required {
			continue
		}
		value, ok := filters[rule.Key]
		if !ok {
			if len(rule.Values) == 1 {
				return rt.invalid("filter %q must be set to %q", rule.Key, rule.Values[0])
			}
			return rt.invalid("filter %q is required", rule.Key)
		}
		if len(rule.Values) == 1 && value != rule.Values[0] {
			return rt.invalid("filter %q must be set to %q", rule.Key, rule.Values[0])
		}
	}

	if rt.MaxResults > 0 && (maxResults < 1 || maxResults > rt.MaxResults) {
		return rt.invalid("max results must be between 1 and %d, got %d", rt.MaxResults, maxResults)
	}

	if rt.DescendingSort {
		if len(sortBy) == 0 {
			return rt.invalid("a descending sort key is required")
		}
		for _, key := range sortBy {
			if !strings.HasPrefix(key, "-") {
				return rt.invalid("sort key %q must be descending", key)
			}
		}
	}
	return nil
}

func (rt ReportType) invalid(format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", domain.ErrInvalidForType, rt.ID, fmt.Sprintf(format, args...))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
