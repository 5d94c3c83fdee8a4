package reporttype

import (
	"fmt"
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// Determine returns the first report type, in catalog order, whose dimension
// structure and filter policy accept the request. Metrics do not take part in
// matching; they are checked by Verify.
func (c *Catalog) Determine(dimensions, _ []string, filters map[string]string) (ReportType, error) {
	selected := toSet(dimensions)
	for _, rt := range c.types {
		if rt.matches(selected, filters) {
			return rt, nil
		}
	}

	return ReportType{}, fmt.Errorf("%w: dimensions [%s], filters [%s]",
		domain.ErrUnclassifiable, strings.Join(dimensions, ", "), strings.Join(sortedKeys(filters), ", "))
}

func (rt ReportType) matches(selected map[string]struct{}, filters map[string]string) bool {
	for _, d := range rt.Required {
		if _, ok := selected[d]; !ok {
			return false
		}
	}

	claimed := make(map[string]struct{}, len(selected))
	for _, d := range rt.Required {
		claimed[d] = struct{}{}
	}
	for _, group := range rt.OneOf {
		if countIn(selected, group, claimed) != 1 {
			return false
		}
	}
	for _, group := range rt.Optional {
		if countIn(selected, group, claimed) > 1 {
			return false
		}
	}
	if len(claimed) != len(selected) {
		return false
	}

	for key := range filters {
		if _, ok := rt.Filters.Rule(key); !ok {
			return false
		}
	}
	return true
}

// countIn counts the members of group present in selected and records them
// as claimed.
func countIn(selected map[string]struct{}, group []string, claimed map[string]struct{}) int {
	n := 0
	for _, d := range group {
		if _, ok := selected[d]; ok {
			claimed[d] = struct{}{}
			n++
		}
	}
	return n
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, i := range items {
		set[i] = struct{}{}
	}
	return set
}
