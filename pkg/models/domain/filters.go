package domain

import (
	"fmt"
	"strings"
)

// ParseFilters reads filters written as key==value pairs separated by
// semicolons, the notation the API uses on the wire.
func ParseFilters(s string) (map[string]string, error) {
	filters := map[string]string{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "==")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid filter %q. Expected format: key==value", ErrMalformedRequest, part)
		}
		filters[key] = value
	}
	return filters, nil
}
