package reporttype

import "fmt"

// Catalog is an ordered, immutable set of report types. Order is precedence:
// classification returns the first entry that matches.
type Catalog struct {
	types []ReportType
	index map[string]int
}

// NewCatalog validates and orders the given report types.
func NewCatalog(types ...ReportType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("at least one report type must be provided")
	}

	c := &Catalog{
		types: make([]ReportType, 0, len(types)),
		index: make(map[string]int, len(types)),
	}
	for _, rt := range types {
		if rt.ID == "" {
			return nil, fmt.Errorf("report type %q has no identifier", rt.Name)
		}
		if _, exists := c.index[rt.ID]; exists {
			return nil, fmt.Errorf("duplicate report type: %s", rt.ID)
		}
		if err := checkDimensions(rt); err != nil {
			return nil, err
		}
		c.index[rt.ID] = len(c.types)
		c.types = append(c.types, rt)
	}
	return c, nil
}

// checkDimensions makes sure every dimension of rt is declared exactly once,
// so a selected dimension can only belong to one group.
func checkDimensions(rt ReportType) error {
	seen := map[string]struct{}{}
	for _, d := range rt.Dimensions() {
		if _, ok := seen[d]; ok {
			return fmt.Errorf("report type %s declares dimension %q more than once", rt.ID, d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

// Types returns the report types in precedence order.
func (c *Catalog) Types() []ReportType {
	return append([]ReportType{}, c.types...)
}

// Lookup returns the report type registered under id.
func (c *Catalog) Lookup(id string) (ReportType, bool) {
	i, ok := c.index[id]
	if !ok {
		return ReportType{}, false
	}
	return c.types[i], true
}

// Dimensions returns every dimension declared by any report type.
func (c *Catalog) Dimensions() []string {
	seen := map[string]struct{}{}
	var dims []string
	for _, rt := range c.types {
		for _, d := range rt.Dimensions() {
			if _, ok := seen[d]; !ok {
				seen[d] = struct{}{}
				dims = append(dims, d)
			}
		}
	}
	return dims
}

var defaultCatalog = mustCatalog(defaultTypes()...)

// Default returns the catalog of YouTube Analytics channel and playlist
// reports.
func Default() *Catalog {
	return defaultCatalog
}

func mustCatalog(types ...ReportType) *Catalog {
	c, err := NewCatalog(types...)
	if err != nil {
		panic(err)
	}
	return c
}
