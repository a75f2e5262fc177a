// Package catalog loads and validates the weighted criteria catalog that the
// scoring engine operates over.
package catalog

import (
	"fmt"
	"strings"
)

// Criterion is one weighted yes/no maturity check belonging to a category.
// The description field is named "criteria" to match the source document.
type Criterion struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Criteria string  `json:"criteria"`
	Weight   float64 `json:"weight"`
}

// Catalog is the validated set of categories and criteria. Categories keep
// the order of the source document, which is also the display order.
// A Catalog is immutable once loaded; callers thread it through explicitly
// rather than holding it as process state, so multiple catalogs can coexist.
type Catalog struct {
	Categories []string    `json:"categories"`
	Criteria   []Criterion `json:"criteria"`
}

// ByCategory returns the criteria belonging to one category, in source order.
func (c *Catalog) ByCategory(category string) []Criterion {
	var out []Criterion
	for _, cr := range c.Criteria {
		if cr.Category == category {
			out = append(out, cr)
		}
	}
	return out
}

func validate(categories []string, criteria []Criterion) error {
	for i, cat := range categories {
		if strings.TrimSpace(cat) == "" {
			return NewEmptyFieldError(fmt.Sprintf("categories[%d]: empty category name", i))
		}
	}
	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		known[cat] = true
	}
	seen := make(map[string]bool, len(criteria))
	for i, cr := range criteria {
		if strings.TrimSpace(cr.ID) == "" {
			return NewEmptyFieldError(fmt.Sprintf("criteria[%d]: empty id", i))
		}
		if strings.TrimSpace(cr.Criteria) == "" {
			return NewEmptyFieldError(fmt.Sprintf("criterion %q: empty description", cr.ID))
		}
		if strings.TrimSpace(cr.Category) == "" {
			return NewEmptyFieldError(fmt.Sprintf("criterion %q: empty category", cr.ID))
		}
		if cr.Weight <= 0 {
			return NewInvalidWeightError(fmt.Sprintf("criterion %q: weight must be positive, got %v", cr.ID, cr.Weight))
		}
		if seen[cr.ID] {
			return NewDuplicateIDError(fmt.Sprintf("criterion %q: duplicate id", cr.ID))
		}
		seen[cr.ID] = true
		if !known[cr.Category] {
			return NewUnknownCategoryError(fmt.Sprintf("criterion %q: category %q not in categories list", cr.ID, cr.Category))
		}
	}
	return nil
}
