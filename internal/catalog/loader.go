package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the conventional catalog location checked in the
// working directory when no explicit path is given.
const DefaultFilename = "criteria.yaml"

//go:embed criteria.yaml
var embeddedCatalog []byte

// document mirrors the raw YAML shape. Weights are decoded as any so that a
// non-numeric weight surfaces as an InvalidWeight config error instead of a
// generic decode failure.
type document struct {
	Categories []string `yaml:"categories"`
	Criteria   []entry  `yaml:"criteria"`
}

type entry struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Criteria string `yaml:"criteria"`
	Weight   any    `yaml:"weight"`
}

// Load reads and validates a catalog from path. A missing file is reported
// as SourceNotFound, distinct from structural validation errors.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewSourceNotFoundError(fmt.Sprintf("criteria catalog not found at %s", path))
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault resolves the catalog source by convention: criteria.yaml in
// the working directory if present, otherwise the catalog embedded in the
// binary.
func LoadDefault() (*Catalog, error) {
	if _, err := os.Stat(DefaultFilename); err == nil {
		return Load(DefaultFilename)
	}
	return Parse(embeddedCatalog)
}

// Parse decodes and validates a catalog document. The loader is a pure
// transform: no caching, no side effects.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	criteria := make([]Criterion, 0, len(doc.Criteria))
	for _, e := range doc.Criteria {
		w, ok := numericWeight(e.Weight)
		if !ok {
			return nil, NewInvalidWeightError(fmt.Sprintf("criterion %q: weight %v is not numeric", e.ID, e.Weight))
		}
		criteria = append(criteria, Criterion{
			ID:       e.ID,
			Category: e.Category,
			Criteria: e.Criteria,
			Weight:   w,
		})
	}
	if err := validate(doc.Categories, criteria); err != nil {
		return nil, err
	}
	return &Catalog{Categories: doc.Categories, Criteria: criteria}, nil
}

func numericWeight(v any) (float64, bool) {
	switch w := v.(type) {
	case int:
		return float64(w), true
	case int64:
		return float64(w), true
	case float64:
		return w, true
	default:
		return 0, false
	}
}
