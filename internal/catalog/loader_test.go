package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseValid(t *testing.T) {
	data := []byte(`
categories:
  - First
  - Second
criteria:
  - id: a
    category: First
    criteria: Check A
    weight: 1.0
  - id: b
    category: Second
    criteria: Check B
    weight: 2.5
`)
	cat, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cat.Categories) != 2 || cat.Categories[0] != "First" || cat.Categories[1] != "Second" {
		t.Fatalf("unexpected categories: %v", cat.Categories)
	}
	if len(cat.Criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(cat.Criteria))
	}
	if cat.Criteria[0].ID != "a" || cat.Criteria[0].Weight != 1.0 {
		t.Fatalf("unexpected first criterion: %+v", cat.Criteria[0])
	}
	if cat.Criteria[1].Category != "Second" || cat.Criteria[1].Criteria != "Check B" || cat.Criteria[1].Weight != 2.5 {
		t.Fatalf("unexpected second criterion: %+v", cat.Criteria[1])
	}
}

func TestParseIntegerWeight(t *testing.T) {
	data := []byte(`
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: 2}
`)
	cat, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cat.Criteria[0].Weight != 2.0 {
		t.Fatalf("expected weight 2.0, got %v", cat.Criteria[0].Weight)
	}
}

func TestParseValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		code ErrorCode
	}{
		{
			name: "non-numeric weight",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: heavy}
`,
			code: ErrorInvalidWeight,
		},
		{
			name: "zero weight",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: 0}
`,
			code: ErrorInvalidWeight,
		},
		{
			name: "negative weight",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: -1.5}
`,
			code: ErrorInvalidWeight,
		},
		{
			name: "duplicate id",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: 1}
  - {id: a, category: Cat, criteria: Other, weight: 1}
`,
			code: ErrorDuplicateID,
		},
		{
			name: "unknown category",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Missing, criteria: Check, weight: 1}
`,
			code: ErrorUnknownCategory,
		},
		{
			name: "empty category name",
			data: `
categories: ["Cat", ""]
criteria:
  - {id: a, category: Cat, criteria: Check, weight: 1}
`,
			code: ErrorEmptyField,
		},
		{
			name: "empty id",
			data: `
categories: [Cat]
criteria:
  - {id: "", category: Cat, criteria: Check, weight: 1}
`,
			code: ErrorEmptyField,
		},
		{
			name: "empty description",
			data: `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: "", weight: 1}
`,
			code: ErrorEmptyField,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatalf("expected error")
			}
			ce, ok := AsConfigError(err)
			if !ok {
				t.Fatalf("expected ConfigError, got %T: %v", err, err)
			}
			if ce.Code != tc.code {
				t.Fatalf("expected code %s, got %s (%s)", tc.code, ce.Code, ce.Message)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	ce, ok := AsConfigError(err)
	if !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if ce.Code != ErrorSourceNotFound {
		t.Fatalf("expected source_not_found, got %s", ce.Code)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	data := `
categories: [Cat]
criteria:
  - {id: a, category: Cat, criteria: "Unicode check ✓ 检查", weight: 1}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Criteria[0].Criteria != "Unicode check ✓ 检查" {
		t.Fatalf("unicode description mangled: %q", cat.Criteria[0].Criteria)
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	cat, err := Parse(embeddedCatalog)
	if err != nil {
		t.Fatalf("embedded catalog invalid: %v", err)
	}
	if len(cat.Categories) == 0 || len(cat.Criteria) == 0 {
		t.Fatalf("embedded catalog empty: %d categories, %d criteria", len(cat.Categories), len(cat.Criteria))
	}
	weights := map[float64]bool{}
	for _, cr := range cat.Criteria {
		weights[cr.Weight] = true
	}
	if len(weights) < 2 {
		t.Fatalf("expected varied weights in embedded catalog")
	}
}
