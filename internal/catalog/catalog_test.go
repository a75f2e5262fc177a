package catalog

import (
	"reflect"
	"testing"
)

func TestByCategory(t *testing.T) {
	cat := &Catalog{
		Categories: []string{"One", "Two"},
		Criteria: []Criterion{
			{ID: "a", Category: "One", Criteria: "A", Weight: 1},
			{ID: "b", Category: "Two", Criteria: "B", Weight: 1},
			{ID: "c", Category: "One", Criteria: "C", Weight: 1},
		},
	}
	got := cat.ByCategory("One")
	ids := make([]string, 0, len(got))
	for _, cr := range got {
		ids = append(ids, cr.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "c"}) {
		t.Fatalf("expected [a c], got %v", ids)
	}
	if len(cat.ByCategory("Three")) != 0 {
		t.Fatalf("expected no criteria for unknown category")
	}
}
