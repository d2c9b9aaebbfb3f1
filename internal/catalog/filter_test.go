package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func productIDs(ps []Product) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCategoriesOrderedAndDistinct(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	want := []string{AllCategories, "Empanadas", "Deditos", "Surtidos", "Pasteles"}
	if diff := cmp.Diff(want, c.Categories()); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterAllShowsOnlyVisible(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	// pastel-pollo-6 is sold out and not flagged to stay shown.
	want := []string{"empanada-12", "dedito-queso-6", "surtido-56"}
	for _, category := range []string{"", AllCategories} {
		got := productIDs(c.Filter(category, ""))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Filter(%q, \"\") mismatch (-want +got):\n%s", category, diff)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	got := productIDs(c.Filter("Deditos", ""))
	if diff := cmp.Diff([]string{"dedito-queso-6"}, got); diff != "" {
		t.Errorf("category filter mismatch (-want +got):\n%s", diff)
	}

	if ps := c.Filter("Inexistente", ""); len(ps) != 0 {
		t.Errorf("unknown category should match nothing, got %v", productIDs(ps))
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	got := productIDs(c.Filter("", "EMPANADA"))
	if diff := cmp.Diff([]string{"empanada-12"}, got); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterSearchMatchesDescription(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	got := productIDs(c.Filter("", "mozzarella"))
	if diff := cmp.Diff([]string{"dedito-queso-6"}, got); diff != "" {
		t.Errorf("description search mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCombinesCategoryAndSearch(t *testing.T) {
	t.Parallel()
	c := mustParse(t)

	if ps := c.Filter("Empanadas", "mozzarella"); len(ps) != 0 {
		t.Errorf("filters should intersect, got %v", productIDs(ps))
	}
	got := productIDs(c.Filter("Empanadas", "  carne "))
	if diff := cmp.Diff([]string{"empanada-12"}, got); diff != "" {
		t.Errorf("trimmed search mismatch (-want +got):\n%s", diff)
	}
}
