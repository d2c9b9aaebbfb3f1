package catalog

import "strings"

// AllCategories is the pseudo-category that selects every product.
const AllCategories = "Todos"

// Categories returns the distinct category labels in catalog order,
// prefixed with AllCategories.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	cats := []string{AllCategories}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}

// Filter returns the visible products matching the category and query, in
// catalog order. Category matches by equality (empty or AllCategories selects
// all); query is a case-insensitive substring match over name and description.
func (c *Catalog) Filter(category, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []Product
	for _, p := range c.products {
		if !p.Visible() {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
