// Package catalog holds the static, read-only product catalog: an ordered
// sequence of products loaded once from YAML and never mutated afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"umami/internal/logging"
)

//go:embed products.yaml
var defaultCatalogYAML []byte

// Product is one catalog entry. Price is an integer peso amount with no
// minor units.
type Product struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Category        string `yaml:"category"`
	Price           int    `yaml:"price"`
	Description     string `yaml:"description"`
	Image           string `yaml:"image"`
	IsNew           bool   `yaml:"is_new"`
	Available       bool   `yaml:"available"`
	ShowWhenSoldOut bool   `yaml:"show_when_sold_out"`
}

// Visible reports whether the product appears in the catalog view.
func (p Product) Visible() bool {
	return p.Available || p.ShowWhenSoldOut
}

// Addable reports whether the product can be added to the cart.
func (p Product) Addable() bool {
	return p.Available
}

// rawProduct exists so that Available can default to true when the field is
// absent from the YAML.
type rawProduct struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Category        string `yaml:"category"`
	Price           int    `yaml:"price"`
	Description     string `yaml:"description"`
	Image           string `yaml:"image"`
	IsNew           bool   `yaml:"is_new"`
	Available       *bool  `yaml:"available"`
	ShowWhenSoldOut bool   `yaml:"show_when_sold_out"`
}

type catalogFile struct {
	Products []rawProduct `yaml:"products"`
}

// Catalog is an ordered, immutable product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(cf.Products))}
	for i, rp := range cf.Products {
		if rp.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		if _, dup := c.byID[rp.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", rp.ID)
		}
		if rp.Price < 0 {
			return nil, fmt.Errorf("product %q has negative price", rp.ID)
		}
		p := Product{
			ID:              rp.ID,
			Name:            rp.Name,
			Category:        rp.Category,
			Price:           rp.Price,
			Description:     rp.Description,
			Image:           rp.Image,
			IsNew:           rp.IsNew,
			Available:       rp.Available == nil || *rp.Available,
			ShowWhenSoldOut: rp.ShowWhenSoldOut,
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	logging.Catalog("Parsed catalog: %d products", len(c.products))
	return c, nil
}

// Load reads a catalog from path. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalogYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Products returns the catalog in its defined order. The returned slice must
// not be mutated.
func (c *Catalog) Products() []Product {
	return c.products
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks up a product by its unique id.
func (c *Catalog) ByID(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}
