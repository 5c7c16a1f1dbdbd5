// Package catalog holds the product catalog and the canonical product
// orderings used when laying out the export grid.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AlwaysOnSale is the header marker for products sold continuously rather
// than on a dated sale.
const AlwaysOnSale = "상시"

// Product is one catalog entry. The catalog is owned by the shop backend;
// this package only reads it.
type Product struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	SaleDate string  `yaml:"sale_date"`
	Active   bool    `yaml:"active"`
}

// Load reads a product catalog from a YAML file: a list of entries with
// name, price, sale_date and active fields.
func Load(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var products []Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return products, nil
}

// Sellable returns the products that may appear on an order sheet. Inactive
// products and products without a positive price are excluded.
func Sellable(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Active && p.Price > 0 {
			out = append(out, p)
		}
	}
	return out
}
