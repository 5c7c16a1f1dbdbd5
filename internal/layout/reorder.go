package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	"kakao_order_sheets/internal/catalog"
)

// DemandTotals sums the ordered quantity per product by scanning only the
// data rows; header and aggregate rows never contribute. A cell counts only
// when it holds a parsable, non-NaN number and is not "" or "0".
func DemandTotals(g *Grid, headerRows int) map[string]float64 {
	totals := make(map[string]float64, len(g.Products))
	fixed := g.Variant.FixedColumns()
	for r := headerRows; r < headerRows+g.DataRows && r < len(g.Rows); r++ {
		row := g.Rows[r]
		for i, p := range g.Products {
			cell := row[fixed+i]
			if cell == "" || cell == "0" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) {
				continue
			}
			totals[p.Name] += v
		}
	}
	return totals
}

// Reorder permutes the product columns into demand order and regenerates
// every aggregate formula for the new positions. The fixed leading columns
// stay put and no data cell value changes; this is a pure column permutation
// followed by a formula rebuild.
//
// Demand is only knowable once the data set has been laid out, so Build
// emits provisional formulas and Reorder replaces them wholesale. Stale
// references to pre-reorder column letters must never survive.
func Reorder(g *Grid, headerRows int) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if len(g.Rows) < headerRows+g.DataRows+2 {
		return fmt.Errorf("grid has %d rows, want at least %d", len(g.Rows), headerRows+g.DataRows+2)
	}

	totals := DemandTotals(g, headerRows)

	// Re-derive demand positions through the catalog policy, then express
	// the result as a permutation of the current columns.
	current := make([]catalog.Product, len(g.Products))
	indexByName := make(map[string]int, len(g.Products))
	for i, p := range g.Products {
		current[i] = catalog.Product{Name: p.Name, Price: p.Price, SaleDate: p.SaleDate, Active: true}
		indexByName[p.Name] = i
	}
	ordered := catalog.DemandOrder(current, totals)
	perm := make([]int, len(ordered))
	for i, p := range ordered {
		perm[i] = indexByName[p.Name]
	}

	fixed := g.Variant.FixedColumns()
	for r, row := range g.Rows {
		next := make([]string, len(row))
		copy(next, row[:fixed])
		for i, from := range perm {
			next[fixed+i] = row[fixed+from]
		}
		g.Rows[r] = next
	}

	products := make([]ProductColumn, len(perm))
	for i, from := range perm {
		products[i] = g.Products[from]
	}
	g.Products = products

	fresh := aggregateRows(g)
	copy(g.Rows[len(g.Rows)-2:], fresh)

	log.Debug().
		Int("products", len(g.Products)).
		Msg("Reordered product columns by demand")

	return nil
}
