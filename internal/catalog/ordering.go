package catalog

import (
	"sort"
	"strings"
	"time"

	"kakao_order_sheets/internal/collation"
)

// saleDateLayouts are the date formats accepted for dated sales. Anything
// else counts as always-on-sale.
var saleDateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02"}

func parseSaleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == AlwaysOnSale {
		return time.Time{}, false
	}
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SaleDateLabel returns the header cell text for a product: the sale date as
// written in the catalog, or AlwaysOnSale when the product has no parsable
// date.
func SaleDateLabel(p Product) string {
	if _, dated := parseSaleDate(p.SaleDate); dated {
		return strings.TrimSpace(p.SaleDate)
	}
	return AlwaysOnSale
}

// DisplayOrder returns the sellable products in header order: dated products
// by sale date descending, always-on-sale products after every dated one,
// Korean-alphabetical within ties.
func DisplayOrder(products []Product) []Product {
	out := Sellable(products)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iDated := parseSaleDate(out[i].SaleDate)
		tj, jDated := parseSaleDate(out[j].SaleDate)
		switch {
		case iDated != jDated:
			return iDated
		case iDated && !ti.Equal(tj):
			return ti.After(tj)
		default:
			return collation.Less(out[i].Name, out[j].Name)
		}
	})
	return out
}

// DemandOrder returns the sellable products sorted by total ordered quantity
// descending. Products nobody ordered go to the end, Korean-alphabetical
// among themselves; non-zero ties are broken alphabetically too.
func DemandOrder(products []Product, totals map[string]float64) []Product {
	out := Sellable(products)
	sort.SliceStable(out, func(i, j int) bool {
		qi, qj := totals[out[i].Name], totals[out[j].Name]
		switch {
		case (qi == 0) != (qj == 0):
			return qj == 0
		case qi != qj:
			return qi > qj
		default:
			return collation.Less(out[i].Name, out[j].Name)
		}
	})
	return out
}
