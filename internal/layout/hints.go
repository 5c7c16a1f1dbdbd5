package layout

// CellRange is a rectangular block in 0-based, half-open coordinates,
// matching the Sheets GridRange convention. Adapters translate it to their
// own addressing.
type CellRange struct {
	StartRow, EndRow int // rows [StartRow, EndRow)
	StartCol, EndCol int // columns [StartCol, EndCol)
}

// NumberFormatRanges lists every block the adapter must render with thousand
// separators: the product quantity cells, both aggregate rows and, for the
// excel variant, the price row and the order-amount column. The sale-date
// row must never be included, digit-looking or not.
func NumberFormatRanges(g *Grid) []CellRange {
	fixed := g.Variant.FixedColumns()
	lastCol := fixed + len(g.Products)
	headerRows := g.Variant.HeaderRows()
	totalRows := len(g.Rows)

	var ranges []CellRange
	if lastCol > fixed {
		// Quantity cells, then the aggregate rows right below them.
		ranges = append(ranges, CellRange{headerRows, totalRows, fixed, lastCol})
	}
	if g.Variant == VariantExcel {
		if lastCol > fixed {
			ranges = append(ranges, CellRange{priceRowNum - 1, priceRowNum, fixed, lastCol})
		}
		ranges = append(ranges, CellRange{headerRows, totalRows, 1, 2})
	}
	return ranges
}

// MergeRanges reports the vertical merges over column 0: one range per
// customer whose block spans more than one data row. Follow-up rows of a
// block carry an empty nickname cell, which is exactly what makes the run
// detectable here.
func MergeRanges(g *Grid) []CellRange {
	headerRows := g.Variant.HeaderRows()
	end := headerRows + g.DataRows

	var merges []CellRange
	blockStart := -1
	flush := func(until int) {
		if blockStart >= 0 && until-blockStart > 1 {
			merges = append(merges, CellRange{blockStart, until, 0, 1})
		}
	}
	for r := headerRows; r < end && r < len(g.Rows); r++ {
		if g.Rows[r][0] != "" {
			flush(r)
			blockStart = r
		}
	}
	flush(end)
	return merges
}

// maxProductColumnWidth caps the width hint for very long product names.
const maxProductColumnWidth = 24

// ProductColumnWidths returns a width hint per product column in weighted
// character units, derived from the header name and clamped to the maximum.
func ProductColumnWidths(g *Grid) []int {
	widths := make([]int, len(g.Products))
	for i, p := range g.Products {
		w := DisplayWidth(p.Name) + 2
		if w > maxProductColumnWidth {
			w = maxProductColumnWidth
		}
		widths[i] = w
	}
	return widths
}
