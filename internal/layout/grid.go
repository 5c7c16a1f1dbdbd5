// Package layout builds the rectangular order-sheet grid: header block,
// per-order data rows and trailing aggregate rows, with formulas as textual
// A1 references. It also re-sorts product columns by demand and regenerates
// the formulas after the move.
package layout

import (
	"errors"
	"fmt"
)

// Variant selects the layout flavor of the export grid.
type Variant int

const (
	// VariantSheets is the Google Sheets layout: three fixed columns and no
	// per-row order-amount formulas.
	VariantSheets Variant = iota
	// VariantExcel is the workbook layout: an order-amount column, a price
	// header row and per-row amount formulas.
	VariantExcel
)

// FixedColumns is the number of leading non-product columns.
func (v Variant) FixedColumns() int {
	if v == VariantExcel {
		return 4
	}
	return 3
}

// HeaderRows is the number of rows in the header block.
func (v Variant) HeaderRows() int {
	if v == VariantExcel {
		return 4
	}
	return 3
}

// Cell labels as they appear on the exported sheet.
const (
	labelOrderer      = "주문자"
	labelAmount       = "주문금액"
	labelRawOrder     = "원본주문"
	labelNotes        = "비고"
	labelSaleDate     = "판매일"
	labelPrice        = "판매가"
	labelStock        = "재고"
	labelTotalQty     = "총 주문수량"
	labelTotalRevenue = "총 주문금액"
)

// ProductColumn carries the catalog data behind one product column. It moves
// with the column during reordering so formulas can be regenerated from the
// new positions.
type ProductColumn struct {
	Name     string
	Price    float64
	SaleDate string
}

// Grid is the rectangular cell grid handed to an export adapter. Cells are
// plain strings; a leading "=" marks a formula the adapter must make live.
// Products is parallel to the columns from FixedColumns() onward and must
// stay aligned with the header row at all times.
type Grid struct {
	Variant  Variant
	Rows     [][]string
	Products []ProductColumn
	DataRows int // per-order rows between the header block and the aggregates
}

// ErrRaggedGrid reports a row whose width diverges from the header. Every
// formula reference depends on column alignment, so this is a bug in the
// builder, not bad input.
var ErrRaggedGrid = errors.New("grid row width diverges from header")

// Validate checks the rectangular invariant.
func (g *Grid) Validate() error {
	want := g.Variant.FixedColumns() + len(g.Products)
	for i, row := range g.Rows {
		if len(row) != want {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, i+1, len(row), want)
		}
	}
	return nil
}
