package layout

import (
	"strconv"

	"github.com/rs/zerolog/log"

	"kakao_order_sheets/internal/catalog"
)

// OrderRow is one (customer, order) pair to lay out as a data row.
type OrderRow struct {
	Note       string
	Quantities map[string]float64 // product name -> ordered quantity
}

// CustomerBlock is one customer's run of data rows. Only the first row of the
// block shows the nickname and the raw order text; the blank follow-up cells
// are what the merge instructions for the adapter are derived from.
type CustomerBlock struct {
	Nickname string
	RawText  string
	Orders   []OrderRow
}

// Build lays out the export grid: the variant's header block, one data row
// per (customer, order) pair and the two trailing aggregate rows. Product
// columns follow the catalog display ordering; inactive and unpriced
// products never appear.
func Build(blocks []CustomerBlock, products []catalog.Product, variant Variant) (*Grid, error) {
	display := catalog.DisplayOrder(products)
	cols := make([]ProductColumn, len(display))
	for i, p := range display {
		cols[i] = ProductColumn{Name: p.Name, Price: p.Price, SaleDate: catalog.SaleDateLabel(p)}
	}

	g := &Grid{Variant: variant, Products: cols}
	g.Rows = append(g.Rows, headerBlock(variant, cols)...)

	for _, b := range blocks {
		orders := b.Orders
		if len(orders) == 0 {
			// Keep the customer visible for manual follow-up.
			orders = []OrderRow{{}}
		}
		for i, order := range orders {
			g.Rows = append(g.Rows, dataRow(g, b, order, i == 0))
			g.DataRows++
		}
	}

	g.Rows = append(g.Rows, aggregateRows(g)...)

	if err := g.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("customers", len(blocks)).
		Int("data_rows", g.DataRows).
		Int("products", len(cols)).
		Msg("Built order sheet grid")

	return g, nil
}

func headerBlock(variant Variant, cols []ProductColumn) [][]string {
	fixed := variant.FixedColumns()

	name := make([]string, 0, fixed+len(cols))
	if variant == VariantExcel {
		name = append(name, labelOrderer, labelAmount, labelRawOrder, labelNotes)
	} else {
		name = append(name, labelOrderer, labelRawOrder, labelNotes)
	}
	date := labeledRow(labelSaleDate, fixed, len(cols))
	stock := labeledRow(labelStock, fixed, len(cols))

	for i, c := range cols {
		name = append(name, c.Name)
		date[fixed+i] = c.SaleDate
	}

	if variant == VariantExcel {
		price := labeledRow(labelPrice, fixed, len(cols))
		for i, c := range cols {
			price[fixed+i] = formatNumber(c.Price)
		}
		return [][]string{name, date, price, stock}
	}
	return [][]string{name, date, stock}
}

// labeledRow makes a row with the label in column 0 and blanks elsewhere.
func labeledRow(label string, fixed, productCols int) []string {
	row := make([]string, fixed+productCols)
	row[0] = label
	return row
}

func dataRow(g *Grid, b CustomerBlock, order OrderRow, first bool) []string {
	fixed := g.Variant.FixedColumns()
	row := make([]string, fixed+len(g.Products))

	rowTotal := 0.0
	for i, p := range g.Products {
		q := order.Quantities[p.Name]
		if q != 0 {
			row[fixed+i] = formatNumber(q)
			rowTotal += q
		}
	}

	if first {
		row[0] = b.Nickname
	}
	if g.Variant == VariantExcel {
		if rowTotal != 0 {
			// Row number is known now: header rows already emitted plus the
			// data rows emitted so far.
			rowNum := g.Variant.HeaderRows() + g.DataRows + 1
			row[1] = amountFormula(g, rowNum)
		}
		if first {
			row[2] = splitProductLines(normalizeOrderText(b.RawText))
		}
		row[3] = order.Note
	} else {
		if first {
			row[1] = normalizeOrderText(b.RawText)
		}
		row[2] = order.Note
	}
	return row
}

// amountFormula multiplies the price row against the row's quantity cells.
func amountFormula(g *Grid, rowNum int) string {
	first := g.Variant.FixedColumns() + 1
	last := g.Variant.FixedColumns() + len(g.Products)
	if last < first {
		return ""
	}
	return "=SUMPRODUCT(" +
		CellRef(first, priceRowNum) + ":" + CellRef(last, priceRowNum) + "," +
		CellRef(first, rowNum) + ":" + CellRef(last, rowNum) + ")"
}

// priceRowNum is the 1-based row of the price header in the excel variant.
const priceRowNum = 3

// aggregateRows generates the "total ordered" and "total revenue" rows for
// the grid's current column layout. Reorder calls it again after permuting
// the product columns, so every reference here must derive from the grid's
// current state, never from a cached formula.
func aggregateRows(g *Grid) [][]string {
	fixed := g.Variant.FixedColumns()
	headerRows := g.Variant.HeaderRows()
	dataStart := headerRows + 1
	dataEnd := headerRows + g.DataRows
	totalRowNum := dataEnd + 1
	revenueRowNum := dataEnd + 2

	total := labeledRow(labelTotalQty, fixed, len(g.Products))
	revenue := labeledRow(labelTotalRevenue, fixed, len(g.Products))

	for i, p := range g.Products {
		if g.DataRows == 0 {
			continue
		}
		col := fixed + i + 1
		total[fixed+i] = "=SUM(" + CellRef(col, dataStart) + ":" + CellRef(col, dataEnd) + ")"
		if g.Variant == VariantExcel {
			// NUMBERVALUE tolerates price cells that arrive as
			// thousand-separated text.
			revenue[fixed+i] = "=NUMBERVALUE(" + CellRef(col, priceRowNum) + ")*" + CellRef(col, totalRowNum)
		} else {
			revenue[fixed+i] = "=" + formatNumber(p.Price) + "*" + CellRef(col, totalRowNum)
		}
	}

	if g.Variant == VariantExcel && len(g.Products) > 0 && g.DataRows > 0 {
		first := fixed + 1
		last := fixed + len(g.Products)
		revenue[1] = "=SUM(" + CellRef(first, revenueRowNum) + ":" + CellRef(last, revenueRowNum) + ")"
	}

	return [][]string{total, revenue}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
