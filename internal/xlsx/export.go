// Package xlsx materializes a finished order grid as a downloadable .xlsx
// workbook.
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"kakao_order_sheets/internal/layout"
)

// Export writes the grid as a single-sheet workbook at path. Formula cells
// (leading "=") become live formulas; numeric-looking cells become numbers so
// SUMPRODUCT and the number formats behave.
func Export(grid *layout.Grid, sheetName, path string) error {
	if err := grid.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for r, row := range grid.Rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d,%d): %w", c+1, r+1, err)
			}
			if strings.HasPrefix(cell, "=") {
				if err := f.SetCellFormula(sheetName, ref, strings.TrimPrefix(cell, "=")); err != nil {
					return fmt.Errorf("failed to set formula at %s: %w", ref, err)
				}
				continue
			}
			if err := f.SetCellValue(sheetName, ref, cellValue(r, c, cell, grid)); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", ref, err)
			}
		}
	}

	if err := applyFormatting(f, sheetName, grid); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("rows", len(grid.Rows)).
		Msg("Exported order grid to workbook")

	return nil
}

// cellValue coerces numeric-looking cells to numbers, except on the
// sale-date row, which stays text no matter what it holds.
func cellValue(row, col int, cell string, grid *layout.Grid) interface{} {
	if row == 1 && col >= grid.Variant.FixedColumns() {
		return cell
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	return cell
}

func applyFormatting(f *excelize.File, sheetName string, grid *layout.Grid) error {
	for _, m := range layout.MergeRanges(grid) {
		top, err := excelize.CoordinatesToCellName(m.StartCol+1, m.StartRow+1)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(m.EndCol, m.EndRow)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheetName, top, bottom); err != nil {
			return fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
		}
	}

	// Built-in format 3 is "#,##0".
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	for _, fr := range layout.NumberFormatRanges(grid) {
		topLeft, err := excelize.CoordinatesToCellName(fr.StartCol+1, fr.StartRow+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(fr.EndCol, fr.EndRow)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, topLeft, bottomRight, thousands); err != nil {
			return fmt.Errorf("failed to style %s:%s: %w", topLeft, bottomRight, err)
		}
	}

	fixed := grid.Variant.FixedColumns()
	for i, w := range layout.ProductColumnWidths(grid) {
		col := layout.ColumnLetter(fixed + i + 1)
		if err := f.SetColWidth(sheetName, col, col, float64(w)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	return nil
}
