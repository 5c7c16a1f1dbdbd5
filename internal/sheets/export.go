package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"

	"kakao_order_sheets/internal/config"
	"kakao_order_sheets/internal/layout"
	"kakao_order_sheets/internal/retry"
)

// pixelsPerUnit converts a weighted-character width hint to a column pixel
// size.
const pixelsPerUnit = 8

// ExportGrid writes the grid to a freshly created tab and applies the
// formatting hints: nickname merges, thousand-separator number formats and
// product column widths. It returns the tab name actually used, which may
// carry a "(n)" suffix when the requested label was taken.
func (c *Client) ExportGrid(ctx context.Context, spreadsheetID, label string, grid *layout.Grid) (string, error) {
	if err := grid.Validate(); err != nil {
		return "", err
	}

	profiles := config.DefaultResilienceConfig

	titles, err := retry.WithRetry(ctx, profiles.SheetRead, func(ctx context.Context) ([]string, error) {
		return c.TabTitles(ctx, spreadsheetID)
	})
	if err != nil {
		return "", err
	}

	name := UniqueTabName(titles, label)
	if name != label {
		log.Debug().Str("requested", label).Str("using", name).Msg("Tab name taken, using suffixed name")
	}

	sheetID, err := retry.WithRetry(ctx, profiles.SheetWrite, func(ctx context.Context) (int64, error) {
		return c.AddTab(ctx, spreadsheetID, name)
	})
	if err != nil {
		return "", err
	}

	writeRange := fmt.Sprintf("'%s'!A1", name)
	_, err = retry.WithRetry(ctx, profiles.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.UpdateRange(ctx, spreadsheetID, writeRange, gridValues(grid))
	})
	if err != nil {
		return "", err
	}

	requests := formatRequests(sheetID, grid)
	_, err = retry.WithRetry(ctx, profiles.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.BatchUpdate(ctx, spreadsheetID, requests)
	})
	if err != nil {
		return "", err
	}

	log.Info().
		Str("tab", name).
		Int("rows", len(grid.Rows)).
		Msg("Exported order grid to spreadsheet")

	return name, nil
}

// gridValues converts the grid to the Values API shape. Cells pass through
// verbatim: formula strings keep their "=" prefix and the USER_ENTERED write
// makes them live. The core never pre-escapes.
func gridValues(grid *layout.Grid) [][]interface{} {
	values := make([][]interface{}, len(grid.Rows))
	for r, row := range grid.Rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values[r] = cells
	}
	return values
}

func formatRequests(sheetID int64, grid *layout.Grid) []*sheets.Request {
	var requests []*sheets.Request

	for _, m := range layout.MergeRanges(grid) {
		requests = append(requests, &sheets.Request{
			MergeCells: &sheets.MergeCellsRequest{
				MergeType: "MERGE_ALL",
				Range:     gridRange(sheetID, m),
			},
		})
	}

	for _, f := range layout.NumberFormatRanges(grid) {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: gridRange(sheetID, f),
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "NUMBER",
							Pattern: "#,##0",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	fixed := grid.Variant.FixedColumns()
	for i, w := range layout.ProductColumnWidths(grid) {
		requests = append(requests, &sheets.Request{
			UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: int64(fixed + i),
					EndIndex:   int64(fixed + i + 1),
				},
				Properties: &sheets.DimensionProperties{
					PixelSize: int64(w * pixelsPerUnit),
				},
				Fields: "pixelSize",
			},
		})
	}

	return requests
}

func gridRange(sheetID int64, r layout.CellRange) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(r.StartRow),
		EndRowIndex:      int64(r.EndRow),
		StartColumnIndex: int64(r.StartCol),
		EndColumnIndex:   int64(r.EndCol),
	}
}
