package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"kakao_order_sheets/internal/catalog"
	"kakao_order_sheets/internal/config"
	"kakao_order_sheets/internal/layout"
	"kakao_order_sheets/internal/notify"
	"kakao_order_sheets/internal/pipeline"
	"kakao_order_sheets/internal/sheets"
	"kakao_order_sheets/internal/xlsx"
)

var (
	catalogPath string
	format      string
	outputPath  string
	label       string
)

func main() {
	setupEnvironment()

	rootCmd := &cobra.Command{
		Use:   "ordersheet [transcript.txt]",
		Short: "Export a KakaoTalk order transcript as an order spreadsheet",
		Long: `ordersheet parses an exported chat transcript of customer orders,
matches the orders against the product catalog and exports a formatted
order sheet: a new tab on a Google Spreadsheet or an .xlsx workbook.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "products.yaml", "Product catalog YAML file")
	rootCmd.Flags().StringVarP(&format, "format", "f", "sheets", "Export format: sheets or xlsx")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "orders.xlsx", "Workbook output path (xlsx format)")
	rootCmd.Flags().StringVarP(&label, "label", "l", "", "Sheet/tab label (default: today's date)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.FromEnv()

	transcript, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	products, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	log.Debug().Int("products", len(products)).Str("catalog", catalogPath).Msg("Loaded product catalog")

	variant := layout.VariantSheets
	if format == "xlsx" {
		variant = layout.VariantExcel
	}

	if label == "" {
		label = time.Now().Format("2006-01-02")
	}

	grid, err := pipeline.Run(ctx, string(transcript), products, pipeline.Options{
		ShopMarker: cfg.ShopMarker,
		Variant:    variant,
	})
	if err != nil {
		if err == pipeline.ErrNoOrders {
			log.Warn().Msg("Transcript contains no customer orders, nothing to export")
			return nil
		}
		return err
	}

	var target string
	switch format {
	case "sheets":
		spreadsheetID := config.GetRequiredEnv("SPREADSHEET_ID")
		client, err := sheets.NewClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}
		tab, err := client.ExportGrid(ctx, spreadsheetID, label, grid)
		if err != nil {
			return err
		}
		target = tab
	case "xlsx":
		if err := xlsx.Export(grid, label, outputPath); err != nil {
			return err
		}
		target = outputPath
	default:
		return fmt.Errorf("unknown format %q (want sheets or xlsx)", format)
	}

	customers := countCustomers(grid)
	notify.NewClient(cfg.NotifyURL, cfg.NotifyTopic, cfg.NotifyEnabled).
		NotifyExport(ctx, customers, target)

	log.Info().Str("target", target).Msg("Export complete")
	return nil
}

// countCustomers counts data rows carrying a nickname, i.e. the first row of
// each customer block.
func countCustomers(grid *layout.Grid) int {
	header := grid.Variant.HeaderRows()
	n := 0
	for r := header; r < header+grid.DataRows && r < len(grid.Rows); r++ {
		if grid.Rows[r][0] != "" {
			n++
		}
	}
	return n
}
