// Package pipeline wires the export stages together: parse, group, match,
// build, reorder. The whole run is synchronous and deterministic; any stage
// failure abandons the export.
package pipeline

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"kakao_order_sheets/internal/catalog"
	"kakao_order_sheets/internal/chatlog"
	"kakao_order_sheets/internal/layout"
	"kakao_order_sheets/internal/match"
)

// ErrNoOrders reports a transcript with nothing to process. Callers stop
// before layout instead of exporting an empty sheet.
var ErrNoOrders = errors.New("no orders found in transcript")

// Options configure one export run.
type Options struct {
	// ShopMarker drops transcript entries sent by the shop itself.
	ShopMarker string
	Variant    layout.Variant
	// Matcher maps order text onto the catalog; nil uses match.TextMatcher.
	Matcher match.Matcher
}

// Run executes the export pipeline over a raw transcript and returns the
// finished grid, product columns already re-sorted by demand. A matcher
// failure skips that one customer and continues the batch.
func Run(ctx context.Context, transcript string, products []catalog.Product, opts Options) (*layout.Grid, error) {
	fragments := chatlog.NewParser(opts.ShopMarker).Parse(transcript)
	if len(fragments) == 0 {
		return nil, ErrNoOrders
	}

	orders := chatlog.Group(fragments)
	log.Debug().Int("customers", len(orders)).Msg("Grouped order fragments")

	matcher := opts.Matcher
	if matcher == nil {
		matcher = match.TextMatcher{}
	}

	sellable := catalog.Sellable(products)
	blocks := make([]layout.CustomerBlock, 0, len(orders))
	for _, order := range orders {
		matched, err := matcher.Match(ctx, order, sellable)
		if err != nil {
			log.Warn().Err(err).Str("nickname", order.Nickname).Msg("Order matching failed, skipping customer")
			continue
		}
		rows := make([]layout.OrderRow, 0, len(matched))
		for _, m := range matched {
			rows = append(rows, layout.OrderRow{Note: m.Note, Quantities: m.Quantities})
		}
		blocks = append(blocks, layout.CustomerBlock{
			Nickname: order.Nickname,
			RawText:  order.OrderText,
			Orders:   rows,
		})
	}
	if len(blocks) == 0 {
		return nil, ErrNoOrders
	}

	grid, err := layout.Build(blocks, products, opts.Variant)
	if err != nil {
		return nil, err
	}
	if err := layout.Reorder(grid, opts.Variant.HeaderRows()); err != nil {
		return nil, err
	}

	log.Info().
		Int("customers", len(blocks)).
		Int("data_rows", grid.DataRows).
		Int("products", len(grid.Products)).
		Msg("Export grid ready")

	return grid, nil
}
