package pipeline

import (
	"context"
	"errors"
	"testing"

	"kakao_order_sheets/internal/catalog"
	"kakao_order_sheets/internal/chatlog"
	"kakao_order_sheets/internal/layout"
	"kakao_order_sheets/internal/match"
)

var scenarioCatalog = []catalog.Product{
	{Name: "사과", Price: 1000, SaleDate: "", Active: true},
	{Name: "배", Price: 2000, SaleDate: "", Active: true},
}

const scenarioTranscript = "[Alice] [10:00] 사과 2개\n[Bob] [10:05] 배 1개"

func TestRunEndToEnd(t *testing.T) {
	grid, err := Run(context.Background(), scenarioTranscript, scenarioCatalog, Options{
		Variant: layout.VariantSheets,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if grid.DataRows != 2 {
		t.Errorf("Expected 2 data rows, got %d", grid.DataRows)
	}
	// Alice ordered 2 사과, Bob 1 배: after the demand reorder 사과 leads.
	want := []string{"주문자", "원본주문", "비고", "사과", "배"}
	for i, w := range want {
		if grid.Rows[0][i] != w {
			t.Fatalf("Header: expected %v, got %v", want, grid.Rows[0])
		}
	}
	if grid.Rows[3][0] != "Alice" || grid.Rows[3][3] != "2" {
		t.Errorf("Unexpected Alice row: %v", grid.Rows[3])
	}
	if grid.Rows[4][0] != "Bob" || grid.Rows[4][4] != "1" {
		t.Errorf("Unexpected Bob row: %v", grid.Rows[4])
	}
}

func TestRunNoOrders(t *testing.T) {
	_, err := Run(context.Background(), "- saved chat\n\n", scenarioCatalog, Options{})
	if !errors.Is(err, ErrNoOrders) {
		t.Errorf("Expected ErrNoOrders, got %v", err)
	}
}

func TestRunExcludesShopSender(t *testing.T) {
	transcript := scenarioTranscript + "\n[진영상회] [10:10] 사과 5개 입고"
	grid, err := Run(context.Background(), transcript, scenarioCatalog, Options{
		ShopMarker: "진영상회",
		Variant:    layout.VariantSheets,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if grid.DataRows != 2 {
		t.Errorf("Shop sender produced a data row: %d rows", grid.DataRows)
	}
	header := grid.Variant.HeaderRows()
	for r := header; r < header+grid.DataRows; r++ {
		if grid.Rows[r][0] == "진영상회" {
			t.Errorf("Shop sender in data rows: %v", grid.Rows[r])
		}
	}
}

type failingMatcher struct{}

func (failingMatcher) Match(_ context.Context, order chatlog.CombinedOrder, _ []catalog.Product) ([]match.MatchedOrder, error) {
	if order.Nickname == "Alice" {
		return nil, errors.New("analysis service unavailable")
	}
	return []match.MatchedOrder{{Text: order.OrderText, Quantities: map[string]float64{"배": 1}}}, nil
}

func TestRunSkipsCustomerOnMatcherFailure(t *testing.T) {
	grid, err := Run(context.Background(), scenarioTranscript, scenarioCatalog, Options{
		Variant: layout.VariantSheets,
		Matcher: failingMatcher{},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if grid.DataRows != 1 {
		t.Fatalf("Expected the failed customer to be skipped, got %d rows", grid.DataRows)
	}
	if grid.Rows[3][0] != "Bob" {
		t.Errorf("Expected only Bob, got %v", grid.Rows[3])
	}
}

func TestRunFormulasConsistentAfterReorder(t *testing.T) {
	grid, err := Run(context.Background(), scenarioTranscript, scenarioCatalog, Options{
		Variant: layout.VariantExcel,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Header: 주문자 주문금액 원본주문 비고 사과 배, data rows 5..6,
	// totals row 7, revenue row 8.
	total := grid.Rows[len(grid.Rows)-2]
	if total[4] != "=SUM(E5:E6)" || total[5] != "=SUM(F5:F6)" {
		t.Errorf("Unexpected totals after reorder: %v", total)
	}
	if grid.Rows[0][4] != "사과" || grid.Rows[0][5] != "배" {
		t.Errorf("Unexpected product order: %v", grid.Rows[0])
	}
}
