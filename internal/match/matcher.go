// Package match turns a customer's combined order text into structured
// per-product quantities. The AI-backed analyzer used in production sits
// behind the Matcher interface; TextMatcher is the offline default.
package match

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"kakao_order_sheets/internal/catalog"
	"kakao_order_sheets/internal/chatlog"
)

// MatchedOrder is one order extracted from a customer's combined text.
type MatchedOrder struct {
	Text       string
	Note       string
	Quantities map[string]float64 // product name -> ordered quantity
}

// Matcher maps one customer's combined order onto the catalog. A Matcher
// failure is scoped to that customer: the caller skips the record and
// continues the batch.
type Matcher interface {
	Match(ctx context.Context, order chatlog.CombinedOrder, products []catalog.Product) ([]MatchedOrder, error)
}

// TextMatcher matches products by scanning each order line for a product
// name followed by a "<n>개" quantity. Product mentions without a quantity
// are ignored.
type TextMatcher struct{}

var quantityPattern = regexp.MustCompile(`(\d+)\s*개`)

func (TextMatcher) Match(_ context.Context, order chatlog.CombinedOrder, products []catalog.Product) ([]MatchedOrder, error) {
	quantities := make(map[string]float64)
	for _, line := range strings.Split(order.OrderText, "\n") {
		for _, p := range products {
			idx := strings.Index(line, p.Name)
			if idx < 0 {
				continue
			}
			m := quantityPattern.FindStringSubmatch(line[idx+len(p.Name):])
			if m == nil {
				continue
			}
			n, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			quantities[p.Name] += n
		}
	}
	if len(quantities) == 0 {
		return nil, nil
	}
	return []MatchedOrder{{Text: order.OrderText, Quantities: quantities}}, nil
}
