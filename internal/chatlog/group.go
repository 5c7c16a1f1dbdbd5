package chatlog

import (
	"strings"

	"kakao_order_sheets/internal/collation"
)

// CombinedOrder merges every fragment a customer sent during the parse run
// into one record. OrderText keeps each fragment on its own line, prefixed
// with the original message time, in the order the fragments appeared.
type CombinedOrder struct {
	Nickname   string
	OrderText  string
	FirstTime  string
	LatestTime string
}

// Group combines fragments by exact nickname match (case-sensitive, no
// normalization) and returns one CombinedOrder per customer, sorted by
// nickname with Korean collation.
//
// LatestTime is the lexicographic maximum of the raw time strings, not a
// chronological maximum; "오후 1:00"-style times do not sort by clock. The
// behavior is inherited from the transcript format and kept as is.
func Group(fragments []Fragment) []CombinedOrder {
	byNick := make(map[string][]Fragment)
	var nicks []string
	for _, f := range fragments {
		if _, seen := byNick[f.Nickname]; !seen {
			nicks = append(nicks, f.Nickname)
		}
		byNick[f.Nickname] = append(byNick[f.Nickname], f)
	}
	collation.SortStrings(nicks)

	orders := make([]CombinedOrder, 0, len(nicks))
	for _, nick := range nicks {
		group := byNick[nick]
		lines := make([]string, len(group))
		latest := group[0].Time
		for i, f := range group {
			lines[i] = "[" + f.Time + "] " + f.Text
			if f.Time > latest {
				latest = f.Time
			}
		}
		orders = append(orders, CombinedOrder{
			Nickname:   nick,
			OrderText:  strings.Join(lines, "\n"),
			FirstTime:  group[0].Time,
			LatestTime: latest,
		})
	}
	return orders
}
