package layout

import (
	"regexp"
	"strings"
)

// normalizeOrderText trims every line of a combined order text and drops
// blank lines, so the raw-order cell reads as a compact block.
func normalizeOrderText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var quantityBoundary = regexp.MustCompile(`\d+\s*개`)

// splitProductLines breaks lines holding several "<n>개" product mentions
// into one product per line. A line with at most one mention passes through
// untouched; any tail after the last mention stays on the last line. This is
// a readability heuristic for the raw-order cell of the workbook export.
func splitProductLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		locs := quantityBoundary.FindAllStringIndex(line, -1)
		if len(locs) < 2 {
			out = append(out, line)
			continue
		}
		start := 0
		for _, loc := range locs {
			seg := strings.TrimSpace(line[start:loc[1]])
			if seg != "" {
				out = append(out, seg)
			}
			start = loc[1]
		}
		if rest := strings.TrimSpace(line[start:]); rest != "" {
			out[len(out)-1] += " " + rest
		}
	}
	return strings.Join(out, "\n")
}

// DisplayWidth estimates the rendered width of s in character units,
// counting Hangul syllables double.
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r >= 0xAC00 && r <= 0xD7A3 {
			w += 2
		} else {
			w++
		}
	}
	return w
}
