// Package collation provides Korean-aware string ordering, used wherever
// nicknames or product names are sorted alphabetically.
package collation

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var korean = collate.New(language.Korean)

// Compare orders a and b under Korean collation rules. It returns -1, 0 or 1
// in the manner of strings.Compare.
func Compare(a, b string) int {
	return korean.CompareString(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// SortStrings sorts ss in place.
func SortStrings(ss []string) {
	sort.SliceStable(ss, func(i, j int) bool { return Less(ss[i], ss[j]) })
}
