package sheets

import "fmt"

// UniqueTabName resolves a naming conflict the way the shop has always done
// it: keep the requested label, or append "(1)", "(2)", ... until the name
// collides with nothing.
func UniqueTabName(existing []string, requested string) string {
	taken := make(map[string]bool, len(existing))
	for _, t := range existing {
		taken[t] = true
	}

	name := requested
	for n := 1; taken[name]; n++ {
		name = fmt.Sprintf("%s(%d)", requested, n)
	}
	return name
}
