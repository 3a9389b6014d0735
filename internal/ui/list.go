package ui

import (
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// Sorted returns a copy of items in natural order ("site2" before "site10").
func Sorted(items []string) []string {
	s := slices.Clone(items)

	slices.SortFunc(s, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	return s
}

// JoinSorted lists items in natural order, or returns none when empty.
func JoinSorted(items []string, none string) string {
	if len(items) == 0 {
		return none
	}

	return strings.Join(Sorted(items), ", ")
}
