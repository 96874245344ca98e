// Package normalize holds the single name-normalization rule used everywhere
// filer and profile names are compared. Matching must never depend on the
// incidental formatting of whichever spreadsheet a name arrived in.
package normalize

import "strings"

// Name trims leading/trailing whitespace, lowercases, and collapses internal
// whitespace runs to single spaces. Total over all inputs; an empty or
// all-whitespace string normalizes to "".
func Name(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Equal reports whether two names are the same after normalization.
func Equal(a, b string) bool {
	return Name(a) == Name(b)
}
