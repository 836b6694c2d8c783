package doctree

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText collapses runs of whitespace, trims, and NFC-normalizes s.
func CleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
