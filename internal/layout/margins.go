package layout

import "github.com/dgallion1/docoutline/internal/doctree"

// IsHeaderFooter reports whether b sits in the running header or footer
// band of a page of the given height. Pages without a known height have
// no bands.
func IsHeaderFooter(b doctree.Block, pageHeight float64, cfg Config) bool {
	cfg = cfg.withDefaults()
	if pageHeight <= 0 {
		return false
	}
	return b.Top < cfg.HeaderBand*pageHeight || b.Bottom > cfg.FooterBand*pageHeight
}

// DropMargins returns the blocks outside the header and footer bands.
func DropMargins(blocks []doctree.Block, pageHeight float64, cfg Config) []doctree.Block {
	out := make([]doctree.Block, 0, len(blocks))
	for _, b := range blocks {
		if !IsHeaderFooter(b, pageHeight, cfg) {
			out = append(out, b)
		}
	}
	return out
}
