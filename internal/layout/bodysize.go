package layout

import (
	"math"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// FallbackBodySize anchors size ratios when a document has no glyphs.
const FallbackBodySize = 11.0

// BodySize returns the most frequent glyph font size across all pages.
// Sizes are bucketed to 0.1pt; ties go to the smaller size.
func BodySize(pages []doctree.Page) float64 {
	counts := make(map[int]int)
	for _, p := range pages {
		for _, g := range p.Glyphs {
			counts[sizeKey(g.FontSize)]++
		}
	}
	return dominant(counts)
}

// BodySizeOfBlocks is BodySize over a pre-clustered view.
func BodySizeOfBlocks(blocks []doctree.Block) float64 {
	counts := make(map[int]int)
	for _, b := range blocks {
		counts[sizeKey(b.Size)]++
	}
	return dominant(counts)
}

// GuardBodySize replaces a non-positive body size with the fallback.
func GuardBodySize(body float64) float64 {
	if body <= 0 || math.IsNaN(body) || math.IsInf(body, 0) {
		return FallbackBodySize
	}
	return body
}

func sizeKey(size float64) int {
	return int(math.Round(size * 10))
}

func dominant(counts map[int]int) float64 {
	best, bestCount := 0, 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best, bestCount = key, n
		}
	}
	if bestCount == 0 {
		return FallbackBodySize
	}
	return GuardBodySize(float64(best) / 10)
}
