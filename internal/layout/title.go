package layout

import (
	"sort"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// titleFallbackBlocks is how many leading blocks are considered when
// nothing starts inside the title band.
const titleFallbackBlocks = 5

// ExtractTitle picks the title from the first page's blocks: the
// largest-font candidates near the top of the page, merged in title
// mode. Returns "" when the page has no blocks.
func ExtractTitle(blocks []doctree.Block, pageHeight float64, cfg Config) string {
	if len(blocks) == 0 {
		return ""
	}
	cfg = cfg.withDefaults()

	band := cfg.TitleBand * pageHeight
	var candidates []doctree.Block
	for _, b := range blocks {
		if b.Top < band {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		n := min(titleFallbackBlocks, len(blocks))
		candidates = append(candidates, blocks[:n]...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Size != candidates[j].Size {
			return candidates[i].Size > candidates[j].Size
		}
		return candidates[i].Top < candidates[j].Top
	})

	merged := Merge(candidates, pageHeight, true, cfg)
	return merged[0].Text
}
