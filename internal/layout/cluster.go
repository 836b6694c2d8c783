package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Cluster groups a page's glyphs into lines by vertical bucket and
// converts each line into a Block. The result is ordered by (Top, X0).
func Cluster(glyphs []doctree.Glyph, cfg Config) []doctree.Block {
	if len(glyphs) == 0 {
		return nil
	}
	cfg = cfg.withDefaults()

	lines := make(map[int][]doctree.Glyph)
	for _, g := range glyphs {
		key := int(math.Round(g.Top / cfg.LineTolerance))
		lines[key] = append(lines[key], g)
	}

	blocks := make([]doctree.Block, 0, len(lines))
	for _, line := range lines {
		if b, ok := lineBlock(line, cfg.WordGapRatio); ok {
			blocks = append(blocks, b)
		}
	}
	SortReadingOrder(blocks)
	return blocks
}

// SortReadingOrder sorts blocks in place by (Top, X0).
func SortReadingOrder(blocks []doctree.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Top != blocks[j].Top {
			return blocks[i].Top < blocks[j].Top
		}
		return blocks[i].X0 < blocks[j].X0
	})
}

// lineBlock joins one line of glyphs left to right.
func lineBlock(line []doctree.Glyph, wordGap float64) (doctree.Block, bool) {
	sorted := make([]doctree.Glyph, len(line))
	copy(sorted, line)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X0 < sorted[j].X0 })

	first := sorted[0]
	b := doctree.Block{
		Size:   first.FontSize,
		Bold:   first.Bold,
		X0:     first.X0,
		X1:     first.X1,
		Top:    first.Top,
		Bottom: first.Bottom,
		Page:   first.Page,
	}

	var sb strings.Builder
	for i, g := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			gap := g.X0 - prev.X1
			if gap > wordGap*math.Max(g.FontSize, prev.FontSize) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.Text)

		b.Size = math.Max(b.Size, g.FontSize)
		b.Bold = b.Bold || g.Bold
		b.X0 = math.Min(b.X0, g.X0)
		b.X1 = math.Max(b.X1, g.X1)
		b.Top = math.Min(b.Top, g.Top)
		b.Bottom = math.Max(b.Bottom, g.Bottom)
	}

	b.Text = doctree.CleanText(sb.String())
	return b, b.Text != ""
}
