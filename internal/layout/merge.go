package layout

import (
	"math"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// Merge folds typographically continuous blocks into the block before
// them. A block absorbs its successor while both share a font size and
// the vertical gap is under the threshold: cfg.MergeGap normally, the
// full page height in title mode. The input slice is not modified.
func Merge(blocks []doctree.Block, pageHeight float64, titleMode bool, cfg Config) []doctree.Block {
	if len(blocks) == 0 {
		return nil
	}
	cfg = cfg.withDefaults()

	threshold := cfg.MergeGap
	if titleMode {
		threshold = pageHeight
		if threshold <= 0 {
			threshold = math.Inf(1)
		}
	}

	out := make([]doctree.Block, 0, len(blocks))
	for i := 0; i < len(blocks); {
		cur := blocks[i]
		j := i + 1
		for j < len(blocks) && mergeable(cur, blocks[j], threshold, cfg.SizeEpsilon) {
			cur = absorb(cur, blocks[j])
			j++
		}
		out = append(out, cur)
		i = j
	}
	return out
}

func mergeable(cur, next doctree.Block, threshold, epsilon float64) bool {
	return math.Abs(cur.Size-next.Size) < epsilon && next.Top-cur.Bottom < threshold
}

// absorb returns a new block covering both a and b.
func absorb(a, b doctree.Block) doctree.Block {
	return doctree.Block{
		Text:   doctree.CleanText(a.Text + " " + b.Text),
		Size:   math.Max(a.Size, b.Size),
		Bold:   a.Bold || b.Bold,
		X0:     math.Min(a.X0, b.X0),
		X1:     math.Max(a.X1, b.X1),
		Top:    math.Min(a.Top, b.Top),
		Bottom: math.Max(a.Bottom, b.Bottom),
		Page:   a.Page,
	}
}
