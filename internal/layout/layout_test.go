package layout

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// word lays out text as a single glyph run starting at x.
func word(text string, x, top, size float64) doctree.Glyph {
	return doctree.Glyph{
		Text:     text,
		FontSize: size,
		X0:       x,
		X1:       x + float64(len(text))*size*0.5,
		Top:      top,
		Bottom:   top + size,
		Page:     1,
	}
}

func block(text string, top, size float64) doctree.Block {
	return doctree.Block{
		Text:   text,
		Size:   size,
		X0:     72,
		X1:     300,
		Top:    top,
		Bottom: top + size,
		Page:   1,
	}
}

func TestCluster_EmptyPage(t *testing.T) {
	blocks := Cluster(nil, DefaultConfig())
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestCluster_GroupsByVerticalBucket(t *testing.T) {
	glyphs := []doctree.Glyph{
		word("world", 130, 100.4, 12),
		word("Hello", 72, 100, 12),
		word("Second", 72, 130, 10),
	}
	blocks := Cluster(glyphs, DefaultConfig())
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Text != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", blocks[0].Text)
	}
	if blocks[0].Size != 12 {
		t.Errorf("expected size 12, got %v", blocks[0].Size)
	}
	if blocks[1].Text != "Second" {
		t.Errorf("expected %q, got %q", "Second", blocks[1].Text)
	}
}

func TestCluster_AdjacentGlyphsJoinWithoutSpace(t *testing.T) {
	glyphs := []doctree.Glyph{
		{Text: "A", FontSize: 10, X0: 10, X1: 15, Top: 50, Bottom: 60, Page: 1},
		{Text: "B", FontSize: 14, X0: 15.5, X1: 22, Top: 50.5, Bottom: 63, Page: 1},
	}
	blocks := Cluster(glyphs, DefaultConfig())
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Text != "AB" {
		t.Errorf("expected %q, got %q", "AB", b.Text)
	}
	if b.Size != 14 {
		t.Errorf("expected max size 14, got %v", b.Size)
	}
	if b.X0 != 10 || b.X1 != 22 || b.Top != 50 || b.Bottom != 63 {
		t.Errorf("expected union bbox (10,50)-(22,63), got (%v,%v)-(%v,%v)", b.X0, b.Top, b.X1, b.Bottom)
	}
}

func TestCluster_DropsWhitespaceLines(t *testing.T) {
	glyphs := []doctree.Glyph{word("   ", 72, 100, 12)}
	if blocks := Cluster(glyphs, DefaultConfig()); len(blocks) != 0 {
		t.Fatalf("expected whitespace-only line to be dropped, got %+v", blocks)
	}
}

func TestBodySize_MostFrequent(t *testing.T) {
	pages := []doctree.Page{{
		Glyphs: []doctree.Glyph{
			{FontSize: 24}, {FontSize: 10}, {FontSize: 10}, {FontSize: 10}, {FontSize: 12},
		},
	}}
	if got := BodySize(pages); got != 10 {
		t.Errorf("expected body size 10, got %v", got)
	}
}

func TestBodySize_EmptyFallsBack(t *testing.T) {
	if got := BodySize(nil); got != FallbackBodySize {
		t.Errorf("expected fallback %v, got %v", FallbackBodySize, got)
	}
	if got := BodySizeOfBlocks(nil); got != FallbackBodySize {
		t.Errorf("expected fallback %v, got %v", FallbackBodySize, got)
	}
}

func TestBodySize_ZeroSizesFallBack(t *testing.T) {
	pages := []doctree.Page{{Glyphs: []doctree.Glyph{{FontSize: 0}, {FontSize: 0}}}}
	if got := BodySize(pages); got != FallbackBodySize {
		t.Errorf("expected fallback %v, got %v", FallbackBodySize, got)
	}
}

func TestMerge_ContinuousBlocks(t *testing.T) {
	blocks := []doctree.Block{
		block("A long heading", 100, 18),
		block("that wraps", 120, 18),
		block("Body text", 150, 10),
	}
	merged := Merge(blocks, 792, false, DefaultConfig())
	if len(merged) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(merged))
	}
	if merged[0].Text != "A long heading that wraps" {
		t.Errorf("expected merged text, got %q", merged[0].Text)
	}
	if merged[0].Bottom != 138 {
		t.Errorf("expected bottom 138, got %v", merged[0].Bottom)
	}
	if blocks[0].Text != "A long heading" {
		t.Errorf("expected input to be left untouched, got %q", blocks[0].Text)
	}
}

func TestMerge_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		next  doctree.Block
		title bool
		want  int
	}{
		{"size differs", block("x", 121, 12.2), false, 2},
		{"size within epsilon", block("x", 121, 12.05), false, 1},
		{"gap too large", block("x", 150, 12), false, 2},
		{"gap just under", block("x", 121.9, 12), false, 1},
		{"title mode ignores gap", block("x", 600, 12), true, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := []doctree.Block{block("first", 100, 12), tc.next}
			got := Merge(blocks, 792, tc.title, DefaultConfig())
			if len(got) != tc.want {
				t.Errorf("expected %d blocks, got %d", tc.want, len(got))
			}
		})
	}
}

func TestMerge_TransitiveLeft(t *testing.T) {
	blocks := []doctree.Block{
		block("a", 100, 12),
		block("b", 115, 12),
		block("c", 130, 12),
	}
	got := Merge(blocks, 792, false, DefaultConfig())
	if len(got) != 1 || got[0].Text != "a b c" {
		t.Fatalf("expected one block %q, got %+v", "a b c", got)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	blocks := []doctree.Block{
		block("Title", 50, 24),
		block("Intro", 100, 12),
		block("continues", 114, 12),
		block("1. Section", 160, 16),
		block("Body", 190, 12),
		block("more body", 204, 12),
	}
	once := Merge(blocks, 792, false, DefaultConfig())
	twice := Merge(once, 792, false, DefaultConfig())
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected merge to be idempotent\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge(nil, 792, false, DefaultConfig()); len(got) != 0 {
		t.Errorf("expected empty result, got %d blocks", len(got))
	}
}

func TestExtractTitle_LargestTopBlock(t *testing.T) {
	blocks := []doctree.Block{
		block("Annual Report 2024", 60, 26),
		block("Prepared by the finance team", 100, 12),
		block("Body paragraph", 300, 11),
	}
	if got := ExtractTitle(blocks, 792, DefaultConfig()); got != "Annual Report 2024" {
		t.Errorf("expected %q, got %q", "Annual Report 2024", got)
	}
}

func TestExtractTitle_WrappedTitleMerges(t *testing.T) {
	blocks := []doctree.Block{
		block("Understanding Layout", 40, 28),
		block("subtitle", 75, 14),
		block("Reconstruction", 110, 28),
	}
	want := "Understanding Layout Reconstruction"
	if got := ExtractTitle(blocks, 792, DefaultConfig()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtractTitle_FallsBackToFirstBlocks(t *testing.T) {
	blocks := []doctree.Block{
		block("Body", 400, 11),
		block("Deep Title", 420, 20),
	}
	if got := ExtractTitle(blocks, 792, DefaultConfig()); got != "Deep Title" {
		t.Errorf("expected %q, got %q", "Deep Title", got)
	}
}

func TestExtractTitle_NoBlocks(t *testing.T) {
	if got := ExtractTitle(nil, 792, DefaultConfig()); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestIsHeaderFooter(t *testing.T) {
	tests := []struct {
		name string
		b    doctree.Block
		want bool
	}{
		{"header band", doctree.Block{Top: 20, Bottom: 30}, true},
		{"footer band", doctree.Block{Top: 720, Bottom: 740}, true},
		{"body", doctree.Block{Top: 200, Bottom: 212}, false},
		{"straddles footer line", doctree.Block{Top: 700, Bottom: 713}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsHeaderFooter(tc.b, 792, DefaultConfig()); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestIsHeaderFooter_UnknownHeight(t *testing.T) {
	if IsHeaderFooter(doctree.Block{Top: 1, Bottom: 2}, 0, DefaultConfig()) {
		t.Error("expected no bands on a page without height")
	}
}

func TestDropMargins(t *testing.T) {
	blocks := []doctree.Block{
		{Text: "Running header", Top: 10, Bottom: 20},
		{Text: "Body", Top: 200, Bottom: 212},
		{Text: "Page 3", Top: 760, Bottom: 770},
	}
	got := DropMargins(blocks, 792, DefaultConfig())
	if len(got) != 1 || got[0].Text != "Body" {
		t.Errorf("expected only body block, got %+v", got)
	}
}
