package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func TestPDFParser_InvalidInput(t *testing.T) {
	p := &PDFParser{}
	for _, input := range []string{"", "not a pdf", "%PDF-1.4\ngarbage"} {
		_, err := p.Parse(strings.NewReader(input), "broken.pdf")
		if err == nil {
			t.Fatalf("input %q: expected error", input)
		}
		if !errors.Is(err, ErrIngest) {
			t.Errorf("input %q: expected ErrIngest, got %v", input, err)
		}
	}
}

func TestPageGlyphs_Coordinates(t *testing.T) {
	content := pdflib.Content{Text: []pdflib.Text{
		{Font: "Helvetica-Bold", FontSize: 24, X: 72, Y: 700, W: 13.3, S: "H"},
		{Font: "Helvetica", FontSize: 10, X: 72, Y: 600, W: 5, S: "b"},
		{Font: "Helvetica", FontSize: 10, X: 80, Y: 600, W: 5, S: ""},
	}}

	glyphs := pageGlyphs(content, 3, 792)
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(glyphs))
	}

	g := glyphs[0]
	if g.Text != "H" || g.Page != 3 {
		t.Errorf("unexpected glyph %+v", g)
	}
	if !g.Bold {
		t.Error("expected bold glyph")
	}
	if math.Abs(g.Top-72.8) > 1e-9 {
		t.Errorf("expected top 72.8, got %v", g.Top)
	}
	if math.Abs(g.Bottom-96.8) > 1e-9 {
		t.Errorf("expected bottom 96.8, got %v", g.Bottom)
	}
	if g.X0 != 72 || math.Abs(g.X1-85.3) > 1e-9 {
		t.Errorf("expected x range [72, 85.3], got [%v, %v]", g.X0, g.X1)
	}
	if glyphs[1].Bold {
		t.Error("expected regular glyph")
	}
}

func TestIsBoldFont(t *testing.T) {
	tests := map[string]bool{
		"Helvetica-Bold":      true,
		"ABCDEF+Arial,BoldMT": true,
		"Futura-Heavy":        true,
		"Times-Roman":         false,
		"":                    false,
	}
	for name, want := range tests {
		if got := isBoldFont(name); got != want {
			t.Errorf("font=%q: expected %v, got %v", name, want, got)
		}
	}
}

func TestPageSize_DefaultsToLetter(t *testing.T) {
	w, h := pageSize(pdflib.Value{})
	if w != defaultPageWidth || h != defaultPageHeight {
		t.Errorf("expected %vx%v, got %vx%v", defaultPageWidth, defaultPageHeight, w, h)
	}
}
