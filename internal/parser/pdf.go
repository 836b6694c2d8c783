package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// US Letter, used when a page has no readable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// ascentRatio approximates the baseline position inside a glyph box.
const ascentRatio = 0.8

// PDFParser extracts positioned glyphs from PDF files.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Source, error) {
	pages, err := p.Pages(r)
	if err != nil {
		return nil, err
	}
	return &Source{Pages: pages}, nil
}

// Pages reads every page's glyphs. Any failure of the PDF backend,
// including a panic on a malformed content stream, is reported as
// ErrIngest.
func (p *PDFParser) Pages(r io.Reader) (pages []doctree.Page, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read pdf: %w", ErrIngest, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: pdf backend: %v", ErrIngest, rec)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrIngest, err)
	}

	numPages := reader.NumPage()
	pages = make([]doctree.Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		width, height := pageSize(page.V)
		out := doctree.Page{Number: i, Width: width, Height: height}
		if !page.V.IsNull() {
			out.Glyphs = pageGlyphs(page.Content(), i, height)
		}
		pages = append(pages, out)
	}
	return pages, nil
}

// pageGlyphs converts text runs from PDF space (origin bottom-left,
// Y at the baseline) to top-left boxes.
func pageGlyphs(content pdflib.Content, pageNum int, height float64) []doctree.Glyph {
	glyphs := make([]doctree.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		top := height - (t.Y + t.FontSize*ascentRatio)
		glyphs = append(glyphs, doctree.Glyph{
			Text:     t.S,
			FontSize: t.FontSize,
			Bold:     isBoldFont(t.Font),
			X0:       t.X,
			Top:      top,
			X1:       t.X + t.W,
			Bottom:   top + t.FontSize,
			Page:     pageNum,
		})
	}
	return glyphs
}

func isBoldFont(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "bold") || strings.Contains(name, "heavy")
}

// pageSize reads the MediaBox, following the page tree for inherited
// values.
func pageSize(v pdflib.Value) (float64, float64) {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdflib.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
