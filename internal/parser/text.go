package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/outline"
)

// TextParser handles plain text, such as pdftotext output. The first
// non-empty line is the title; numbered lines ("2.3 Methods") are
// headings. Form feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Source, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &doctree.Outline{}
	page := 1
	for scanner.Scan() {
		raw := scanner.Text()
		page += strings.Count(raw, "\f")
		line := doctree.CleanText(strings.ReplaceAll(raw, "\f", " "))
		if line == "" {
			continue
		}
		if out.Title == "" {
			out.Title = line
			continue
		}
		if lvl, ok := outline.NumberedLevel(line); ok {
			out.Outline = append(out.Outline, doctree.Entry{Level: lvl, Text: line, Page: page})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if out.Title == "" {
		out.Title = baseName(filename)
	}
	out.Normalize()
	return &Source{Outline: out}, nil
}
