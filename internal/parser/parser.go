package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// ErrIngest marks a document that could not be read at all.
var ErrIngest = errors.New("ingest failed")

// Source is a parsed input document. PDFs carry glyph pages that still
// need layout analysis; formats with their own heading markup carry a
// finished Outline instead.
type Source struct {
	Pages   []doctree.Page
	Outline *doctree.Outline
}

// Parser converts raw document bytes into a Source.
type Parser interface {
	Parse(r io.Reader, filename string) (*Source, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// heading is one heading read from a format's own markup.
type heading struct {
	level int
	text  string
	page  int
}

// nativeOutline builds an outline from markup headings. Levels deeper
// than 3 are dropped and the heading chosen as title is not repeated.
func nativeOutline(title string, heads []heading) *doctree.Outline {
	out := &doctree.Outline{Title: doctree.CleanText(title)}
	for _, h := range heads {
		text := doctree.CleanText(h.text)
		if text == "" || text == out.Title {
			continue
		}
		lvl, ok := levelOf(h.level)
		if !ok {
			continue
		}
		page := h.page
		if page <= 0 {
			page = 1
		}
		out.Outline = append(out.Outline, doctree.Entry{Level: lvl, Text: text, Page: page})
	}
	out.Normalize()
	return out
}

func levelOf(n int) (doctree.Level, bool) {
	switch n {
	case 1:
		return doctree.H1, true
	case 2:
		return doctree.H2, true
	case 3:
		return doctree.H3, true
	}
	return "", false
}

// baseName strips directory and extension from filename.
func baseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// firstLevel1 returns the text of the first level-1 heading, or fallback.
func firstLevel1(heads []heading, fallback string) string {
	for _, h := range heads {
		if h.level == 1 && strings.TrimSpace(h.text) != "" {
			return h.text
		}
	}
	return fallback
}
