package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/docoutline/internal/classify"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
)

// Outliner turns one input document into its outline. It is shared by
// the HTTP handlers, the job workers and the batch runner.
type Outliner struct {
	assembler *outline.Assembler
	log       *slog.Logger
}

func NewOutliner(cfg layout.Config, models *classify.Models, log *slog.Logger) *Outliner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Outliner{
		assembler: outline.NewAssembler(cfg, models, log),
		log:       log,
	}
}

// Parse selects a parser by extension and reads the document.
func (o *Outliner) Parse(r io.Reader, filename string) (*parser.Source, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	src, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return src, nil
}

// Build returns the outline of a parsed document. Formats that carry
// their own heading markup are returned as-is; glyph pages go through
// the layout pipeline.
func (o *Outliner) Build(ctx context.Context, src *parser.Source) doctree.Outline {
	if src.Outline != nil {
		out := *src.Outline
		out.Normalize()
		return out
	}
	return o.assembler.Extract(ctx, src.Pages)
}

// Outline parses and outlines a document in one step.
func (o *Outliner) Outline(ctx context.Context, r io.Reader, filename string) (doctree.Outline, error) {
	src, err := o.Parse(r, filename)
	if err != nil {
		return doctree.Outline{}, err
	}
	return o.Build(ctx, src), nil
}

// OutlineBytes is Outline over an in-memory file.
func (o *Outliner) OutlineBytes(ctx context.Context, data []byte, filename string) (doctree.Outline, error) {
	return o.Outline(ctx, bytes.NewReader(data), filename)
}
