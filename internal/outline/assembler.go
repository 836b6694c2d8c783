// Package outline assembles a document's title and heading outline from
// its glyph pages.
package outline

import (
	"context"
	"log/slog"

	"github.com/dgallion1/docoutline/internal/classify"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/features"
	"github.com/dgallion1/docoutline/internal/layout"
)

// Assembler runs the outline pipeline. It holds no per-document state and
// may be shared between goroutines.
type Assembler struct {
	cfg    layout.Config
	models *classify.Models
	log    *slog.Logger
}

// NewAssembler creates an assembler. models may be nil, in which case
// numbering is the only heading signal.
func NewAssembler(cfg layout.Config, models *classify.Models, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Assembler{cfg: cfg, models: models, log: log}
}

// Extract returns the title and outline of a document.
func (a *Assembler) Extract(ctx context.Context, pages []doctree.Page) doctree.Outline {
	result := doctree.Outline{Outline: []doctree.Entry{}}
	if len(pages) == 0 {
		result.Normalize()
		return result
	}

	body := layout.BodySize(pages)
	first := pages[0]
	result.Title = layout.ExtractTitle(layout.Cluster(first.Glyphs, a.cfg), first.Height, a.cfg)

	var stats pageStats
	for _, page := range pages {
		entries := a.extractPage(ctx, page, body, result.Title, &stats)
		result.Outline = append(result.Outline, entries...)
	}

	a.log.Debug("outline assembled",
		"pages", len(pages),
		"body_size", body,
		"entries", len(result.Outline),
		"positive", stats.positive,
		"negative", stats.negative,
		"unavailable", stats.unavailable,
		"numbering_overrides", stats.overrides,
	)
	if stats.lastErr != nil {
		a.log.Debug("classifier unavailable, used numbering fallback", "error", stats.lastErr)
	}

	result.Normalize()
	return result
}

type pageStats struct {
	positive, negative, unavailable, overrides int
	lastErr                                    error
}

func (a *Assembler) extractPage(ctx context.Context, page doctree.Page, body float64, title string, stats *pageStats) []doctree.Entry {
	blocks := layout.Merge(layout.Cluster(page.Glyphs, a.cfg), page.Height, false, a.cfg)

	var entries []doctree.Entry
	for i, b := range blocks {
		if layout.IsHeaderFooter(b, page.Height, a.cfg) {
			continue
		}
		if title != "" && b.Text == title {
			continue
		}

		var prev, next *doctree.Block
		if i > 0 {
			prev = &blocks[i-1]
		}
		if i+1 < len(blocks) {
			next = &blocks[i+1]
		}

		out := a.classify(ctx, b, prev, next, body, page.Width, page.Height)
		heading := false
		switch out.Verdict {
		case classify.Positive:
			stats.positive++
			heading = true
		case classify.Negative:
			stats.negative++
			if HasLeadingNumber(b.Text) {
				stats.overrides++
				heading = true
			}
		case classify.Unavailable:
			stats.unavailable++
			stats.lastErr = out.Err
			heading = HasLeadingNumber(b.Text)
		}
		if !heading {
			continue
		}

		entries = append(entries, doctree.Entry{
			Level: assignLevel(b, body, out.Level),
			Text:  b.Text,
			Page:  pageNumber(page, b),
		})
	}
	return entries
}

func (a *Assembler) classify(ctx context.Context, b doctree.Block, prev, next *doctree.Block, body, width, height float64) classify.Outcome {
	if !a.models.Ready() {
		return classify.Fail(classify.ErrUnavailable)
	}
	vec, err := features.Build(ctx, a.models, b, prev, next, body, width, height)
	if err != nil {
		return classify.Fail(err)
	}
	return a.models.Classify(ctx, vec)
}

func pageNumber(page doctree.Page, b doctree.Block) int {
	if b.Page > 0 {
		return b.Page
	}
	return page.Number
}
