// Package features encodes a block's geometry and text statistics as the
// fixed-order structural vector the heading classifiers were trained on.
package features

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/classify"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
)

// Positions in the structural vector. Do not reorder: the classifiers'
// input shape depends on it.
const (
	SizeRatio = iota
	PositionX
	PositionY
	Centered
	TextLength
	CaseRatio
	DigitRatio
	HasPunctuation
	PrevGap
	NextSizeRatio

	StructuralDim
)

// NoPrevGap marks a block with nothing above it on the page.
const NoPrevGap = 1000.0

const punctuation = ".,;:!?-"

// Structural computes the structural vector for b. prev and next are the
// neighbouring blocks in reading order, nil at the ends.
func Structural(b doctree.Block, prev, next *doctree.Block, body, width, height float64) [StructuralDim]float64 {
	body = layout.GuardBodySize(body)
	width = guardDim(width)
	height = guardDim(height)

	var v [StructuralDim]float64
	v[SizeRatio] = b.Size / body

	cx := (b.X0 + b.X1) / 2 / width
	v[PositionX] = cx
	v[PositionY] = b.Top / height
	if cx >= 0.4 && cx <= 0.6 {
		v[Centered] = 1
	}

	length := utf8.RuneCountInString(b.Text)
	var upper, digits int
	for _, r := range b.Text {
		if unicode.IsUpper(r) {
			upper++
		}
		if unicode.IsDigit(r) {
			digits++
		}
	}
	denom := float64(max(1, length))
	v[TextLength] = float64(length)
	v[CaseRatio] = float64(upper) / denom
	v[DigitRatio] = float64(digits) / denom
	if strings.ContainsAny(b.Text, punctuation) {
		v[HasPunctuation] = 1
	}

	v[PrevGap] = NoPrevGap
	if prev != nil {
		v[PrevGap] = b.Top - prev.Bottom
	}
	if next != nil {
		v[NextSizeRatio] = next.Size / body
	}
	return v
}

// Build returns the reduced feature vector for b: the structural vector
// concatenated with the text embedding, passed through the reducer.
func Build(ctx context.Context, m *classify.Models, b doctree.Block, prev, next *doctree.Block, body, width, height float64) ([]float64, error) {
	s := Structural(b, prev, next, body, width, height)
	return m.Features(ctx, s[:], b.Text)
}

func guardDim(d float64) float64 {
	if d <= 0 {
		return 1
	}
	return d
}
