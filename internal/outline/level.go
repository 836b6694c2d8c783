package outline

import (
	"regexp"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
)

var (
	numbered3 = regexp.MustCompile(`^\d+\.\d+\.\d+\.?\s`)
	numbered2 = regexp.MustCompile(`^\d+\.\d+\.?\s`)
	numbered1 = regexp.MustCompile(`^\d+\.\s`)

	// leadingNumber marks text that is trusted as a heading even when
	// the classifier disagrees or is unavailable.
	leadingNumber = regexp.MustCompile(`^\d+\.`)
)

// Size-ratio bands used when the text carries no numbering.
const (
	h1Ratio = 1.8
	h2Ratio = 1.5
)

// NumberedLevel returns the level implied by a numbering prefix such as
// "2.3 " and whether one was found.
func NumberedLevel(text string) (doctree.Level, bool) {
	switch {
	case numbered3.MatchString(text):
		return doctree.H3, true
	case numbered2.MatchString(text):
		return doctree.H2, true
	case numbered1.MatchString(text):
		return doctree.H1, true
	}
	return "", false
}

// HasLeadingNumber reports whether text starts like "12.".
func HasLeadingNumber(text string) bool {
	return leadingNumber.MatchString(text)
}

// AssignLevel maps a block to a level: numbering first, then font size
// relative to the body size.
func AssignLevel(b doctree.Block, body float64) doctree.Level {
	return assignLevel(b, body, "")
}

// assignLevel is AssignLevel with an optional classifier-predicted level
// that replaces the size bands when numbering does not decide.
func assignLevel(b doctree.Block, body float64, predicted doctree.Level) doctree.Level {
	if lvl, ok := NumberedLevel(b.Text); ok {
		return lvl
	}
	if predicted.Valid() {
		return predicted
	}
	ratio := b.Size / layout.GuardBodySize(body)
	switch {
	case ratio > h1Ratio:
		return doctree.H1
	case ratio > h2Ratio:
		return doctree.H2
	default:
		return doctree.H3
	}
}
