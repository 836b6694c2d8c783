// Package classify defines the model collaborators used by the outline
// pipeline and the immutable context that carries them.
package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// ErrUnavailable is returned when no model is configured for a call.
var ErrUnavailable = errors.New("classifier unavailable")

// Embedder maps text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Reducer projects a feature vector down to Dim() values.
type Reducer interface {
	Reduce(vec []float64) ([]float64, error)
	Dim() int
}

// HeadingClassifier decides whether a reduced vector is a heading.
type HeadingClassifier interface {
	IsHeading(ctx context.Context, vec []float64) (bool, error)
}

// LevelClassifier predicts a heading level for a reduced vector.
type LevelClassifier interface {
	Level(ctx context.Context, vec []float64) (doctree.Level, error)
}

// Verdict is the kind of a classifier Outcome.
type Verdict int

const (
	Unavailable Verdict = iota
	Negative
	Positive
)

func (v Verdict) String() string {
	switch v {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unavailable"
	}
}

// Outcome is the result of classifying one block.
type Outcome struct {
	Verdict Verdict
	Level   doctree.Level // optional, only on Positive
	Err     error         // only on Unavailable
}

// Fail wraps err as an Unavailable outcome.
func Fail(err error) Outcome {
	if err == nil {
		err = ErrUnavailable
	}
	return Outcome{Verdict: Unavailable, Err: err}
}

// Models is the read-only set of loaded model artifacts. Build it once
// before processing starts and share it between workers.
type Models struct {
	Embedder Embedder
	Reducer  Reducer
	Heading  HeadingClassifier
	Level    LevelClassifier // optional
	UseLevel bool            // consult Level when numbering does not decide
}

// Ready reports whether the heading classifier can be invoked.
func (m *Models) Ready() bool {
	return m != nil && m.Embedder != nil && m.Reducer != nil && m.Heading != nil
}

// Features concatenates the structural features with the text embedding
// and reduces the result.
func (m *Models) Features(ctx context.Context, structural []float64, text string) ([]float64, error) {
	if !m.Ready() {
		return nil, ErrUnavailable
	}
	emb, err := m.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	full := make([]float64, 0, len(structural)+len(emb))
	full = append(full, structural...)
	full = append(full, emb...)

	reduced, err := m.Reducer.Reduce(full)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	if len(reduced) != m.Reducer.Dim() {
		return nil, fmt.Errorf("reduce: got %d values, expected %d", len(reduced), m.Reducer.Dim())
	}
	return reduced, nil
}

// Classify runs the heading classifier, and the level classifier when
// enabled, over a reduced vector.
func (m *Models) Classify(ctx context.Context, vec []float64) Outcome {
	if !m.Ready() {
		return Fail(ErrUnavailable)
	}
	ok, err := m.Heading.IsHeading(ctx, vec)
	if err != nil {
		return Fail(fmt.Errorf("heading: %w", err))
	}
	if !ok {
		return Outcome{Verdict: Negative}
	}

	out := Outcome{Verdict: Positive}
	if m.UseLevel && m.Level != nil {
		// A failed level prediction keeps the positive verdict.
		if lvl, err := m.Level.Level(ctx, vec); err == nil && lvl.Valid() {
			out.Level = lvl
		}
	}
	return out
}
