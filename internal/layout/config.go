// Package layout turns positioned glyphs into reading-order text blocks
// and implements the geometric heuristics that operate on them.
package layout

// Config holds the tunable geometry thresholds.
type Config struct {
	LineTolerance float64 // vertical bucket size for grouping glyphs into lines
	WordGapRatio  float64 // horizontal gap, as a fraction of font size, that inserts a space
	MergeGap      float64 // max vertical gap between mergeable blocks in normal mode
	SizeEpsilon   float64 // max font-size difference between mergeable blocks
	TitleBand     float64 // title candidates start above this fraction of page height
	HeaderBand    float64 // blocks starting above this fraction are running headers
	FooterBand    float64 // blocks ending below this fraction are running footers
}

// DefaultConfig returns the thresholds the classifiers were trained against.
func DefaultConfig() Config {
	return Config{
		LineTolerance: 3.0,
		WordGapRatio:  0.25,
		MergeGap:      10.0,
		SizeEpsilon:   0.1,
		TitleBand:     0.20,
		HeaderBand:    0.05,
		FooterBand:    0.90,
	}
}

// withDefaults replaces non-positive fields with their defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LineTolerance <= 0 {
		c.LineTolerance = d.LineTolerance
	}
	if c.WordGapRatio <= 0 {
		c.WordGapRatio = d.WordGapRatio
	}
	if c.MergeGap <= 0 {
		c.MergeGap = d.MergeGap
	}
	if c.SizeEpsilon <= 0 {
		c.SizeEpsilon = d.SizeEpsilon
	}
	if c.TitleBand <= 0 {
		c.TitleBand = d.TitleBand
	}
	if c.HeaderBand <= 0 {
		c.HeaderBand = d.HeaderBand
	}
	if c.FooterBand <= 0 {
		c.FooterBand = d.FooterBand
	}
	return c
}
