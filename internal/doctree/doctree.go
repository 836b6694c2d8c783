package doctree

// Level is an outline heading level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Valid reports whether l is one of the three outline levels.
func (l Level) Valid() bool {
	return l == H1 || l == H2 || l == H3
}

// Glyph is a positioned run of text produced by the ingestion adapter.
// Coordinates are top-left origin: Top < Bottom.
type Glyph struct {
	Text     string
	FontSize float64
	Bold     bool
	X0       float64
	Top      float64
	X1       float64
	Bottom   float64
	Page     int // 1-based
}

// Page is one page of glyphs plus its geometry.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Glyphs []Glyph
}

// Block is a reading-order unit of text with one effective font size.
type Block struct {
	Text   string
	Size   float64 // max glyph size
	Bold   bool
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
	Page   int
}

// Entry is one heading in the final outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the per-document result.
type Outline struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// UntitledTitle is used when no title block can be found.
const UntitledTitle = "Untitled"

// Normalize fills defaults so the JSON form never carries a null outline.
func (o *Outline) Normalize() {
	if o.Title == "" {
		o.Title = UntitledTitle
	}
	if o.Outline == nil {
		o.Outline = []Entry{}
	}
}
