package model

// Category represents the musical meaning assigned to a document element
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotehead
	CategoryStem
	CategoryStaffLine
	CategoryBarline
	CategoryClef
	CategoryAccidental
	CategoryDynamicMarking
	CategoryOrnament
	CategoryText
)

func (c Category) String() string {
	switch c {
	case CategoryNotehead:
		return "notehead"
	case CategoryStem:
		return "stem"
	case CategoryStaffLine:
		return "staff_line"
	case CategoryBarline:
		return "barline"
	case CategoryClef:
		return "clef"
	case CategoryAccidental:
		return "accidental"
	case CategoryDynamicMarking:
		return "dynamic_marking"
	case CategoryOrnament:
		return "ornament"
	case CategoryText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseCategory converts a category name back to its Category value.
// The boolean is false for names that do not match any category.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "notehead":
		return CategoryNotehead, true
	case "stem":
		return CategoryStem, true
	case "staff_line":
		return CategoryStaffLine, true
	case "barline":
		return CategoryBarline, true
	case "clef":
		return CategoryClef, true
	case "accidental":
		return CategoryAccidental, true
	case "dynamic_marking":
		return CategoryDynamicMarking, true
	case "ornament":
		return CategoryOrnament, true
	case "text":
		return CategoryText, true
	case "unknown":
		return CategoryUnknown, true
	default:
		return CategoryUnknown, false
	}
}

// MusicalElement is one document element with its recovered meaning.
// It references the source element by index rather than copying its
// geometry, so reconstruction can re-emit the original markup.
type MusicalElement struct {
	ID          string
	SourceIndex int // index into the parsed document's element slice
	Category    Category
	Instrument  string // empty when no staff region claims the element
	Codepoint   rune   // code point of single-rune text, 0 otherwise
	Text        string
	FontFamily  string
	FontSize    float64
	Matrix      Matrix
	LocalBBox   BBox  // untransformed bounds
	Center      Point // LocalBBox center pushed through Matrix
	VisualBBox  *BBox // transformed bounds, set by coordinate extraction
	Verified    bool  // transform round-trip check succeeded
}

// InstrumentRange is the vertical band of the document claimed by one
// instrument. Top is numerically smaller than Bottom.
type InstrumentRange struct {
	Top    float64
	Bottom float64
}

// Contains reports whether y falls inside the range, endpoints included
func (r InstrumentRange) Contains(y float64) bool {
	return y >= r.Top && y <= r.Bottom
}
