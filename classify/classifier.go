package classify

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mbering/segno/glyph"
	"github.com/mbering/segno/model"
	"github.com/mbering/segno/staff"
	"github.com/mbering/segno/svg"
)

// Config holds configuration for element classification
type Config struct {
	// NoteheadLineToleranceFactor scales staff spacing into the
	// vertical tolerance used when testing whether a glyph or line
	// sits on a staff line.
	// Default: 0.5
	NoteheadLineToleranceFactor float64

	// BarlineHeightRatio is the fraction of the staff height a
	// vertical stroke must reach to read as a barline rather than a
	// stem.
	// Default: 0.8
	BarlineHeightRatio float64

	// TextWidthFactor approximates the advance width of one glyph as
	// a fraction of the font size when estimating text extents.
	// Default: 0.6
	TextWidthFactor float64

	// GlyphTable resolves symbol code points to category hints.
	// Nil selects the built-in table.
	GlyphTable *glyph.Table

	// Logger receives per-element decisions; nil means silent
	Logger *slog.Logger
}

// DefaultConfig returns the classification defaults
func DefaultConfig() Config {
	return Config{
		NoteheadLineToleranceFactor: 0.5,
		BarlineHeightRatio:          0.8,
		TextWidthFactor:             0.6,
	}
}

// Classifier assigns a musical category to each drawn element of a
// document, using the detected staff layout as geometric context
type Classifier struct {
	config Config
	table  *glyph.Table
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config Config) *Classifier {
	table := config.GlyphTable
	if table == nil {
		table = glyph.DefaultTable()
	}
	return &Classifier{config: config, table: table}
}

// Classify describes every element in document order. Each input
// yields exactly one MusicalElement at the same position; elements
// that match no rule come back as CategoryUnknown rather than being
// dropped. Classification itself never fails.
func (c *Classifier) Classify(elements []svg.Element, layout *staff.Layout) []model.MusicalElement {
	if layout == nil {
		layout = &staff.Layout{}
	}
	out := make([]model.MusicalElement, 0, len(elements))
	for i := range elements {
		out = append(out, c.classifyElement(&elements[i], i, layout))
	}
	return out
}

func (c *Classifier) classifyElement(el *svg.Element, index int, layout *staff.Layout) model.MusicalElement {
	me := model.MusicalElement{
		ID:          el.ID,
		SourceIndex: index,
		Matrix:      el.Matrix,
	}
	if me.ID == "" {
		me.ID = fmt.Sprintf("el-%d", index)
	}

	if el.Kind == svg.KindText {
		me.Text = strings.TrimSpace(el.Text)
		me.FontFamily = el.FontFamily
		me.FontSize = el.FontSize
		me.Codepoint = soleCodepoint(me.Text)
		me.LocalBBox = c.textBBox(el, me.Text)
	} else if local, ok := el.LocalBBox(); ok {
		me.LocalBBox = local
	}
	me.Center = el.Matrix.Transform(me.LocalBBox.Center())

	var rule string
	me.Category, rule = c.categorize(el, &me, layout)
	if name, ok := layout.InstrumentAt(me.Center.Y); ok {
		me.Instrument = name
	}

	if c.config.Logger != nil {
		c.config.Logger.Debug("element classified",
			"id", me.ID,
			"rule", rule,
			"category", me.Category.String(),
			"instrument", me.Instrument)
	}
	return me
}

// categorize runs the recovery rules in order and stops at the first
// match: structural lines first, then glyphs, then plain text.
func (c *Classifier) categorize(el *svg.Element, me *model.MusicalElement, layout *staff.Layout) (model.Category, string) {
	if cat, ok := c.asStaffLine(el, layout); ok {
		return cat, "staff-line"
	}
	if cat, ok := c.asVerticalStroke(el, layout); ok {
		return cat, "vertical-stroke"
	}
	if cat, ok := c.asGlyph(me, layout); ok {
		return cat, "glyph"
	}
	if el.Kind == svg.KindText {
		return model.CategoryText, "text"
	}
	return model.CategoryUnknown, "unmatched"
}

// asStaffLine matches long flat strokes lying on a detected staff
// line. Length is judged against the span of the lines that formed
// the layout, so short ticks and ledger lines do not qualify.
func (c *Classifier) asStaffLine(el *svg.Element, layout *staff.Layout) (model.Category, bool) {
	if !strokeKind(el.Kind) || layout.LineSpan <= 0 {
		return model.CategoryUnknown, false
	}
	extent, ok := el.VisualExtent()
	if !ok {
		return model.CategoryUnknown, false
	}
	if extent.Width < 0.75*layout.LineSpan || extent.Height > 0.1*extent.Width {
		return model.CategoryUnknown, false
	}

	dist, spacing, ok := layout.NearestLine(extent.Center().Y)
	if !ok || dist > c.config.NoteheadLineToleranceFactor*spacing {
		return model.CategoryUnknown, false
	}
	return model.CategoryStaffLine, true
}

// asVerticalStroke matches thin near-vertical strokes whose vertical
// span overlaps a staff. Strokes reaching most of the staff height
// are barlines; shorter ones are stems.
func (c *Classifier) asVerticalStroke(el *svg.Element, layout *staff.Layout) (model.Category, bool) {
	if !strokeKind(el.Kind) {
		return model.CategoryUnknown, false
	}
	extent, ok := el.VisualExtent()
	if !ok {
		return model.CategoryUnknown, false
	}
	if extent.Height <= 0 || extent.Height < 4*extent.Width {
		return model.CategoryUnknown, false
	}

	s, ok := overlappingStaff(extent, layout)
	if !ok {
		return model.CategoryUnknown, false
	}
	staffHeight := s.Height()
	if staffHeight <= 0 {
		// single-line staff, use the height a five-line staff
		// with this spacing would have
		staffHeight = 4 * s.Spacing
	}
	if extent.Height >= c.config.BarlineHeightRatio*staffHeight {
		return model.CategoryBarline, true
	}
	return model.CategoryStem, true
}

// asGlyph matches single-rune text whose code point carries a glyph
// hint. Ambiguous hints resolve to their primary category only when
// the glyph sits on or between staff lines; elsewhere they fall back.
func (c *Classifier) asGlyph(me *model.MusicalElement, layout *staff.Layout) (model.Category, bool) {
	if me.Codepoint == 0 {
		return model.CategoryUnknown, false
	}
	hint, ok := c.table.Lookup(me.Codepoint)
	if !ok {
		return model.CategoryUnknown, false
	}
	if !hint.Ambiguous {
		return hint.Category, true
	}
	if c.onStaff(me.Center.Y, layout) {
		return hint.Category, true
	}
	return hint.FallbackCategory(), true
}

// onStaff reports whether y lies inside a staff's occupancy range or
// within the line tolerance of its nearest staff line
func (c *Classifier) onStaff(y float64, layout *staff.Layout) bool {
	if _, ok := layout.InstrumentAt(y); ok {
		return true
	}
	dist, spacing, ok := layout.NearestLine(y)
	return ok && dist <= c.config.NoteheadLineToleranceFactor*spacing
}

// textBBox estimates a text element's local extent from its font
// size: one em tall, vertically centered on the baseline anchor.
func (c *Classifier) textBBox(el *svg.Element, trimmed string) model.BBox {
	count := utf8.RuneCountInString(trimmed)
	return model.BBox{
		X:      el.X,
		Y:      el.Y - el.FontSize/2,
		Width:  c.config.TextWidthFactor * el.FontSize * float64(count),
		Height: el.FontSize,
	}
}

// soleCodepoint returns the code point of a one-rune string, zero
// otherwise
func soleCodepoint(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0
	}
	return r
}

func strokeKind(k svg.ElementKind) bool {
	switch k {
	case svg.KindLine, svg.KindPolyline, svg.KindPath, svg.KindRect:
		return true
	}
	return false
}

// overlappingStaff returns the topmost staff whose occupancy range
// intersects the extent's vertical span. A stroke crossing several
// staves, such as a system barline, matches the first.
func overlappingStaff(b model.BBox, layout *staff.Layout) (staff.Staff, bool) {
	for _, s := range layout.Staves {
		if b.Bottom() >= s.Range.Top && b.Top() <= s.Range.Bottom {
			return s, true
		}
	}
	return staff.Staff{}, false
}
