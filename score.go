package segno

import (
	"github.com/mbering/segno/coords"
	"github.com/mbering/segno/model"
	"github.com/mbering/segno/staff"
)

// Score is the fully analyzed content of one score document.
type Score struct {
	// Width and Height are the document dimensions; ViewBox is the
	// declared view window when the source carried one.
	Width   float64
	Height  float64
	ViewBox *model.BBox

	// Elements are the classified elements in document order.
	Elements []model.MusicalElement

	// Staves are the detected staff systems in top-to-bottom order.
	Staves []staff.Staff

	// Report summarizes coordinate verification across the elements.
	Report *coords.Report
}

// Records flattens the score's elements into export rows
func (s *Score) Records() []model.Record {
	return model.Records(s.Elements)
}

// ByCategory returns the elements of one category in document order
func (s *Score) ByCategory(cat model.Category) []model.MusicalElement {
	var out []model.MusicalElement
	for _, el := range s.Elements {
		if el.Category == cat {
			out = append(out, el)
		}
	}
	return out
}

// CountByCategory tallies elements per category name
func (s *Score) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, el := range s.Elements {
		counts[el.Category.String()]++
	}
	return counts
}

// Instruments returns the detected instrument names in top-to-bottom
// order
func (s *Score) Instruments() []string {
	names := make([]string, len(s.Staves))
	for i, st := range s.Staves {
		names[i] = st.Name
	}
	return names
}
