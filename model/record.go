package model

import "fmt"

// Record is the flat export row for one classified element, the JSON
// shape written by batch consumers.
type Record struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Instrument string  `json:"instrument,omitempty"`
	Codepoint  string  `json:"codepoint,omitempty"` // "U+XXXX" form
	Text       string  `json:"text,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Verified   bool    `json:"verified"`
}

// NewRecord flattens a musical element into its export row. Elements
// without a visual bounding box report zero geometry.
func NewRecord(el MusicalElement) Record {
	rec := Record{
		ID:         el.ID,
		Category:   el.Category.String(),
		Instrument: el.Instrument,
		Text:       el.Text,
		Verified:   el.Verified,
	}
	if el.Codepoint != 0 {
		rec.Codepoint = fmt.Sprintf("U+%04X", el.Codepoint)
	}
	if el.VisualBBox != nil {
		rec.X = el.VisualBBox.X
		rec.Y = el.VisualBBox.Y
		rec.Width = el.VisualBBox.Width
		rec.Height = el.VisualBBox.Height
	}
	return rec
}

// Records converts a batch of elements to export rows, preserving order
func Records(els []MusicalElement) []Record {
	out := make([]Record, len(els))
	for i, el := range els {
		out[i] = NewRecord(el)
	}
	return out
}
