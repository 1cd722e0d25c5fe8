package glyph

import "github.com/mbering/segno/model"

// Hint describes how a code point should be read when it appears as a
// standalone symbol in score markup.
type Hint struct {
	Name      string // SMuFL-style glyph name
	Category  model.Category
	Ambiguous bool // geometry decides between Category and Fallback
	Fallback  model.Category
}

// FallbackCategory returns the category an ambiguous glyph falls back
// to when geometry rejects the primary reading. Hints with no explicit
// fallback resolve to plain text.
func (h Hint) FallbackCategory() model.Category {
	if h.Fallback != model.CategoryUnknown {
		return h.Fallback
	}
	return model.CategoryText
}

// Table maps code points to classification hints. Tables are immutable
// after construction and safe for concurrent readers.
type Table struct {
	hints map[rune]Hint
}

// NewTable builds a table from a hint map. The map is copied.
func NewTable(hints map[rune]Hint) *Table {
	t := &Table{hints: make(map[rune]Hint, len(hints))}
	for r, h := range hints {
		t.hints[r] = h
	}
	return t
}

// Lookup returns the hint registered for a code point
func (t *Table) Lookup(r rune) (Hint, bool) {
	if t == nil || t.hints == nil {
		return Hint{}, false
	}
	h, ok := t.hints[r]
	return h, ok
}

// Merge returns a new table combining both; entries in other win
func (t *Table) Merge(other *Table) *Table {
	merged := make(map[rune]Hint)
	if t != nil {
		for r, h := range t.hints {
			merged[r] = h
		}
	}
	if other != nil {
		for r, h := range other.hints {
			merged[r] = h
		}
	}
	return &Table{hints: merged}
}

// Len returns the number of registered code points
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.hints)
}
