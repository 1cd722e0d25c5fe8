package classify

import (
	"math"
	"sort"

	"github.com/mbering/segno/glyph"
	"github.com/mbering/segno/model"
)

// FilterNoteheads enforces one notehead per horizontal position
// within each instrument. Noteheads are grouped by instrument and by
// visual center x rounded to the nearest integer; inside a colliding
// group the leftmost is kept and every other member is re-tagged to
// its glyph fallback category. Unassigned noteheads form their own
// group. The input is not modified, output order matches input order,
// and applying the filter to its own output changes nothing.
func FilterNoteheads(elements []model.MusicalElement, table *glyph.Table) []model.MusicalElement {
	if table == nil {
		table = glyph.DefaultTable()
	}
	out := append([]model.MusicalElement(nil), elements...)

	type slot struct {
		instrument string
		x          float64
	}
	groups := make(map[slot][]int)
	for i := range out {
		if out[i].Category != model.CategoryNotehead {
			continue
		}
		key := slot{out[i].Instrument, math.Round(out[i].Center.X)}
		groups[key] = append(groups[key], i)
	}

	for _, members := range groups {
		if len(members) <= 1 {
			continue
		}
		// admit by ascending x, input order breaking ties
		sort.SliceStable(members, func(a, b int) bool {
			return out[members[a]].Center.X < out[members[b]].Center.X
		})
		for _, i := range members[1:] {
			out[i].Category = noteheadFallback(&out[i], table)
		}
	}
	return out
}

// noteheadFallback resolves the category a rejected notehead reverts
// to. Noteheads without a glyph hint revert to plain text.
func noteheadFallback(el *model.MusicalElement, table *glyph.Table) model.Category {
	if hint, ok := table.Lookup(el.Codepoint); ok {
		return hint.FallbackCategory()
	}
	return model.CategoryText
}
