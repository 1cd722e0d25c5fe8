package staff

import (
	"math"

	"github.com/mbering/segno/model"
)

// Staff is one detected staff: a cluster of horizontal lines with
// regular spacing, claimed by one instrument.
type Staff struct {
	Name    string
	LineYs  []float64 // ascending document-space positions
	Spacing float64   // mean gap between adjacent lines
	Range   model.InstrumentRange
}

// Height returns the vertical span of the staff lines themselves
func (s Staff) Height() float64 {
	if len(s.LineYs) == 0 {
		return 0
	}
	return s.LineYs[len(s.LineYs)-1] - s.LineYs[0]
}

// Layout is the result of staff detection
type Layout struct {
	Staves []Staff // ascending by vertical position

	// LineSpan is the median visual width of the accepted staff line
	// candidates, zero when there are none. Later stages use it to
	// judge whether a stroke is staff-line sized.
	LineSpan float64
}

// Ranges maps instrument names to their occupancy ranges.
// The map is never nil.
func (l *Layout) Ranges() map[string]model.InstrumentRange {
	ranges := make(map[string]model.InstrumentRange, len(l.Staves))
	for _, s := range l.Staves {
		ranges[s.Name] = s.Range
	}
	return ranges
}

// InstrumentAt returns the first staff, top to bottom, whose occupancy
// range contains y. Overlapping ranges therefore resolve to the upper
// staff.
func (l *Layout) InstrumentAt(y float64) (string, bool) {
	for _, s := range l.Staves {
		if s.Range.Contains(y) {
			return s.Name, true
		}
	}
	return "", false
}

// NearestLine returns the distance from y to the closest detected
// staff line and the spacing of the staff that owns it. The boolean is
// false when the layout has no staves.
func (l *Layout) NearestLine(y float64) (dist, spacing float64, ok bool) {
	best := math.Inf(1)
	bestSpacing := 0.0
	for _, s := range l.Staves {
		for _, lineY := range s.LineYs {
			if d := math.Abs(y - lineY); d < best {
				best = d
				bestSpacing = s.Spacing
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0, 0, false
	}
	return best, bestSpacing, true
}
