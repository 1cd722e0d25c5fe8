package staff

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mbering/segno/model"
	"github.com/mbering/segno/svg"
)

// Config controls staff detection
type Config struct {
	// MinLineSpan is the minimum visual width for an element to count
	// as a staff line candidate. Elements spanning at least half the
	// document width qualify regardless of this floor.
	MinLineSpan float64

	// MaxHeightRatio bounds a candidate's height relative to its
	// width; anything taller is not a drawn line
	MaxHeightRatio float64

	// ToleranceFactor scales staff spacing into the occupancy margin
	// added above the top line and below the bottom line
	ToleranceFactor float64

	// FallbackSpacing stands in for staves with a single line, where
	// no gap can be measured
	FallbackSpacing float64

	// Logger receives per-staff decisions; nil means silent
	Logger *slog.Logger
}

// DefaultConfig returns the detection defaults
func DefaultConfig() Config {
	return Config{
		MinLineSpan:     500,
		MaxHeightRatio:  0.02,
		ToleranceFactor: 0.3,
		FallbackSpacing: 10.0,
	}
}

// Detector finds staves from the long horizontal lines of a document
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Detect clusters long horizontal lines into staves and assigns each
// an instrument name and occupancy range. A document without
// staff-like lines yields an empty layout, never an error.
func (d *Detector) Detect(elements []svg.Element, docWidth, docHeight float64) *Layout {
	ys, widths := d.candidateYs(elements, docWidth)
	if len(ys) == 0 {
		return &Layout{}
	}

	sort.Float64s(ys)
	sort.Float64s(widths)
	ys = dedupeYs(ys, 0.5)
	clusters := clusterYs(ys)

	layout := &Layout{
		Staves:   make([]Staff, 0, len(clusters)),
		LineSpan: stat.Quantile(0.5, stat.Empirical, widths, nil),
	}
	for i, cluster := range clusters {
		s := d.buildStaff(i+1, cluster)
		if d.config.Logger != nil {
			d.config.Logger.Debug("staff detected",
				"name", s.Name,
				"lines", len(s.LineYs),
				"spacing", s.Spacing)
		}
		layout.Staves = append(layout.Staves, s)
	}
	return layout
}

// candidateYs collects the vertical centers and widths of elements
// that read as staff lines: wide, nearly flat strokes in document
// space.
func (d *Detector) candidateYs(elements []svg.Element, docWidth float64) (ys, widths []float64) {
	for i := range elements {
		el := &elements[i]
		switch el.Kind {
		case svg.KindLine, svg.KindPolyline, svg.KindPath, svg.KindRect:
		default:
			continue
		}

		extent, ok := el.VisualExtent()
		if !ok {
			continue
		}
		if !d.isStaffLine(extent, docWidth) {
			continue
		}
		ys = append(ys, extent.Center().Y)
		widths = append(widths, extent.Width)
	}
	return ys, widths
}

func (d *Detector) isStaffLine(b model.BBox, docWidth float64) bool {
	long := b.Width >= d.config.MinLineSpan ||
		(docWidth > 0 && b.Width >= 0.5*docWidth)
	if !long {
		return false
	}
	return b.Height <= d.config.MaxHeightRatio*b.Width
}

// dedupeYs collapses near-identical positions that come from the same
// drawn line, replacing each run with its mean
func dedupeYs(sorted []float64, eps float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}

	out := make([]float64, 0, len(sorted))
	runStart := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i]-sorted[i-1] < eps {
			continue
		}
		out = append(out, stat.Mean(sorted[runStart:i], nil))
		runStart = i
	}
	return out
}

// clusterYs splits sorted line positions into staves. Lines within a
// staff sit at regular gaps; a gap well above the median gap separates
// one staff from the next.
func clusterYs(ys []float64) [][]float64 {
	if len(ys) <= 1 {
		return [][]float64{ys}
	}

	gaps := make([]float64, len(ys)-1)
	for i := 1; i < len(ys); i++ {
		gaps[i-1] = ys[i] - ys[i-1]
	}

	sortedGaps := append([]float64(nil), gaps...)
	sort.Float64s(sortedGaps)
	threshold := 2.0 * stat.Quantile(0.5, stat.Empirical, sortedGaps, nil)

	var clusters [][]float64
	start := 0
	for i, gap := range gaps {
		if gap > threshold {
			clusters = append(clusters, ys[start:i+1])
			start = i + 1
		}
	}
	return append(clusters, ys[start:])
}

func (d *Detector) buildStaff(n int, lineYs []float64) Staff {
	spacing := d.config.FallbackSpacing
	if len(lineYs) > 1 {
		gaps := make([]float64, len(lineYs)-1)
		for i := 1; i < len(lineYs); i++ {
			gaps[i-1] = lineYs[i] - lineYs[i-1]
		}
		spacing = stat.Mean(gaps, nil)
	}

	tol := d.config.ToleranceFactor * spacing
	return Staff{
		Name:    fmt.Sprintf("instrument-%d", n),
		LineYs:  lineYs,
		Spacing: spacing,
		Range: model.InstrumentRange{
			Top:    lineYs[0] - tol,
			Bottom: lineYs[len(lineYs)-1] + tol,
		},
	}
}
