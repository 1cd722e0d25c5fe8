package coords

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mbering/segno/model"
)

// Config holds configuration for coordinate extraction
type Config struct {
	// Epsilon is the determinant magnitude at or below which a
	// transform counts as singular and its element as unverifiable.
	// Default: 1e-9
	Epsilon float64

	// Logger receives verification failures; nil means silent
	Logger *slog.Logger
}

// DefaultConfig returns the extraction defaults
func DefaultConfig() Config {
	return Config{Epsilon: 1e-9}
}

// Report summarizes a verification pass over one document
type Report struct {
	// Verified counts the elements whose transforms inverted cleanly
	Verified int `json:"verified"`

	// Unverifiable lists, in document order, the IDs of elements
	// whose transforms are singular
	Unverifiable []string `json:"unverifiable,omitempty"`

	// MaxDeviation and MeanDeviation measure the corner round-trip
	// error across verified elements. Both stay zero when nothing
	// could be verified.
	MaxDeviation  float64 `json:"max_deviation"`
	MeanDeviation float64 `json:"mean_deviation"`
}

// Extractor resolves the document-space position of classified
// elements and verifies each placement by round-tripping the local
// corners through the transform and its inverse
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor with default configuration
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration
func NewExtractorWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// Extract computes every element's visual bounding box as the hull of
// its four transformed corners, then verifies the elements whose
// transforms invert. A singular transform still yields a box, a
// collapsed one, but the element is marked unverifiable and excluded
// from the report's deviation aggregates. The input slice is not
// modified.
func (e *Extractor) Extract(elements []model.MusicalElement) ([]model.MusicalElement, *Report) {
	out := append([]model.MusicalElement(nil), elements...)
	report := &Report{}

	var deviations []float64
	for i := range out {
		el := &out[i]
		visual := el.Matrix.TransformBBox(el.LocalBBox)
		el.VisualBBox = &visual

		inv, ok := el.Matrix.Invert()
		if !ok || math.Abs(el.Matrix.Det()) <= e.config.Epsilon {
			el.Verified = false
			report.Unverifiable = append(report.Unverifiable, el.ID)
			if e.config.Logger != nil {
				e.config.Logger.Debug("transform not invertible",
					"id", el.ID,
					"det", el.Matrix.Det())
			}
			continue
		}

		el.Verified = true
		report.Verified++
		deviations = append(deviations, cornerDeviation(el.Matrix, inv, el.LocalBBox))
	}

	if len(deviations) > 0 {
		report.MaxDeviation = floats.Max(deviations)
		report.MeanDeviation = stat.Mean(deviations, nil)
	}
	return out, report
}

// cornerDeviation maps the local corners forward and back again,
// returning the largest displacement from the originals
func cornerDeviation(m, inv model.Matrix, local model.BBox) float64 {
	corners := [4]model.Point{
		{X: local.X, Y: local.Y},
		{X: local.X + local.Width, Y: local.Y},
		{X: local.X, Y: local.Y + local.Height},
		{X: local.X + local.Width, Y: local.Y + local.Height},
	}

	var worst float64
	for _, p := range corners {
		back := inv.Transform(m.Transform(p))
		if d := p.Distance(back); d > worst {
			worst = d
		}
	}
	return worst
}
