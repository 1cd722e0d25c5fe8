package coords

import (
	"math"
	"testing"

	"github.com/mbering/segno/model"
)

func makeElement(id string, m model.Matrix) model.MusicalElement {
	return model.MusicalElement{
		ID:        id,
		Category:  model.CategoryNotehead,
		Matrix:    m,
		LocalBBox: model.NewBBox(0, 0, 10, 20),
	}
}

func bboxClose(t *testing.T, got *model.BBox, x, y, w, h float64) {
	t.Helper()
	if got == nil {
		t.Fatal("VisualBBox is nil")
	}
	if math.Abs(got.X-x) > 1e-9 || math.Abs(got.Y-y) > 1e-9 ||
		math.Abs(got.Width-w) > 1e-9 || math.Abs(got.Height-h) > 1e-9 {
		t.Errorf("VisualBBox = %+v, want {%v %v %v %v}", *got, x, y, w, h)
	}
}

func TestExtractTranslatedElement(t *testing.T) {
	els := []model.MusicalElement{makeElement("n1", model.Translate(5, 7))}

	out, report := NewExtractor().Extract(els)

	bboxClose(t, out[0].VisualBBox, 5, 7, 10, 20)
	if !out[0].Verified {
		t.Error("element not verified")
	}
	if report.Verified != 1 || len(report.Unverifiable) != 0 {
		t.Errorf("report = %+v, want 1 verified, none unverifiable", report)
	}
	if report.MaxDeviation > 1e-9 {
		t.Errorf("MaxDeviation = %v, want ~0", report.MaxDeviation)
	}
}

func TestExtractRotatedElementHull(t *testing.T) {
	// a quarter turn swaps the box sides
	els := []model.MusicalElement{makeElement("n1", model.Rotate(math.Pi / 2))}

	out, _ := NewExtractor().Extract(els)

	bboxClose(t, out[0].VisualBBox, -20, 0, 20, 10)
}

func TestExtractSingularTransform(t *testing.T) {
	els := []model.MusicalElement{
		makeElement("n1", model.Matrix{0, 0, 0, 0, 10, 10}),
	}

	out, report := NewExtractor().Extract(els)

	// the box is still computed, collapsed to the translation point
	bboxClose(t, out[0].VisualBBox, 10, 10, 0, 0)
	if out[0].Verified {
		t.Error("singular element marked verified")
	}
	if report.Verified != 0 {
		t.Errorf("Verified = %d, want 0", report.Verified)
	}
	if len(report.Unverifiable) != 1 || report.Unverifiable[0] != "n1" {
		t.Errorf("Unverifiable = %v, want [n1]", report.Unverifiable)
	}
}

func TestExtractAllSingularReportsZeroAggregates(t *testing.T) {
	els := []model.MusicalElement{
		makeElement("n1", model.Matrix{0, 0, 0, 0, 10, 10}),
		makeElement("n2", model.Matrix{1, 0, 1, 0, 0, 0}),
	}

	_, report := NewExtractor().Extract(els)

	if report.Verified != 0 {
		t.Errorf("Verified = %d, want 0", report.Verified)
	}
	if len(report.Unverifiable) != 2 {
		t.Errorf("got %d unverifiable, want 2", len(report.Unverifiable))
	}
	if report.MaxDeviation != 0 || report.MeanDeviation != 0 {
		t.Errorf("deviations = %v/%v, want 0/0",
			report.MaxDeviation, report.MeanDeviation)
	}
}

func TestExtractMixedBatch(t *testing.T) {
	els := []model.MusicalElement{
		makeElement("good", model.Translate(3, 4)),
		makeElement("bad", model.Matrix{0, 0, 0, 0, 1, 1}),
		makeElement("rotated", model.Rotate(0.3)),
	}

	out, report := NewExtractor().Extract(els)

	if report.Verified != 2 {
		t.Errorf("Verified = %d, want 2", report.Verified)
	}
	if len(report.Unverifiable) != 1 || report.Unverifiable[0] != "bad" {
		t.Errorf("Unverifiable = %v, want [bad]", report.Unverifiable)
	}
	for _, el := range out {
		if el.VisualBBox == nil {
			t.Errorf("%s has no VisualBBox", el.ID)
		}
	}
	// aggregates come from the two clean transforms only
	if report.MaxDeviation > 1e-9 || report.MeanDeviation > report.MaxDeviation {
		t.Errorf("deviations = %v/%v", report.MaxDeviation, report.MeanDeviation)
	}
}

func TestExtractCustomEpsilon(t *testing.T) {
	// a tiny but honest scale: singular under the default threshold,
	// fine under a looser one
	el := makeElement("n1", model.Scale(1e-5, 1e-5))

	_, strict := NewExtractor().Extract([]model.MusicalElement{el})
	if strict.Verified != 0 {
		t.Errorf("default epsilon: Verified = %d, want 0", strict.Verified)
	}

	loose, relaxed := NewExtractorWithConfig(Config{Epsilon: 1e-12}).
		Extract([]model.MusicalElement{el})
	if relaxed.Verified != 1 {
		t.Errorf("epsilon 1e-12: Verified = %d, want 1", relaxed.Verified)
	}
	if !loose[0].Verified {
		t.Error("element not verified under relaxed epsilon")
	}
}

func TestExtractLeavesInputUntouched(t *testing.T) {
	els := []model.MusicalElement{makeElement("n1", model.Translate(5, 7))}

	NewExtractor().Extract(els)

	if els[0].VisualBBox != nil || els[0].Verified {
		t.Error("input slice mutated")
	}
}

func TestExtractEmptyInput(t *testing.T) {
	out, report := NewExtractor().Extract(nil)

	if len(out) != 0 {
		t.Errorf("got %d elements, want 0", len(out))
	}
	if report.Verified != 0 || report.MaxDeviation != 0 {
		t.Errorf("report = %+v, want zero values", report)
	}
}
