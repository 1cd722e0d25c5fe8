package svg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mbering/segno/model"
)

func parseString(t *testing.T, input string) (*Document, []model.Warning) {
	t.Helper()
	doc, warnings, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc, warnings
}

func hasWarning(warnings []model.Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestParseBasicDocument(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="800" viewBox="0 0 1200 800">
		<polyline id="staff-1" points="0,500 1200,500" stroke="black"/>
		<text id="note-1" x="300" y="505" font-family="Leland" font-size="10">&#xE0A4;</text>
	</svg>`

	doc, warnings := parseString(t, input)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if doc.Width != 1200 || doc.Height != 800 {
		t.Errorf("dimensions = %vx%v, want 1200x800", doc.Width, doc.Height)
	}
	if doc.ViewBox == nil || *doc.ViewBox != model.NewBBox(0, 0, 1200, 800) {
		t.Errorf("ViewBox = %+v, want {0 0 1200 800}", doc.ViewBox)
	}
	if len(doc.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(doc.Elements))
	}

	line := doc.Elements[0]
	if line.Kind != KindPolyline || line.ID != "staff-1" {
		t.Errorf("element 0 = %s %q, want polyline staff-1", line.Kind, line.ID)
	}
	if len(line.Points) != 2 || line.Points[1] != (model.Point{X: 1200, Y: 500}) {
		t.Errorf("polyline points = %v", line.Points)
	}
	if line.Stroke != "black" {
		t.Errorf("Stroke = %q, want black", line.Stroke)
	}

	text := doc.Elements[1]
	if text.Kind != KindText || text.ID != "note-1" {
		t.Errorf("element 1 = %s %q, want text note-1", text.Kind, text.ID)
	}
	if text.Text != "\uE0A4" {
		t.Errorf("Text = %q, want notehead code point", text.Text)
	}
	if text.X != 300 || text.Y != 505 {
		t.Errorf("anchor = (%v, %v), want (300, 505)", text.X, text.Y)
	}
	if text.FontFamily != "Leland" || text.FontSize != 10 {
		t.Errorf("font = %q %v, want Leland 10", text.FontFamily, text.FontSize)
	}
	if !text.Matrix.IsIdentity() {
		t.Errorf("untransformed element has matrix %v", text.Matrix)
	}
}

func TestParseOrderPreserved(t *testing.T) {
	input := `<svg width="10" height="10">
		<text x="1" y="1">a</text>
		<line x1="0" y1="0" x2="1" y2="1"/>
		<rect x="0" y="0" width="2" height="2"/>
		<text x="2" y="2">b</text>
		<path d="M 0 0 L 1 1"/>
	</svg>`

	doc, _ := parseString(t, input)

	expected := []ElementKind{KindText, KindLine, KindRect, KindText, KindPath}
	if len(doc.Elements) != len(expected) {
		t.Fatalf("got %d elements, want %d", len(doc.Elements), len(expected))
	}
	for i, kind := range expected {
		if doc.Elements[i].Kind != kind {
			t.Errorf("element %d = %s, want %s", i, doc.Elements[i].Kind, kind)
		}
	}
}

func TestParseGroupTransformComposition(t *testing.T) {
	input := `<svg width="100" height="100">
		<g transform="translate(10,20)">
			<g transform="scale(2)">
				<line x1="1" y1="1" x2="2" y2="2"/>
			</g>
			<circle cx="0" cy="0" r="1"/>
		</g>
		<rect x="0" y="0" width="1" height="1"/>
	</svg>`

	doc, _ := parseString(t, input)
	if len(doc.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(doc.Elements))
	}

	// innermost element: scale then translate
	p := doc.Elements[0].Matrix.Transform(model.Point{X: 1, Y: 1})
	if p.Distance(model.Point{X: 12, Y: 22}) > 1e-9 {
		t.Errorf("composed matrix maps (1,1) to %v, want (12,22)", p)
	}

	// sibling after the inner group closes: translate only
	p = doc.Elements[1].Matrix.Transform(model.Point{X: 0, Y: 0})
	if p.Distance(model.Point{X: 10, Y: 20}) > 1e-9 {
		t.Errorf("group matrix maps origin to %v, want (10,20)", p)
	}

	// element after the outer group closes: identity
	if !doc.Elements[2].Matrix.IsIdentity() {
		t.Errorf("element outside groups has matrix %v", doc.Elements[2].Matrix)
	}
}

func TestParseElementTransformComposesWithGroup(t *testing.T) {
	input := `<svg width="100" height="100">
		<g transform="translate(10,20)">
			<line x1="0" y1="0" x2="1" y2="0" transform="translate(5,0)"/>
		</g>
	</svg>`

	doc, _ := parseString(t, input)

	p := doc.Elements[0].Matrix.Transform(model.Point{X: 0, Y: 0})
	if p.Distance(model.Point{X: 15, Y: 20}) > 1e-9 {
		t.Errorf("composed matrix maps origin to %v, want (15,20)", p)
	}
}

func TestParseMalformedAttributeDegrades(t *testing.T) {
	input := `<svg width="100" height="100">
		<line id="l1" x1="0" y1="0" x2="abc" y2="5"/>
	</svg>`

	doc, warnings := parseString(t, input)

	if len(doc.Elements) != 1 {
		t.Fatalf("damaged element was dropped")
	}
	el := doc.Elements[0]
	if el.X2 != 0 || el.Y2 != 5 {
		t.Errorf("degraded geometry = x2:%v y2:%v, want x2:0 y2:5", el.X2, el.Y2)
	}
	if !hasWarning(warnings, "bad-attribute") {
		t.Errorf("missing bad-attribute warning, got %v", warnings)
	}
}

func TestParseMalformedTransformDegrades(t *testing.T) {
	input := `<svg width="100" height="100">
		<g transform="translate(10,20)">
			<line x1="0" y1="0" x2="1" y2="1" transform="warp(9)"/>
		</g>
	</svg>`

	doc, warnings := parseString(t, input)

	// the element keeps the ambient transform
	p := doc.Elements[0].Matrix.Transform(model.Point{X: 0, Y: 0})
	if p.Distance(model.Point{X: 10, Y: 20}) > 1e-9 {
		t.Errorf("degraded matrix maps origin to %v, want (10,20)", p)
	}
	if !hasWarning(warnings, "bad-transform") {
		t.Errorf("missing bad-transform warning, got %v", warnings)
	}
}

func TestParseMalformedXML(t *testing.T) {
	_, _, err := Parse(strings.NewReader(`<svg width="10"><line x1="0"`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
}

func TestParseNonSVGRoot(t *testing.T) {
	_, _, err := Parse(strings.NewReader(`<html><body>hi</body></html>`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if !strings.Contains(pe.Error(), "svg") {
		t.Errorf("error %q does not name the expected root", pe.Error())
	}
	if !errors.Is(err, ErrNotSVG) {
		t.Errorf("error %v does not wrap ErrNotSVG", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if !errors.Is(err, ErrNotSVG) {
		t.Errorf("error %v does not wrap ErrNotSVG", err)
	}
}

func TestParseUnknownTagPreserved(t *testing.T) {
	input := `<svg width="10" height="10">
		<fermata id="f1" curve="up"/>
		<line x1="0" y1="0" x2="1" y2="1"/>
	</svg>`

	doc, _ := parseString(t, input)

	if len(doc.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(doc.Elements))
	}
	el := doc.Elements[0]
	if el.Kind != KindUnknown || el.Tag != "fermata" {
		t.Errorf("element 0 = %s <%s>, want unknown <fermata>", el.Kind, el.Tag)
	}
	if v, ok := el.Attr("curve"); !ok || v != "up" {
		t.Errorf("Attr(curve) = %q %v, want up", v, ok)
	}
}

func TestParseNumericCharacterReferences(t *testing.T) {
	input := `<svg width="10" height="10">
		<text x="0" y="0">&#xE050;</text>
		<text x="0" y="0">&#9837;</text>
	</svg>`

	doc, _ := parseString(t, input)

	if doc.Elements[0].Text != "\uE050" {
		t.Errorf("hex reference decoded to %q", doc.Elements[0].Text)
	}
	if doc.Elements[1].Text != "♭" {
		t.Errorf("decimal reference decoded to %q", doc.Elements[1].Text)
	}
}

func TestParseTextNestedSpans(t *testing.T) {
	input := `<svg width="10" height="10">
		<text x="5" y="9">mezzo <tspan font-style="italic">forte</tspan></text>
	</svg>`

	doc, _ := parseString(t, input)

	if len(doc.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(doc.Elements))
	}
	if doc.Elements[0].Text != "mezzo forte" {
		t.Errorf("Text = %q, want %q", doc.Elements[0].Text, "mezzo forte")
	}
}

func TestParseDefsSkipped(t *testing.T) {
	input := `<svg width="10" height="10">
		<defs>
			<line x1="0" y1="0" x2="1" y2="1"/>
			<g><text x="0" y="0">hidden</text></g>
		</defs>
		<line x1="2" y1="2" x2="3" y2="3"/>
	</svg>`

	doc, _ := parseString(t, input)

	if len(doc.Elements) != 1 {
		t.Fatalf("got %d elements, want 1 (defs content must not be emitted)", len(doc.Elements))
	}
	if doc.Elements[0].X1 != 2 {
		t.Errorf("kept the wrong line: %+v", doc.Elements[0])
	}
}

func TestParseImageCollected(t *testing.T) {
	input := `<svg width="10" height="10">
		<image id="title-block" x="1" y="2" width="8" height="3" href="data:image/png;base64,AAAA"/>
		<line x1="0" y1="0" x2="1" y2="1"/>
	</svg>`

	doc, _ := parseString(t, input)

	if len(doc.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(doc.Images))
	}
	img := doc.Images[0]
	if img.ID != "title-block" || img.Width != 8 || img.Height != 3 {
		t.Errorf("image = %+v", img)
	}
	if !strings.HasPrefix(img.Href, "data:image/png") {
		t.Errorf("Href = %q", img.Href)
	}
	if len(doc.Elements) != 1 {
		t.Errorf("images must not appear among elements, got %d", len(doc.Elements))
	}
}

func TestParseStyleOverridesAttributes(t *testing.T) {
	input := `<svg width="10" height="10">
		<line x1="0" y1="0" x2="1" y2="1" stroke="red" stroke-width="1" style="stroke: black; stroke-width: 2.5"/>
		<text x="0" y="0" font-size="8" style="font-size: 12px; font-family: Bravura">&#xE050;</text>
	</svg>`

	doc, _ := parseString(t, input)

	line := doc.Elements[0]
	if line.Stroke != "black" || line.StrokeWidth != 2.5 {
		t.Errorf("style override lost: stroke=%q width=%v", line.Stroke, line.StrokeWidth)
	}

	text := doc.Elements[1]
	if text.FontSize != 12 || text.FontFamily != "Bravura" {
		t.Errorf("style override lost: family=%q size=%v", text.FontFamily, text.FontSize)
	}
}

func TestParseViewBoxOnlyDimensions(t *testing.T) {
	doc, _ := parseString(t, `<svg viewBox="0 0 210 297"></svg>`)

	if doc.Width != 210 || doc.Height != 297 {
		t.Errorf("dimensions = %vx%v, want 210x297 from viewBox", doc.Width, doc.Height)
	}
}

func TestParseUnitSuffixes(t *testing.T) {
	doc, _ := parseString(t, `<svg width="210mm" height="297mm"><text x="0" y="0" font-size="9.17px">x</text></svg>`)

	if doc.Width != 210 || doc.Height != 297 {
		t.Errorf("dimensions = %vx%v, want 210x297", doc.Width, doc.Height)
	}
	if doc.Elements[0].FontSize != 9.17 {
		t.Errorf("FontSize = %v, want 9.17", doc.Elements[0].FontSize)
	}
}

func TestParseLatin1Encoding(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><svg width="10" height="10"><text x="0" y="0">caf`)
	raw = append(raw, 0xE9) // é in Latin-1
	raw = append(raw, []byte(`</text></svg>`)...)

	doc, _, err := Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Elements[0].Text != "café" {
		t.Errorf("Text = %q, want café", doc.Elements[0].Text)
	}
}

func TestParseRootAttrsPreserved(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10" height="10" class="score"></svg>`

	doc, _ := parseString(t, input)

	want := map[string]string{
		"xmlns":       "http://www.w3.org/2000/svg",
		"xmlns:xlink": "http://www.w3.org/1999/xlink",
		"class":       "score",
	}
	found := map[string]string{}
	for _, a := range doc.RootAttrs {
		found[a.Name] = a.Value
	}
	for name, value := range want {
		if found[name] != value {
			t.Errorf("root attr %s = %q, want %q", name, found[name], value)
		}
	}
}
