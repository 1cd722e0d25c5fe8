package reconstruct

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mbering/segno/model"
	"github.com/mbering/segno/svg"
)

// ErrNoDocument is returned when the builder has no source document
var ErrNoDocument = errors.New("reconstruct: no source document")

// Options controls the shape of the rebuilt document
type Options struct {
	// ViewBox overrides the computed view window when set
	ViewBox *model.BBox

	// Padding grows the union of the selected elements' boxes on all
	// sides when the window is computed.
	// Default: 10
	Padding float64
}

// DefaultOptions returns the reconstruction defaults
func DefaultOptions() Options {
	return Options{Padding: 10}
}

// Builder re-emits selected elements of a parsed document as a new,
// standalone document
type Builder struct {
	doc *svg.Document
}

// NewBuilder creates a builder over the given source document
func NewBuilder(doc *svg.Document) *Builder {
	return &Builder{doc: doc}
}

// Build renders the selected elements into a complete document. The
// view window is opts.ViewBox when set, otherwise the union of the
// elements' visual boxes grown by opts.Padding, otherwise the full
// source page. Elements that resolve to no drawable source markup are
// omitted. Output is deterministic: the same selection always
// produces byte-identical bytes.
func (b *Builder) Build(elements []model.MusicalElement, opts Options) ([]byte, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}

	window := b.window(elements, opts)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.writeRoot(&buf, window)
	for i := range elements {
		b.writeElement(&buf, &elements[i])
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// window resolves the output view box
func (b *Builder) window(elements []model.MusicalElement, opts Options) model.BBox {
	if opts.ViewBox != nil {
		return *opts.ViewBox
	}

	var union model.BBox
	found := false
	for i := range elements {
		box := visualBox(&elements[i])
		if !found {
			union, found = box, true
			continue
		}
		union = union.Union(box)
	}
	if !found {
		return model.NewBBox(0, 0, b.doc.Width, b.doc.Height)
	}
	return union.Expand(opts.Padding)
}

// visualBox prefers the verified box and falls back to transforming
// the local one
func visualBox(el *model.MusicalElement) model.BBox {
	if el.VisualBBox != nil {
		return *el.VisualBBox
	}
	return el.Matrix.TransformBBox(el.LocalBBox)
}

func (b *Builder) writeRoot(buf *bytes.Buffer, window model.BBox) {
	buf.WriteString("<svg")
	for _, a := range b.doc.RootAttrs {
		switch a.Name {
		case "width", "height", "viewBox":
			continue
		}
		writeAttr(buf, a.Name, a.Value)
	}
	writeAttr(buf, "width", fnum(window.Width))
	writeAttr(buf, "height", fnum(window.Height))
	writeAttr(buf, "viewBox", fnum(window.X)+" "+fnum(window.Y)+" "+
		fnum(window.Width)+" "+fnum(window.Height))
	buf.WriteString(">\n")
}

func (b *Builder) writeElement(buf *bytes.Buffer, el *model.MusicalElement) {
	if el.SourceIndex < 0 || el.SourceIndex >= len(b.doc.Elements) {
		return
	}
	src := &b.doc.Elements[el.SourceIndex]

	switch src.Kind {
	case svg.KindText:
		b.writeText(buf, src)
	case svg.KindLine:
		openTag(buf, "line", src)
		writeAttr(buf, "x1", fnum(src.X1))
		writeAttr(buf, "y1", fnum(src.Y1))
		writeAttr(buf, "x2", fnum(src.X2))
		writeAttr(buf, "y2", fnum(src.Y2))
		closeTag(buf, src)
	case svg.KindPolyline, svg.KindPolygon:
		openTag(buf, src.Kind.String(), src)
		writeAttr(buf, "points", formatPoints(src.Points))
		closeTag(buf, src)
	case svg.KindPath:
		openTag(buf, "path", src)
		writeAttr(buf, "d", src.PathData)
		closeTag(buf, src)
	case svg.KindRect:
		openTag(buf, "rect", src)
		writeAttr(buf, "x", fnum(src.X))
		writeAttr(buf, "y", fnum(src.Y))
		writeAttr(buf, "width", fnum(src.Width))
		writeAttr(buf, "height", fnum(src.Height))
		closeTag(buf, src)
	case svg.KindCircle:
		openTag(buf, "circle", src)
		writeAttr(buf, "cx", fnum(src.CX))
		writeAttr(buf, "cy", fnum(src.CY))
		writeAttr(buf, "r", fnum(src.RX))
		closeTag(buf, src)
	case svg.KindEllipse:
		openTag(buf, "ellipse", src)
		writeAttr(buf, "cx", fnum(src.CX))
		writeAttr(buf, "cy", fnum(src.CY))
		writeAttr(buf, "rx", fnum(src.RX))
		writeAttr(buf, "ry", fnum(src.RY))
		closeTag(buf, src)
	default:
		b.writeUnknown(buf, src)
	}
}

func openTag(buf *bytes.Buffer, tag string, src *svg.Element) {
	buf.WriteString("  <" + tag)
	if src.ID != "" {
		writeAttr(buf, "id", src.ID)
	}
}

// closeTag appends the shared trailing attributes and closes the tag
func closeTag(buf *bytes.Buffer, src *svg.Element) {
	writeStyle(buf, src)
	writeTransform(buf, src.Matrix)
	buf.WriteString("/>\n")
}

// writeText re-emits text with every rune as a numeric character
// reference, so the output never depends on the encoding of the
// source document
func (b *Builder) writeText(buf *bytes.Buffer, src *svg.Element) {
	openTag(buf, "text", src)
	writeAttr(buf, "x", fnum(src.X))
	writeAttr(buf, "y", fnum(src.Y))
	if src.FontFamily != "" {
		writeAttr(buf, "font-family", src.FontFamily)
	}
	if src.FontSize > 0 {
		writeAttr(buf, "font-size", fnum(src.FontSize))
	}
	writeTransform(buf, src.Matrix)
	buf.WriteString(">")
	for _, r := range src.Text {
		fmt.Fprintf(buf, "&#x%04X;", r)
	}
	buf.WriteString("</text>\n")
}

// writeUnknown re-emits a preserved foreign element as an empty tag
// with its source attributes. Unknowns with nothing preserved are
// dropped.
func (b *Builder) writeUnknown(buf *bytes.Buffer, src *svg.Element) {
	if src.Tag == "" {
		return
	}
	buf.WriteString("  <" + src.Tag)
	for _, a := range src.Raw {
		if a.Name == "transform" {
			continue
		}
		writeAttr(buf, a.Name, a.Value)
	}
	writeTransform(buf, src.Matrix)
	buf.WriteString("/>\n")
}

func writeStyle(buf *bytes.Buffer, src *svg.Element) {
	if src.Fill != "" {
		writeAttr(buf, "fill", src.Fill)
	}
	if src.Stroke != "" {
		writeAttr(buf, "stroke", src.Stroke)
	}
	if src.StrokeWidth > 0 {
		writeAttr(buf, "stroke-width", fnum(src.StrokeWidth))
	}
}

func writeTransform(buf *bytes.Buffer, m model.Matrix) {
	if m.IsIdentity() {
		return
	}
	writeAttr(buf, "transform", "matrix("+
		fnum(m[0])+","+fnum(m[1])+","+fnum(m[2])+","+
		fnum(m[3])+","+fnum(m[4])+","+fnum(m[5])+")")
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" " + name + `="` + attrEscaper.Replace(value) + `"`)
}

func formatPoints(pts []model.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fnum(p.X) + "," + fnum(p.Y))
	}
	return sb.String()
}

// fnum formats with the shortest representation that parses back to
// the same value
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
