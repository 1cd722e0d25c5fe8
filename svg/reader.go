package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/mbering/segno/model"
)

// ErrNotSVG reports that a document has no svg root. The *ParseError
// returned for such documents wraps it, so callers can distinguish
// wrong-format input from broken markup with errors.Is.
var ErrNotSVG = errors.New("not a score document")

// ParseError reports a structurally malformed document. Recoverable
// per-element problems never produce one; those surface as warnings.
type ParseError struct {
	Line   int
	Offset int64
	Msg    string
	Err    error // wrapped sentinel, when one applies
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a score document from r. Elements are returned in
// document order with their composed transforms. Warnings describe
// elements kept despite malformed attributes; the error is non-nil
// only when the document itself cannot be read.
func Parse(r io.Reader) (*Document, []model.Warning, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	p := &reader{
		decoder: decoder,
		doc:     &Document{},
		stack:   []model.Matrix{model.Identity()},
	}
	if err := p.run(); err != nil {
		return nil, p.warnings, err
	}
	return p.doc, p.warnings, nil
}

// ParseFile reads a score document from disk
func ParseFile(path string) (*Document, []model.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

type reader struct {
	decoder  *xml.Decoder
	doc      *Document
	warnings []model.Warning
	stack    []model.Matrix
}

func (p *reader) run() error {
	seenRoot := false

	for {
		tok, err := p.decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p.syntaxError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local

			if !seenRoot {
				if name != "svg" {
					return &ParseError{
						Offset: p.decoder.InputOffset(),
						Msg:    fmt.Sprintf("root element is <%s>, want <svg>", name),
						Err:    ErrNotSVG,
					}
				}
				seenRoot = true
				p.root(t)
				p.push(p.localMatrix(t))
				continue
			}

			switch name {
			case "g", "svg", "a", "switch":
				p.push(p.localMatrix(t))

			case "defs", "symbol", "clipPath", "mask", "marker", "pattern",
				"linearGradient", "radialGradient", "filter", "style",
				"metadata", "title", "desc":
				// definitions and metadata are not drawn content
				if err := p.decoder.Skip(); err != nil {
					return p.syntaxError(err)
				}

			case "text":
				if err := p.text(t); err != nil {
					return err
				}

			case "line", "polyline", "polygon", "path", "rect", "circle", "ellipse":
				p.shape(t)
				if err := p.decoder.Skip(); err != nil {
					return p.syntaxError(err)
				}

			case "image":
				p.image(t)
				if err := p.decoder.Skip(); err != nil {
					return p.syntaxError(err)
				}

			default:
				p.unknown(t)
				if err := p.decoder.Skip(); err != nil {
					return p.syntaxError(err)
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "g", "svg", "a", "switch":
				p.pop()
			}
		}
	}

	if !seenRoot {
		return &ParseError{Msg: "no svg root element", Err: ErrNotSVG}
	}
	return nil
}

// root records the document dimensions and preserves the raw root
// attributes for reconstruction.
func (p *reader) root(t xml.StartElement) {
	p.doc.RootAttrs = rawAttrs(t.Attr)

	if v, ok := findAttr(t.Attr, "width"); ok {
		if f, err := parseLength(v); err == nil {
			p.doc.Width = f
		} else {
			p.warn("bad-attribute", fmt.Sprintf("width=%q on <svg>", v), "")
		}
	}
	if v, ok := findAttr(t.Attr, "height"); ok {
		if f, err := parseLength(v); err == nil {
			p.doc.Height = f
		} else {
			p.warn("bad-attribute", fmt.Sprintf("height=%q on <svg>", v), "")
		}
	}

	if v, ok := findAttr(t.Attr, "viewBox"); ok {
		nums, err := parseNumberList(v)
		if err != nil || len(nums) != 4 {
			p.warn("bad-viewbox", fmt.Sprintf("viewBox=%q", v), "")
		} else {
			vb := model.NewBBox(nums[0], nums[1], nums[2], nums[3])
			p.doc.ViewBox = &vb
		}
	}

	// documents sized only by viewBox inherit its dimensions
	if p.doc.Width == 0 && p.doc.ViewBox != nil {
		p.doc.Width = p.doc.ViewBox.Width
	}
	if p.doc.Height == 0 && p.doc.ViewBox != nil {
		p.doc.Height = p.doc.ViewBox.Height
	}
}

func (p *reader) shape(t xml.StartElement) {
	id := attrValue(t.Attr, "id")
	el := Element{
		ID:     id,
		Tag:    t.Name.Local,
		Matrix: p.localMatrix(t),
		Raw:    rawAttrs(t.Attr),
	}

	switch t.Name.Local {
	case "line":
		el.Kind = KindLine
		el.X1 = p.floatAttr(t, "x1", id)
		el.Y1 = p.floatAttr(t, "y1", id)
		el.X2 = p.floatAttr(t, "x2", id)
		el.Y2 = p.floatAttr(t, "y2", id)

	case "polyline", "polygon":
		el.Kind = KindPolyline
		if t.Name.Local == "polygon" {
			el.Kind = KindPolygon
		}
		if v, ok := findAttr(t.Attr, "points"); ok {
			pts, err := ParsePoints(v)
			if err != nil {
				p.warn("bad-points", err.Error(), id)
			} else {
				el.Points = pts
			}
		}

	case "path":
		el.Kind = KindPath
		el.PathData = attrValue(t.Attr, "d")

	case "rect":
		el.Kind = KindRect
		el.X = p.floatAttr(t, "x", id)
		el.Y = p.floatAttr(t, "y", id)
		el.Width = p.floatAttr(t, "width", id)
		el.Height = p.floatAttr(t, "height", id)

	case "circle":
		el.Kind = KindCircle
		el.CX = p.floatAttr(t, "cx", id)
		el.CY = p.floatAttr(t, "cy", id)
		r := p.floatAttr(t, "r", id)
		el.RX, el.RY = r, r

	case "ellipse":
		el.Kind = KindEllipse
		el.CX = p.floatAttr(t, "cx", id)
		el.CY = p.floatAttr(t, "cy", id)
		el.RX = p.floatAttr(t, "rx", id)
		el.RY = p.floatAttr(t, "ry", id)
	}

	p.presentation(&el, t)
	p.doc.Elements = append(p.doc.Elements, el)
}

// text captures a text element. Character data inside nested spans
// belongs to the element, so the capture tracks subtree depth instead
// of stopping at the first child tag.
func (p *reader) text(t xml.StartElement) error {
	id := attrValue(t.Attr, "id")
	el := Element{
		ID:     id,
		Kind:   KindText,
		Tag:    "text",
		Matrix: p.localMatrix(t),
		Raw:    rawAttrs(t.Attr),
	}
	el.X = p.firstFloatAttr(t, "x", id)
	el.Y = p.firstFloatAttr(t, "y", id)
	p.presentation(&el, t)

	var sb strings.Builder
	depth := 0
	for {
		tok, err := p.decoder.Token()
		if err != nil {
			return p.syntaxError(err)
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				el.Text = sb.String()
				p.doc.Elements = append(p.doc.Elements, el)
				return nil
			}
			depth--
		case xml.CharData:
			sb.Write(tt)
		}
	}
}

func (p *reader) image(t xml.StartElement) {
	id := attrValue(t.Attr, "id")
	p.doc.Images = append(p.doc.Images, EmbeddedImage{
		ID:     id,
		Href:   attrValue(t.Attr, "href"),
		X:      p.floatAttr(t, "x", id),
		Y:      p.floatAttr(t, "y", id),
		Width:  p.floatAttr(t, "width", id),
		Height: p.floatAttr(t, "height", id),
		Matrix: p.localMatrix(t),
	})
}

func (p *reader) unknown(t xml.StartElement) {
	p.doc.Elements = append(p.doc.Elements, Element{
		ID:     attrValue(t.Attr, "id"),
		Kind:   KindUnknown,
		Tag:    t.Name.Local,
		Matrix: p.localMatrix(t),
		Raw:    rawAttrs(t.Attr),
	})
}

// presentation reads stroke, fill, and font attributes, then lets
// inline style declarations override them the way a renderer would.
func (p *reader) presentation(el *Element, t xml.StartElement) {
	el.Stroke = attrValue(t.Attr, "stroke")
	el.Fill = attrValue(t.Attr, "fill")
	el.FontFamily = attrValue(t.Attr, "font-family")

	if v, ok := findAttr(t.Attr, "stroke-width"); ok {
		if f, err := parseLength(v); err == nil {
			el.StrokeWidth = f
		} else {
			p.warn("bad-attribute", fmt.Sprintf("stroke-width=%q on <%s>", v, t.Name.Local), el.ID)
		}
	}
	if v, ok := findAttr(t.Attr, "font-size"); ok {
		if f, err := parseLength(v); err == nil {
			el.FontSize = f
		} else {
			p.warn("bad-attribute", fmt.Sprintf("font-size=%q on <%s>", v, t.Name.Local), el.ID)
		}
	}

	if css, ok := findAttr(t.Attr, "style"); ok {
		applyStyle(el, css)
	}
}

func applyStyle(el *Element, css string) {
	for _, decl := range strings.Split(css, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(name) {
		case "stroke":
			el.Stroke = value
		case "fill":
			el.Fill = value
		case "stroke-width":
			if f, err := parseLength(value); err == nil {
				el.StrokeWidth = f
			}
		case "font-family":
			el.FontFamily = value
		case "font-size":
			if f, err := parseLength(value); err == nil {
				el.FontSize = f
			}
		}
	}
}

// localMatrix composes an element's own transform onto the ambient
// transform. A malformed transform degrades to the ambient one.
func (p *reader) localMatrix(t xml.StartElement) model.Matrix {
	parent := p.top()

	v, ok := findAttr(t.Attr, "transform")
	if !ok || strings.TrimSpace(v) == "" {
		return parent
	}

	local, err := ParseTransform(v)
	if err != nil {
		p.warn("bad-transform", err.Error(), attrValue(t.Attr, "id"))
		return parent
	}
	return local.Multiply(parent)
}

// floatAttr reads a numeric attribute, tolerating unit suffixes.
// Malformed values degrade to zero with a warning.
func (p *reader) floatAttr(t xml.StartElement, name, id string) float64 {
	v, ok := findAttr(t.Attr, name)
	if !ok {
		return 0
	}
	f, err := parseLength(v)
	if err != nil {
		p.warn("bad-attribute", fmt.Sprintf("%s=%q on <%s>", name, v, t.Name.Local), id)
		return 0
	}
	return f
}

// firstFloatAttr reads the leading value of a possibly list-valued
// attribute, such as a text element's per-glyph x list
func (p *reader) firstFloatAttr(t xml.StartElement, name, id string) float64 {
	v, ok := findAttr(t.Attr, name)
	if !ok {
		return 0
	}

	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return 0
	}

	f, err := parseLength(fields[0])
	if err != nil {
		p.warn("bad-attribute", fmt.Sprintf("%s=%q on <%s>", name, v, t.Name.Local), id)
		return 0
	}
	return f
}

func (p *reader) warn(code, msg, elementID string) {
	p.warnings = append(p.warnings, model.Warning{Code: code, Message: msg, Element: elementID})
}

func (p *reader) push(m model.Matrix) {
	p.stack = append(p.stack, m)
}

func (p *reader) pop() {
	if len(p.stack) > 1 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *reader) top() model.Matrix {
	return p.stack[len(p.stack)-1]
}

func (p *reader) syntaxError(err error) error {
	pe := &ParseError{Offset: p.decoder.InputOffset(), Msg: err.Error()}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		pe.Line = syn.Line
	}
	return pe
}

// parseLength parses a number with an optional unit suffix (px, pt,
// mm, %, em). The numeric value is returned unscaled.
func parseLength(v string) (float64, error) {
	s := strings.TrimSpace(v)
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad length %q", v)
	}
	return f, nil
}

// charsetReader decodes documents whose prolog declares a non-UTF-8
// encoding
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}

func findAttr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attrValue(attrs []xml.Attr, name string) string {
	v, _ := findAttr(attrs, name)
	return v
}

func rawAttrs(attrs []xml.Attr) []Attr {
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: qualifiedName(a.Name), Value: a.Value})
	}
	return out
}

// qualifiedName restores the source spelling of namespaced attribute
// names. The decoder expands prefixes to namespace URLs, so the common
// ones are mapped back; anything else keeps its local name.
func qualifiedName(n xml.Name) string {
	switch n.Space {
	case "":
		return n.Local
	case "xmlns":
		return "xmlns:" + n.Local
	case "http://www.w3.org/1999/xlink":
		return "xlink:" + n.Local
	case "http://www.w3.org/XML/1998/namespace":
		return "xml:" + n.Local
	default:
		return n.Local
	}
}
