package svg

import "github.com/mbering/segno/model"

// ElementKind identifies the markup tag an element came from
type ElementKind int

const (
	KindUnknown ElementKind = iota
	KindText
	KindLine
	KindPolyline
	KindPolygon
	KindPath
	KindRect
	KindCircle
	KindEllipse
)

func (k ElementKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLine:
		return "line"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindPath:
		return "path"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	default:
		return "unknown"
	}
}

// Attr is one preserved source attribute
type Attr struct {
	Name  string
	Value string
}

// Element is one drawable element from the source document. Geometry
// fields are populated according to Kind; Raw always carries the
// source attributes in document order.
type Element struct {
	ID     string
	Kind   ElementKind
	Tag    string       // source tag name, meaningful for KindUnknown
	Matrix model.Matrix // composed transform, identity when untransformed

	// Text content (KindText). X and Y are the anchor point.
	Text       string
	FontFamily string
	FontSize   float64

	// Geometry
	X, Y           float64       // text anchor or rect origin
	X1, Y1, X2, Y2 float64       // line endpoints
	Points         []model.Point // polyline and polygon vertices
	PathData       string        // path d attribute, verbatim
	CX, CY         float64       // circle and ellipse center
	RX, RY         float64       // radii; circles carry r in both

	Width, Height float64 // rect dimensions

	// Presentation
	Stroke      string
	StrokeWidth float64
	Fill        string

	Raw []Attr
}

// LocalBBox returns the untransformed bounds of the element's
// geometry. The boolean is false when the element has no usable
// geometry: text (extent depends on font metrics), unknowns, and
// empty point lists.
//
// Path bounds come from the coordinate stream of the d attribute,
// which is exact for move, line, and curve control points but ignores
// arc parameters.
func (e *Element) LocalBBox() (model.BBox, bool) {
	switch e.Kind {
	case KindLine:
		p1 := model.Point{X: e.X1, Y: e.Y1}
		p2 := model.Point{X: e.X2, Y: e.Y2}
		return model.NewBBoxFromPoints(p1, p2), true
	case KindPolyline, KindPolygon:
		if len(e.Points) == 0 {
			return model.BBox{}, false
		}
		return model.BBoxOfPoints(e.Points), true
	case KindRect:
		return model.NewBBox(e.X, e.Y, e.Width, e.Height), true
	case KindCircle, KindEllipse:
		if e.RX == 0 && e.RY == 0 {
			return model.BBox{}, false
		}
		return model.NewBBox(e.CX-e.RX, e.CY-e.RY, 2*e.RX, 2*e.RY), true
	case KindPath:
		pts := pathCoordinates(e.PathData)
		if len(pts) == 0 {
			return model.BBox{}, false
		}
		return model.BBoxOfPoints(pts), true
	default:
		return model.BBox{}, false
	}
}

// VisualExtent returns the element's geometry pushed through its
// composed transform. The boolean follows LocalBBox.
func (e *Element) VisualExtent() (model.BBox, bool) {
	local, ok := e.LocalBBox()
	if !ok {
		return model.BBox{}, false
	}
	return e.Matrix.TransformBBox(local), true
}

// Attr returns the value of a preserved source attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Raw {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// EmbeddedImage is a raster image element from the source document.
// Href is usually a base64 data URI.
type EmbeddedImage struct {
	ID            string
	Href          string
	X, Y          float64
	Width, Height float64
	Matrix        model.Matrix
}

// Document is a parsed score document
type Document struct {
	Width, Height float64
	ViewBox       *model.BBox
	RootAttrs     []Attr // svg root attributes in source order
	Elements      []Element
	Images        []EmbeddedImage
}
