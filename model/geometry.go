package model

import "math"

// Point represents a 2D point in document space
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned bounding box. Coordinates follow the
// SVG convention: the origin is top-left and Y grows downward, so Top
// is the smallest Y value and Bottom the largest.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from its top-left corner and dimensions
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates the bounding box spanning two points
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// BBoxOfPoints returns the smallest box containing every point.
// Returns the zero box for an empty slice.
func BBoxOfPoints(pts []Point) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Top(), other.Top())
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}

// Matrix represents a 2D affine transformation as {a, b, c, d, e, f},
// mapping (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformBBox maps the four corners of b through the matrix and
// returns the axis-aligned box containing their images.
func (m Matrix) TransformBBox(b BBox) BBox {
	return BBoxOfPoints([]Point{
		m.Transform(Point{X: b.Left(), Y: b.Top()}),
		m.Transform(Point{X: b.Right(), Y: b.Top()}),
		m.Transform(Point{X: b.Right(), Y: b.Bottom()}),
		m.Transform(Point{X: b.Left(), Y: b.Bottom()}),
	})
}

// Multiply composes two transformations: the result applies m first,
// then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Det returns the determinant of the linear part of the matrix
func (m Matrix) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse transformation. The boolean is false when
// the matrix is singular and no inverse exists.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Det()
	if math.Abs(det) < 1e-12 {
		return Matrix{}, false
	}
	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, true
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
