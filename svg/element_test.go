package svg

import (
	"testing"

	"github.com/mbering/segno/model"
)

func TestElementKindString(t *testing.T) {
	tests := []struct {
		kind     ElementKind
		expected string
	}{
		{KindText, "text"},
		{KindLine, "line"},
		{KindPolyline, "polyline"},
		{KindPolygon, "polygon"},
		{KindPath, "path"},
		{KindRect, "rect"},
		{KindCircle, "circle"},
		{KindEllipse, "ellipse"},
		{KindUnknown, "unknown"},
		{ElementKind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ElementKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestElementLocalBBox(t *testing.T) {
	tests := []struct {
		name     string
		el       Element
		expected model.BBox
		ok       bool
	}{
		{
			"line",
			Element{Kind: KindLine, X1: 10, Y1: 30, X2: 50, Y2: 20},
			model.NewBBox(10, 20, 40, 10),
			true,
		},
		{
			"polyline",
			Element{Kind: KindPolyline, Points: []model.Point{{X: 0, Y: 500}, {X: 1200, Y: 502}}},
			model.NewBBox(0, 500, 1200, 2),
			true,
		},
		{
			"empty polyline",
			Element{Kind: KindPolyline},
			model.BBox{},
			false,
		},
		{
			"rect",
			Element{Kind: KindRect, X: 5, Y: 6, Width: 7, Height: 8},
			model.NewBBox(5, 6, 7, 8),
			true,
		},
		{
			"circle",
			Element{Kind: KindCircle, CX: 5, CY: 5, RX: 3, RY: 3},
			model.NewBBox(2, 2, 6, 6),
			true,
		},
		{
			"ellipse",
			Element{Kind: KindEllipse, CX: 10, CY: 10, RX: 4, RY: 2},
			model.NewBBox(6, 8, 8, 4),
			true,
		},
		{
			"path",
			Element{Kind: KindPath, PathData: "M 0 0 L 10 5"},
			model.NewBBox(0, 0, 10, 5),
			true,
		},
		{
			"text has no intrinsic extent",
			Element{Kind: KindText, Text: "p", X: 5, Y: 5},
			model.BBox{},
			false,
		},
		{
			"unknown",
			Element{Kind: KindUnknown, Tag: "fermata"},
			model.BBox{},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.el.LocalBBox()
			if ok != tt.ok {
				t.Fatalf("LocalBBox() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("LocalBBox() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestElementVisualExtent(t *testing.T) {
	el := Element{
		Kind:   KindRect,
		X:      0, Y: 0, Width: 10, Height: 20,
		Matrix: model.Translate(100, 200),
	}

	got, ok := el.VisualExtent()
	if !ok {
		t.Fatal("VisualExtent() ok = false")
	}
	if got != model.NewBBox(100, 200, 10, 20) {
		t.Errorf("VisualExtent() = %+v, want {100 200 10 20}", got)
	}

	if _, ok := (&Element{Kind: KindText}).VisualExtent(); ok {
		t.Error("VisualExtent() for text should report no extent")
	}
}
