package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mbering/segno/model"
)

// ParseTransform parses a transform attribute value into a single
// composed matrix. Operations are composed in document order, so
// "translate(10,0) scale(2)" scales first and translates second, as a
// renderer would.
//
// Supported operations: matrix, translate, scale, rotate, skewX,
// skewY. Angles are degrees.
func ParseTransform(s string) (model.Matrix, error) {
	m := model.Identity()
	rest := strings.TrimSpace(s)

	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return model.Identity(), fmt.Errorf("transform %q: missing '('", s)
		}
		closing := strings.IndexByte(rest, ')')
		if closing < open {
			return model.Identity(), fmt.Errorf("transform %q: missing ')'", s)
		}

		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : closing])
		if err != nil {
			return model.Identity(), fmt.Errorf("transform %q: %w", s, err)
		}

		op, err := transformOp(name, args)
		if err != nil {
			return model.Identity(), fmt.Errorf("transform %q: %w", s, err)
		}
		m = op.Multiply(m)

		rest = strings.TrimSpace(rest[closing+1:])
		rest = strings.TrimPrefix(rest, ",")
		rest = strings.TrimSpace(rest)
	}

	return m, nil
}

func transformOp(name string, args []float64) (model.Matrix, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return model.Identity(), fmt.Errorf("matrix wants 6 values, got %d", len(args))
		}
		return model.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, nil

	case "translate":
		switch len(args) {
		case 1:
			return model.Translate(args[0], 0), nil
		case 2:
			return model.Translate(args[0], args[1]), nil
		}
		return model.Identity(), fmt.Errorf("translate wants 1 or 2 values, got %d", len(args))

	case "scale":
		switch len(args) {
		case 1:
			return model.Scale(args[0], args[0]), nil
		case 2:
			return model.Scale(args[0], args[1]), nil
		}
		return model.Identity(), fmt.Errorf("scale wants 1 or 2 values, got %d", len(args))

	case "rotate":
		switch len(args) {
		case 1:
			return model.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			// rotation about a point: shift to the origin, rotate,
			// shift back
			rad := args[0] * math.Pi / 180
			cx, cy := args[1], args[2]
			return model.Translate(-cx, -cy).
				Multiply(model.Rotate(rad)).
				Multiply(model.Translate(cx, cy)), nil
		}
		return model.Identity(), fmt.Errorf("rotate wants 1 or 3 values, got %d", len(args))

	case "skewX":
		if len(args) != 1 {
			return model.Identity(), fmt.Errorf("skewX wants 1 value, got %d", len(args))
		}
		return model.Matrix{1, 0, math.Tan(args[0] * math.Pi / 180), 1, 0, 0}, nil

	case "skewY":
		if len(args) != 1 {
			return model.Identity(), fmt.Errorf("skewY wants 1 value, got %d", len(args))
		}
		return model.Matrix{1, math.Tan(args[0] * math.Pi / 180), 0, 1, 0, 0}, nil
	}

	return model.Identity(), fmt.Errorf("unknown operation %q", name)
}

// parseNumberList parses whitespace- or comma-separated numbers
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParsePoints parses a points attribute into coordinate pairs.
// An odd count of numbers is an error, matching renderer behavior of
// rejecting the list rather than guessing.
func ParsePoints(s string) ([]model.Point, error) {
	nums, err := parseNumberList(s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("points list has odd count %d", len(nums))
	}

	pts := make([]model.Point, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		pts = append(pts, model.Point{X: nums[i], Y: nums[i+1]})
	}
	return pts, nil
}
