package svg

import (
	"strconv"

	"github.com/mbering/segno/model"
)

// pathCoordinates extracts every point the command stream of a path's
// d attribute touches: segment endpoints and curve control points.
// Arc segments contribute their endpoint only. Scanning stops at the
// first token it cannot read, returning the points gathered so far.
func pathCoordinates(d string) []model.Point {
	s := pathScanner{data: d}
	var pts []model.Point
	var cur, subStart model.Point
	cmd := byte(0)

	for {
		s.skipSeparators()
		if s.done() {
			return pts
		}

		if c := s.peek(); isPathCommand(c) {
			s.advance()
			cmd = c
			if cmd == 'Z' || cmd == 'z' {
				cur = subStart
			}
			continue
		}

		switch cmd {
		case 'M', 'L', 'T':
			x, y, ok := s.pair()
			if !ok {
				return pts
			}
			cur = model.Point{X: x, Y: y}
			pts = append(pts, cur)
			if cmd == 'M' {
				subStart = cur
				cmd = 'L' // implicit repeats after a move are lines
			}

		case 'm', 'l', 't':
			dx, dy, ok := s.pair()
			if !ok {
				return pts
			}
			cur = model.Point{X: cur.X + dx, Y: cur.Y + dy}
			pts = append(pts, cur)
			if cmd == 'm' {
				subStart = cur
				cmd = 'l'
			}

		case 'H', 'h', 'V', 'v':
			v, ok := s.number()
			if !ok {
				return pts
			}
			switch cmd {
			case 'H':
				cur.X = v
			case 'h':
				cur.X += v
			case 'V':
				cur.Y = v
			case 'v':
				cur.Y += v
			}
			pts = append(pts, cur)

		case 'C', 'c', 'S', 's', 'Q', 'q':
			count := 2
			if cmd == 'C' || cmd == 'c' {
				count = 3
			}
			// relative pairs are all offsets from the point where the
			// segment started
			base := cur
			for k := 0; k < count; k++ {
				x, y, ok := s.pair()
				if !ok {
					return pts
				}
				p := model.Point{X: x, Y: y}
				if cmd >= 'a' {
					p = model.Point{X: base.X + x, Y: base.Y + y}
				}
				pts = append(pts, p)
				cur = p
			}

		case 'A', 'a':
			// rx ry rotation large-arc sweep x y
			var nums [7]float64
			for k := range nums {
				v, ok := s.number()
				if !ok {
					return pts
				}
				nums[k] = v
			}
			if cmd == 'A' {
				cur = model.Point{X: nums[5], Y: nums[6]}
			} else {
				cur = model.Point{X: cur.X + nums[5], Y: cur.Y + nums[6]}
			}
			pts = append(pts, cur)

		default:
			return pts
		}
	}
}

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) done() bool { return s.pos >= len(s.data) }
func (s *pathScanner) peek() byte { return s.data[s.pos] }
func (s *pathScanner) advance()   { s.pos++ }

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

// number scans one float, honoring the compact forms renderers accept:
// "1-2" and "1.5.5" are both two numbers.
func (s *pathScanner) number() (float64, bool) {
	s.skipSeparators()
	data := s.data
	n := len(data)
	start := s.pos
	i := s.pos

	if i < n && (data[i] == '+' || data[i] == '-') {
		i++
	}
	digits := 0
	for i < n && data[i] >= '0' && data[i] <= '9' {
		i++
		digits++
	}
	if i < n && data[i] == '.' {
		i++
		for i < n && data[i] >= '0' && data[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < n && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < n && (data[j] == '+' || data[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && data[j] >= '0' && data[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}

	v, err := strconv.ParseFloat(data[start:i], 64)
	if err != nil {
		return 0, false
	}
	s.pos = i
	return v, true
}

func (s *pathScanner) pair() (float64, float64, bool) {
	x, ok := s.number()
	if !ok {
		return 0, 0, false
	}
	y, ok := s.number()
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}
