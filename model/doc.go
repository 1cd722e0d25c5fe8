// Package model provides the intermediate representation (IR) for
// recovered score content.
//
// This package defines the user-facing data structures that represent
// the musical meaning of a vector score document. Parsing, detection,
// and classification ultimately produce these types, making them the
// primary API for consuming recovered content.
//
// # Elements
//
// The [MusicalElement] type pairs one source element with its recovered
// meaning: a [Category], the owning instrument, the glyph code point
// for symbol text, and measured geometry. Elements reference their
// source by index so reconstruction can re-emit the original markup.
//
// # Categories
//
// [Category] is the closed set of meanings the classifier assigns:
// notehead, stem, staff_line, barline, clef, accidental,
// dynamic_marking, ornament, text, and unknown. [ParseCategory]
// converts the wire names back to values.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - axis-aligned box in SVG coordinates (Y grows downward)
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation with inversion and
//     bounding-box mapping
//
// # Export
//
// The [Record] type is the flat JSON row for batch output;
// [Records] flattens a classified batch while preserving order.
package model
