// Package glyph maps musical symbol code points to classification hints.
//
// Engraving exporters emit musical symbols as single-character text
// elements whose code points come from the SMuFL private-use block, from
// legacy symbol fonts remapped into U+F0xx, or occasionally as bare
// letters (dynamics). This package carries the knowledge of what those
// code points mean.
//
// # Tables
//
// A [Table] maps code points to [Hint] values and is immutable once
// built:
//
//	table := glyph.DefaultTable()
//	hint, ok := table.Lookup(0xE0A4) // noteheadBlack
//
// # Ambiguity
//
// Some glyphs cannot be read from the code point alone. A notehead
// glyph doubles as a text bullet in several fonts, so its hint carries
// Ambiguous=true and a fallback category; the classifier confirms the
// primary reading against staff geometry.
//
// # Custom Tables
//
// [LoadTable] reads a JSON table for fonts this package does not know,
// and [Table.Merge] layers it over the default:
//
//	custom, err := glyph.LoadTable(f)
//	table := glyph.DefaultTable().Merge(custom)
package glyph
