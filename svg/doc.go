// Package svg parses score markup into ordered, typed elements.
//
// The parser walks the document with a streaming decoder so elements
// come out in source order, which later stages rely on. Group
// transforms are composed onto a state stack during the walk, so every
// [Element] carries the full matrix mapping its local coordinates to
// document space.
//
// # Parsing
//
//	doc, warnings, err := svg.Parse(f)
//
// A [*ParseError] is returned only for structurally broken documents:
// malformed XML or a non-svg root. An element with a bad attribute is
// kept with the offending field zeroed and a warning appended, because
// one damaged element should not cost the caller the rest of the
// score.
//
// # Elements
//
// Drawable tags map to [ElementKind] values; unrecognized tags become
// [KindUnknown] elements with their attributes preserved in Raw.
// Raster images are collected separately on [Document] Images.
//
// # Encodings
//
// Documents whose XML prolog declares a non-UTF-8 encoding are decoded
// through the charset tables before parsing.
package svg
