// Package coords resolves and verifies the document-space geometry of
// classified elements.
//
// Every element's visual bounding box is the axis-aligned hull of its
// four local corners pushed through the element's accumulated
// transform, so rotated and skewed placements are covered exactly.
//
// Verification inverts each transform and round-trips the corners:
// the residual displacement is the element's deviation, and the
// [Report] aggregates the maximum and mean across the document. A
// transform whose determinant magnitude falls at or below
// [Config.Epsilon] cannot be inverted meaningfully; its element keeps
// a collapsed box, is reported unverifiable, and contributes nothing
// to the aggregates.
//
//	extractor := coords.NewExtractor()
//	elements, report := extractor.Extract(elements)
//	if len(report.Unverifiable) > 0 {
//		...
//	}
package coords
