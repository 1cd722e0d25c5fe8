// Package staff detects staves and instrument regions in a parsed
// score document.
//
// Staff lines are the long, nearly flat strokes of a score. The
// [Detector] collects their vertical positions, collapses duplicates,
// and clusters them: lines separated by roughly the median gap belong
// to one staff, and a much larger gap starts the next. Each cluster
// becomes a [Staff] carrying its measured line spacing and an
// occupancy range grown by a tolerance proportional to that spacing.
//
// Instruments are named by vertical order: the topmost staff is
// "instrument-1", the next "instrument-2", and so on.
//
//	detector := staff.NewDetector()
//	layout := detector.Detect(doc.Elements, doc.Width, doc.Height)
//	for name, r := range layout.Ranges() {
//		...
//	}
//
// Detection never fails: a document with no staff-like lines produces
// an empty [Layout].
package staff
