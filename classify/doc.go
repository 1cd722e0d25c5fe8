// Package classify assigns musical categories to the drawn elements
// of a parsed score document.
//
// The [Classifier] describes every element with exactly one category,
// testing a fixed sequence of rules and stopping at the first match:
//
//  1. Long flat strokes on a detected staff line are staff lines.
//  2. Thin near-vertical strokes inside a staff are barlines when
//     they reach most of the staff height, stems otherwise.
//  3. Single-rune text with a glyph hint takes the hint's category.
//     Ambiguous hints, such as notehead glyphs that double as text
//     bullets, are confirmed against the staff geometry and fall
//     back when the glyph sits away from every staff.
//  4. Any other text is plain text.
//  5. Everything else is unknown.
//
// Each element is also assigned to the first instrument whose
// occupancy range contains its visual center, or left unassigned.
//
//	classifier := classify.NewClassifier()
//	elements := classifier.Classify(doc.Elements, layout)
//
// [FilterNoteheads] post-processes the result, keeping one notehead
// per rounded horizontal position within each instrument and
// re-tagging the rest to their fallback categories.
//
// Classification never fails: malformed or unrecognized input
// degrades to [model.CategoryUnknown].
package classify
