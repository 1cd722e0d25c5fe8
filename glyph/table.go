package glyph

import "github.com/mbering/segno/model"

// Default hints covering the SMuFL private-use block as emitted by
// common engraving exporters, the U+F0xx aliases produced when legacy
// symbol fonts are remapped into the private-use area, and the bare
// dynamics letters some exporters leave as ordinary text.
var defaultHints = map[rune]Hint{
	// Clefs (SMuFL U+E050 block)
	0xE050: {Name: "gClef", Category: model.CategoryClef},
	0xE052: {Name: "gClef8vb", Category: model.CategoryClef},
	0xE053: {Name: "gClef8va", Category: model.CategoryClef},
	0xE05C: {Name: "cClef", Category: model.CategoryClef},
	0xE062: {Name: "fClef", Category: model.CategoryClef},
	0xE064: {Name: "fClef8vb", Category: model.CategoryClef},
	0xE069: {Name: "unpitchedPercussionClef1", Category: model.CategoryClef},

	// Noteheads (SMuFL U+E0A0 block). Notehead glyphs double as text
	// bullets in some fonts, so geometry confirms the reading.
	0xE0A0: {Name: "noteheadDoubleWhole", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},
	0xE0A2: {Name: "noteheadWhole", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},
	0xE0A3: {Name: "noteheadHalf", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},
	0xE0A4: {Name: "noteheadBlack", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},

	// Accidentals (SMuFL U+E260 block)
	0xE260: {Name: "accidentalFlat", Category: model.CategoryAccidental},
	0xE261: {Name: "accidentalNatural", Category: model.CategoryAccidental},
	0xE262: {Name: "accidentalSharp", Category: model.CategoryAccidental},
	0xE263: {Name: "accidentalDoubleSharp", Category: model.CategoryAccidental},
	0xE264: {Name: "accidentalDoubleFlat", Category: model.CategoryAccidental},

	// Dynamics (SMuFL U+E520 block)
	0xE520: {Name: "dynamicPiano", Category: model.CategoryDynamicMarking},
	0xE521: {Name: "dynamicMezzo", Category: model.CategoryDynamicMarking},
	0xE522: {Name: "dynamicForte", Category: model.CategoryDynamicMarking},
	0xE524: {Name: "dynamicSforzando", Category: model.CategoryDynamicMarking},
	0xE52A: {Name: "dynamicPPP", Category: model.CategoryDynamicMarking},
	0xE52B: {Name: "dynamicPP", Category: model.CategoryDynamicMarking},
	0xE52C: {Name: "dynamicMP", Category: model.CategoryDynamicMarking},
	0xE52D: {Name: "dynamicMF", Category: model.CategoryDynamicMarking},
	0xE52F: {Name: "dynamicFF", Category: model.CategoryDynamicMarking},
	0xE530: {Name: "dynamicFFF", Category: model.CategoryDynamicMarking},

	// Ornaments (SMuFL U+E566 block)
	0xE566: {Name: "ornamentTrill", Category: model.CategoryOrnament},
	0xE567: {Name: "ornamentTurn", Category: model.CategoryOrnament},
	0xE568: {Name: "ornamentTurnInverted", Category: model.CategoryOrnament},
	0xE56C: {Name: "ornamentMordent", Category: model.CategoryOrnament},

	// Legacy symbol-font aliases at U+F000 + ASCII code
	0xF026: {Name: "legacyGClef", Category: model.CategoryClef},
	0xF03F: {Name: "legacyFClef", Category: model.CategoryClef},
	0xF023: {Name: "legacySharp", Category: model.CategoryAccidental},
	0xF062: {Name: "legacyFlat", Category: model.CategoryAccidental},
	0xF06E: {Name: "legacyNatural", Category: model.CategoryAccidental},
	0xF071: {Name: "legacyNoteheadBlack", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},
	0xF077: {Name: "legacyNoteheadWhole", Category: model.CategoryNotehead, Ambiguous: true, Fallback: model.CategoryText},
	0xF066: {Name: "legacyDynamicForte", Category: model.CategoryDynamicMarking},
	0xF070: {Name: "legacyDynamicPiano", Category: model.CategoryDynamicMarking},

	// Bare dynamics letters
	'p': {Name: "textDynamicPiano", Category: model.CategoryDynamicMarking},
	'm': {Name: "textDynamicMezzo", Category: model.CategoryDynamicMarking},
	'f': {Name: "textDynamicForte", Category: model.CategoryDynamicMarking},
}

// DefaultTable returns the built-in code point table
func DefaultTable() *Table {
	return NewTable(defaultHints)
}
