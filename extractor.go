package segno

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mbering/segno/classify"
	"github.com/mbering/segno/coords"
	"github.com/mbering/segno/format"
	"github.com/mbering/segno/glyph"
	"github.com/mbering/segno/htmldoc"
	"github.com/mbering/segno/internal/images"
	"github.com/mbering/segno/model"
	"github.com/mbering/segno/ocr"
	"github.com/mbering/segno/reconstruct"
	"github.com/mbering/segno/staff"
	"github.com/mbering/segno/svg"
)

// analysis holds the result of one full pipeline run.
type analysis struct {
	doc      *svg.Document
	layout   *staff.Layout
	elements []model.MusicalElement
	report   *coords.Report
}

// Extractor provides a fluent interface for recovering musical
// semantics from score documents. Each configuration method returns a
// new Extractor instance, making it safe to fork chains and reuse a
// configured base.
type Extractor struct {
	// Source
	filename string
	data     []byte // non-nil when the source was a reader
	format   format.Format

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []model.Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename: e.filename,
		data:     e.data,
		format:   e.format,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]model.Warning(nil), e.warnings...),
	}
	return newExt
}

// sourceBytes returns the raw document content. File sources are read
// on every call so an Extractor stays reusable across terminal
// operations.
func (e *Extractor) sourceBytes() ([]byte, error) {
	if e.data != nil {
		return e.data, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open score: %w", err)
	}
	return data, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithConfig replaces the configuration of every pipeline stage.
//
// Example:
//
//	cfg := segno.DefaultConfig()
//	cfg.Coords.Epsilon = 1e-12
//	score, _, err := segno.Open("score.svg").WithConfig(cfg).Score()
func (e *Extractor) WithConfig(cfg Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = cfg
	return newExt
}

// WithStaffConfig replaces the staff detection configuration.
//
// Example:
//
//	cfg := staff.DefaultConfig()
//	cfg.MinLineSpan = 800
//	score, _, err := segno.Open("score.svg").WithStaffConfig(cfg).Score()
func (e *Extractor) WithStaffConfig(cfg staff.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config.Staff = cfg
	return newExt
}

// WithClassifyConfig replaces the element classification configuration.
func (e *Extractor) WithClassifyConfig(cfg classify.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config.Classify = cfg
	return newExt
}

// WithGlyphTable sets the glyph table consulted for text elements.
// Merge a loaded table onto the default one to extend rather than
// replace the built-in coverage.
//
// Example:
//
//	table := glyph.DefaultTable().Merge(custom)
//	score, _, err := segno.Open("score.svg").WithGlyphTable(table).Score()
func (e *Extractor) WithGlyphTable(table *glyph.Table) *Extractor {
	newExt := e.clone()
	newExt.options.config.Classify.GlyphTable = table
	return newExt
}

// WithViewBox fixes the reconstruction window instead of deriving it
// from the selected elements. Fixed windows get no padding.
func (e *Extractor) WithViewBox(box model.BBox) *Extractor {
	newExt := e.clone()
	vb := box
	newExt.options.config.Reconstruct.ViewBox = &vb
	return newExt
}

// WithPadding sets the margin added around the derived reconstruction
// window.
func (e *Extractor) WithPadding(padding float64) *Extractor {
	newExt := e.clone()
	newExt.options.config.Reconstruct.Padding = padding
	return newExt
}

// WithSVGIndex selects which inline score of an HTML document to
// analyze (0-indexed). Documents with a single score ignore it.
func (e *Extractor) WithSVGIndex(index int) *Extractor {
	newExt := e.clone()
	newExt.options.svgIndex = index
	return newExt
}

// WithoutNoteheadFilter disables notehead collision filtering, keeping
// every classified notehead even when several share a rounded
// horizontal position within one instrument.
func (e *Extractor) WithoutNoteheadFilter() *Extractor {
	newExt := e.clone()
	newExt.options.skipNoteheadFilter = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Score runs the full pipeline and returns the analyzed score.
//
// Returns the score, any warnings encountered during processing, and
// an error if analysis failed. Warnings indicate non-fatal issues
// (e.g., a malformed transform attribute) where analysis succeeded but
// results may be imperfect.
//
// Example:
//
//	score, warnings, err := segno.Open("score.svg").Score()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", segno.FormatWarnings(warnings))
//	}
func (e *Extractor) Score() (*Score, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}

	return &Score{
		Width:    a.doc.Width,
		Height:   a.doc.Height,
		ViewBox:  a.doc.ViewBox,
		Elements: a.elements,
		Staves:   a.layout.Staves,
		Report:   a.report,
	}, e.warnings, nil
}

// Elements runs the pipeline and returns the classified elements in
// document order.
//
// Example:
//
//	elements, _, err := segno.Open("score.svg").Elements()
//	for _, el := range elements {
//	    fmt.Printf("%s: %s\n", el.ID, el.Category)
//	}
func (e *Extractor) Elements() ([]model.MusicalElement, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}
	return a.elements, e.warnings, nil
}

// Staves runs staff detection and returns the detected staff systems
// in top-to-bottom order.
//
// Example:
//
//	staves, _, err := segno.Open("score.svg").Staves()
//	for _, s := range staves {
//	    fmt.Printf("%s: %d lines\n", s.Name, len(s.LineYs))
//	}
func (e *Extractor) Staves() ([]staff.Staff, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}
	return a.layout.Staves, e.warnings, nil
}

// Records runs the pipeline and returns flat export rows, one per
// element, in document order.
//
// Example:
//
//	records, _, err := segno.Open("score.svg").Records()
//	data, _ := json.Marshal(records)
func (e *Extractor) Records() ([]model.Record, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}
	return model.Records(a.elements), e.warnings, nil
}

// Noteheads runs the pipeline and returns only the elements classified
// as noteheads.
//
// Example:
//
//	notes, _, err := segno.Open("score.svg").Noteheads()
func (e *Extractor) Noteheads() ([]model.MusicalElement, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}

	var notes []model.MusicalElement
	for _, el := range a.elements {
		if el.Category == model.CategoryNotehead {
			notes = append(notes, el)
		}
	}
	return notes, e.warnings, nil
}

// Reconstruct renders a new document containing only the elements
// whose category is listed. Calling it with no categories yields a
// document with the page window and no content.
//
// Example:
//
//	out, _, err := segno.Open("score.svg").
//	    Reconstruct(model.CategoryNotehead, model.CategoryStem)
//	os.WriteFile("notes.svg", out, 0644)
func (e *Extractor) Reconstruct(categories ...model.Category) ([]byte, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}

	want := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}

	var selected []model.MusicalElement
	for _, el := range a.elements {
		if want[el.Category] {
			selected = append(selected, el)
		}
	}

	return e.build(a, selected)
}

// ReconstructAll renders a new document containing every element of
// the source, normalized to the deterministic output form.
//
// Example:
//
//	out, _, err := segno.Open("score.svgz").ReconstructAll()
func (e *Extractor) ReconstructAll() ([]byte, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}

	return e.build(a, a.elements)
}

// CoordinateReport runs the pipeline and returns the transform
// verification report.
//
// Example:
//
//	report, _, err := segno.Open("score.svg").CoordinateReport()
//	fmt.Printf("verified %d, max deviation %g\n", report.Verified, report.MaxDeviation)
func (e *Extractor) CoordinateReport() (*coords.Report, []model.Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return nil, e.warnings, err
	}
	return a.report, e.warnings, nil
}

// TitleText recovers text from raster images embedded in the score,
// typically a scanned title block. Recovery is best-effort: when the
// binary was built without the ocr tag, or the document embeds no
// readable image, the result is an empty string plus a warning rather
// than an error.
//
// Example:
//
//	title, warnings, err := segno.Open("score.svg").TitleText()
func (e *Extractor) TitleText() (string, []model.Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}

	a, err := e.analyze()
	if err != nil {
		return "", e.warnings, err
	}

	for _, img := range a.doc.Images {
		decoded, err := images.DecodeDataURI(img.Href)
		if err != nil {
			e.warn("bad-image", err.Error(), img.ID)
			continue
		}

		payload, err := images.ToPNG(decoded)
		if err != nil {
			e.warn("bad-image", err.Error(), img.ID)
			continue
		}

		text, err := ocr.RecoverText(payload)
		if err != nil {
			if errors.Is(err, ocr.ErrOCRNotEnabled) {
				e.warn("ocr-disabled", "text recovery requires a build with the ocr tag", img.ID)
				return "", e.warnings, nil
			}
			e.warn("ocr-failed", err.Error(), img.ID)
			continue
		}
		if text != "" {
			return text, e.warnings, nil
		}
	}

	return "", e.warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// analyze runs the full pipeline: decode the container format, parse
// the document, detect staves, classify elements, filter notehead
// collisions, and verify coordinates.
func (e *Extractor) analyze() (*analysis, error) {
	e.warnings = nil
	log := Logger()

	payload, err := e.svgPayload()
	if err != nil {
		return nil, err
	}

	doc, parseWarnings, err := svg.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	e.warnings = append(e.warnings, parseWarnings...)
	for _, w := range parseWarnings {
		log.Warn(w.Message, "code", w.Code, "element", w.Element)
	}
	log.Info("document parsed", "elements", len(doc.Elements))

	// Stages with no logger of their own inherit the process logger
	cfg := e.options.config
	if cfg.Staff.Logger == nil {
		cfg.Staff.Logger = log
	}
	if cfg.Classify.Logger == nil {
		cfg.Classify.Logger = log
	}
	if cfg.Coords.Logger == nil {
		cfg.Coords.Logger = log
	}

	detector := staff.NewDetectorWithConfig(cfg.Staff)
	layout := detector.Detect(doc.Elements, doc.Width, doc.Height)
	log.Info("staves detected", "count", len(layout.Staves))

	classifier := classify.NewClassifierWithConfig(cfg.Classify)
	elements := classifier.Classify(doc.Elements, layout)

	if !e.options.skipNoteheadFilter {
		admitted := classify.FilterNoteheads(elements, cfg.Classify.GlyphTable)
		for i := range admitted {
			if elements[i].Category == model.CategoryNotehead && admitted[i].Category != model.CategoryNotehead {
				log.Debug("notehead demoted",
					"id", admitted[i].ID,
					"category", admitted[i].Category.String())
			}
		}
		elements = admitted
	}

	extractor := coords.NewExtractorWithConfig(cfg.Coords)
	elements, report := extractor.Extract(elements)

	e.checkLayoutQuality(doc, layout)

	return &analysis{
		doc:      doc,
		layout:   layout,
		elements: elements,
		report:   report,
	}, nil
}

// svgPayload peels the container format off the raw source bytes and
// returns plain markup for the parser.
func (e *Extractor) svgPayload() ([]byte, error) {
	data, err := e.sourceBytes()
	if err != nil {
		return nil, err
	}

	f := e.format
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}

	switch f {
	case format.SVG:
		return data, nil

	case format.SVGZ:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decompress score: %w", err)
		}
		defer zr.Close()

		payload, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress score: %w", err)
		}
		return payload, nil

	case format.HTML:
		islands, err := htmldoc.Extract(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read html document: %w", err)
		}
		if len(islands) == 0 {
			return nil, fmt.Errorf("html document contains no svg content")
		}
		idx := e.options.svgIndex
		if idx < 0 || idx >= len(islands) {
			return nil, fmt.Errorf("svg index %d out of range (document has %d)", idx, len(islands))
		}
		return islands[idx], nil

	default:
		return nil, fmt.Errorf("unsupported file format: %s", f)
	}
}

// build renders the selected elements through the reconstructor.
func (e *Extractor) build(a *analysis, selected []model.MusicalElement) ([]byte, []model.Warning, error) {
	builder := reconstruct.NewBuilder(a.doc)
	out, err := builder.Build(selected, e.options.config.Reconstruct)
	if err != nil {
		return nil, e.warnings, err
	}
	return out, e.warnings, nil
}

// checkLayoutQuality records warnings for documents whose analysis is
// likely to be incomplete.
func (e *Extractor) checkLayoutQuality(doc *svg.Document, layout *staff.Layout) {
	if len(doc.Elements) == 0 {
		e.warn("empty-document", "document has no drawable elements", "")
		return
	}
	if len(layout.Staves) == 0 {
		e.warn("no-staves", "no staff systems detected; elements carry no instrument assignment", "")
	}
}

func (e *Extractor) warn(code, msg, elementID string) {
	Logger().Warn(msg, "code", code, "element", elementID)
	e.warnings = append(e.warnings, model.Warning{Code: code, Message: msg, Element: elementID})
}
