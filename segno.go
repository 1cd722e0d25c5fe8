// Package segno provides a fluent API for recovering musical semantics
// from engraved score documents in vector form.
//
// Basic usage:
//
//	score, warnings, err := segno.Open("score.svg").Score()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", segno.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := segno.Open("score.svg").
//	    WithPadding(20).
//	    Reconstruct(model.CategoryNotehead, model.CategoryStaffLine)
//
// For advanced use cases, the lower-level svg, staff, classify, coords,
// and reconstruct packages are also available.
package segno

import (
	"io"

	"github.com/mbering/segno/format"
	"github.com/mbering/segno/model"
)

// Open opens a score document and returns an Extractor for fluent
// configuration. The format is inferred from the filename extension;
// unrecognized extensions fall back to content sniffing when a
// terminal operation runs.
//
// Example:
//
//	score, warnings, err := segno.Open("score.svg").Score()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
	}
}

// OpenReader creates an Extractor reading from r. The reader is
// consumed immediately so the resulting Extractor can run any number
// of terminal operations. Pass format.Unknown to sniff the format from
// the content.
//
// Example:
//
//	score, warnings, err := segno.OpenReader(f, format.SVG).Score()
func OpenReader(r io.Reader, f format.Format) *Extractor {
	e := &Extractor{
		format:  f,
		options: defaultOptions(),
	}
	data, err := io.ReadAll(r)
	if err != nil {
		e.err = err
		return e
	}
	e.data = data
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	table := segno.Must(glyph.LoadTable(f))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustScore is a helper that wraps a terminal operation and panics if
// the error is non-nil. It discards warnings and returns just the
// value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	score := segno.MustScore(segno.Open("score.svg").Score())
func MustScore[T any](val T, _ []model.Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
