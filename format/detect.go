// Package format provides input format detection for score documents.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format
type Format int

const (
	// Unknown indicates an unrecognized format
	Unknown Format = iota
	// SVG indicates a plain vector score document
	SVG
	// SVGZ indicates a gzip-compressed vector score document
	SVGZ
	// HTML indicates a web page with embedded score markup
	HTML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case SVG:
		return "SVG"
	case SVGZ:
		return "SVGZ"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format
func (f Format) Extension() string {
	switch f {
	case SVG:
		return ".svg"
	case SVGZ:
		return ".svgz"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		return SVG
	case ".svgz":
		return SVGZ
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format. This
// is more reliable than extension-based detection. Returns Unknown if
// the content cannot be recognized.
func DetectFromMagic(data []byte) Format {
	// gzip magic: \x1f\x8b
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		return SVGZ
	}

	data = trimLeading(data)
	if len(data) == 0 {
		return Unknown
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"), strings.HasPrefix(upper, "<HTML"):
		return HTML
	case strings.HasPrefix(upper, "<!DOCTYPE SVG"), strings.HasPrefix(upper, "<SVG"):
		return SVG
	case strings.HasPrefix(upper, "<?XML"):
		// XML declaration: XHTML pages carry an <html> root, anything
		// else in this domain is a score document
		if strings.Contains(upper, "<HTML") || strings.Contains(upper, "<!DOCTYPE HTML") {
			return HTML
		}
		return SVG
	}
	return Unknown
}

// trimLeading drops a UTF-8 byte order mark and leading whitespace
func trimLeading(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	for len(data) > 0 {
		switch data[0] {
		case ' ', '\t', '\n', '\r':
			data = data[1:]
		default:
			return data
		}
	}
	return data
}

// DetectFromReader inspects the content head to determine the format
func DetectFromReader(r io.ReaderAt) (Format, error) {
	head := make([]byte, 512)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(head[:n]), nil
}
