// Package htmldoc extracts embedded score markup from web pages.
//
// Score rendering services commonly inline their output as <svg>
// elements inside an HTML page. [Extract] walks the parsed DOM and
// returns each top-level island serialized as a standalone document,
// ready for the svg parser. The HTML5 parser restores the mixed-case
// attribute names of foreign content, so viewBox and friends survive
// the round trip.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"
)

// Extract parses a page and returns every inline <svg> element in
// document order, each serialized as standalone markup. Pages without
// score markup yield an empty slice, not an error.
func Extract(r io.Reader) ([][]byte, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var islands [][]byte
	if err := collectSVG(doc, &islands); err != nil {
		return nil, err
	}
	return islands, nil
}

// ExtractFile opens an HTML file and extracts its inline score markup
func ExtractFile(filename string) ([][]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Extract(f)
}

// collectSVG walks the DOM and serializes each outermost svg element.
// Recursion stops at an island so nested svg stays inside it.
func collectSVG(n *html.Node, out *[][]byte) error {
	if n.Type == html.ElementNode && n.Data == "svg" {
		var buf bytes.Buffer
		if err := html.Render(&buf, n); err != nil {
			return fmt.Errorf("serializing island: %w", err)
		}
		*out = append(*out, buf.Bytes())
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectSVG(c, out); err != nil {
			return err
		}
	}
	return nil
}
