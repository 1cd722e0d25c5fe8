//go:build !ocr

package segno

import (
	"strings"
	"testing"

	"github.com/mbering/segno/format"
)

// onePixelPNG is a 1x1 transparent PNG, the smallest payload the image
// decoder accepts.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func TestTitleTextDisabled(t *testing.T) {
	doc := `<svg width="100" height="100">` +
		`<image id="cover" x="0" y="0" width="100" height="100" href="data:image/png;base64,` + onePixelPNG + `"/>` +
		`<line id="n" x1="0" y1="50" x2="30" y2="50"/>` +
		`</svg>`

	title, warnings, err := OpenReader(strings.NewReader(doc), format.SVG).TitleText()
	if err != nil {
		t.Fatalf("TitleText() error = %v, want best-effort nil", err)
	}
	if title != "" {
		t.Errorf("TitleText() = %q, want empty without the ocr tag", title)
	}

	found := false
	for _, w := range warnings {
		if w.Code == "ocr-disabled" && w.Element == "cover" {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want ocr-disabled for cover", warnings)
	}
}

func TestTitleTextNoImages(t *testing.T) {
	doc := `<svg width="100" height="100"><line id="n" x1="0" y1="50" x2="30" y2="50"/></svg>`

	title, warnings, err := OpenReader(strings.NewReader(doc), format.SVG).TitleText()
	if err != nil {
		t.Fatalf("TitleText() error = %v", err)
	}
	if title != "" {
		t.Errorf("TitleText() = %q, want empty for a document without images", title)
	}
	for _, w := range warnings {
		if w.Code == "ocr-disabled" {
			t.Error("no ocr warning expected when the document embeds no images")
		}
	}
}

func TestTitleTextBadImage(t *testing.T) {
	doc := `<svg width="100" height="100">` +
		`<image id="ext" href="covers/title.png"/>` +
		`<line id="n" x1="0" y1="50" x2="30" y2="50"/>` +
		`</svg>`

	title, warnings, err := OpenReader(strings.NewReader(doc), format.SVG).TitleText()
	if err != nil {
		t.Fatalf("TitleText() error = %v", err)
	}
	if title != "" {
		t.Errorf("TitleText() = %q, want empty for an external image reference", title)
	}

	found := false
	for _, w := range warnings {
		if w.Code == "bad-image" && w.Element == "ext" {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want bad-image for ext", warnings)
	}
}
