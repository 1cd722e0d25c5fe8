package glyph

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mbering/segno/model"
)

type hintSpec struct {
	Name      string `json:"name,omitempty"`
	Category  string `json:"category"`
	Ambiguous bool   `json:"ambiguous,omitempty"`
	Fallback  string `json:"fallback,omitempty"`
}

// LoadTable reads a JSON code point table. Keys are code points in
// "U+E0A4" or bare hex form; values carry the category name plus an
// optional glyph name, ambiguity flag, and fallback category.
func LoadTable(r io.Reader) (*Table, error) {
	var specs map[string]hintSpec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, fmt.Errorf("failed to decode glyph table: %w", err)
	}

	hints := make(map[rune]Hint, len(specs))
	for key, spec := range specs {
		cp, err := parseCodepoint(key)
		if err != nil {
			return nil, err
		}

		cat, ok := model.ParseCategory(spec.Category)
		if !ok {
			return nil, fmt.Errorf("glyph %s: unknown category %q", key, spec.Category)
		}

		hint := Hint{Name: spec.Name, Category: cat, Ambiguous: spec.Ambiguous}
		if spec.Fallback != "" {
			fb, ok := model.ParseCategory(spec.Fallback)
			if !ok {
				return nil, fmt.Errorf("glyph %s: unknown fallback category %q", key, spec.Fallback)
			}
			hint.Fallback = fb
		}
		hints[cp] = hint
	}

	return NewTable(hints), nil
}

func parseCodepoint(key string) (rune, error) {
	s := strings.TrimPrefix(strings.TrimSpace(key), "U+")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", key, err)
	}
	return rune(v), nil
}
