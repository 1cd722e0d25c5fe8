package model

import (
	"fmt"
	"strings"
)

// Warning records a non-fatal problem encountered while processing a
// document. Processing continues past warnings; they exist so callers
// can judge how far to trust the output.
type Warning struct {
	Code    string // stable machine-readable identifier
	Message string
	Element string // ID of the element involved, when there is one
}

func (w Warning) String() string {
	if w.Element != "" {
		return fmt.Sprintf("[%s] %s (element %s)", w.Code, w.Message, w.Element)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings one per line for logging
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
