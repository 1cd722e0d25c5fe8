package segno

import (
	"github.com/mbering/segno/classify"
	"github.com/mbering/segno/coords"
	"github.com/mbering/segno/reconstruct"
	"github.com/mbering/segno/staff"
)

// Config bundles the configuration of every pipeline stage. The zero
// value is not useful; start from DefaultConfig and override fields.
type Config struct {
	Staff       staff.Config
	Classify    classify.Config
	Coords      coords.Config
	Reconstruct reconstruct.Options
}

// DefaultConfig returns the default configuration for all stages.
func DefaultConfig() Config {
	return Config{
		Staff:       staff.DefaultConfig(),
		Classify:    classify.DefaultConfig(),
		Coords:      coords.DefaultConfig(),
		Reconstruct: reconstruct.DefaultOptions(),
	}
}

// ExtractOptions holds configuration for score analysis.
type ExtractOptions struct {
	config Config

	// HTML documents may contain several inline scores; svgIndex
	// selects which one to analyze (0-indexed).
	svgIndex int

	// Notehead collision filtering runs unless disabled.
	skipNoteheadFilter bool
}

// defaultOptions returns the default analysis options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config:             DefaultConfig(),
		svgIndex:           0,
		skipNoteheadFilter: false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		config:             o.config,
		svgIndex:           o.svgIndex,
		skipNoteheadFilter: o.skipNoteheadFilter,
	}

	// Deep copy the reconstruction window so chained configuration
	// never aliases a caller's box
	if o.config.Reconstruct.ViewBox != nil {
		vb := *o.config.Reconstruct.ViewBox
		newOpts.config.Reconstruct.ViewBox = &vb
	}

	return newOpts
}
