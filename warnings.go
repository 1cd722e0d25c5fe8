package segno

import "github.com/mbering/segno/model"

// Warning is re-exported from the model package so facade callers need
// not import it for the common case.
type Warning = model.Warning

// FormatWarnings renders warnings one per line for logging.
//
// Example:
//
//	score, warnings, _ := segno.Open("score.svg").Score()
//	if len(warnings) > 0 {
//	    log.Println(segno.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}
