// Command segno analyzes an engraved score document and exports the
// recovered semantics as JSON records, optionally writing a filtered
// reconstruction alongside.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mbering/segno"
	"github.com/mbering/segno/glyph"
	"github.com/mbering/segno/internal/config"
	"github.com/mbering/segno/model"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	segno.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ext, err := buildExtractor(cfg)
	if err != nil {
		return err
	}

	score, warnings, err := ext.Score()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "code", w.Code, "element", w.Element)
	}

	if err := writeRecords(cfg, score); err != nil {
		return err
	}
	if !cfg.WritesStdout() {
		logger.Info("records written", "path", cfg.OutputPath, "count", len(score.Elements))
	}

	if cfg.ReconstructPath != "" {
		if err := writeReconstruction(cfg, ext); err != nil {
			return err
		}
		logger.Info("reconstruction written", "path", cfg.ReconstructPath)
	}

	printSummary(os.Stderr, score)
	return nil
}

// buildExtractor assembles the analysis chain from the CLI
// configuration.
func buildExtractor(cfg *config.Config) (*segno.Extractor, error) {
	ext := segno.Open(cfg.InputPath).
		WithSVGIndex(cfg.SVGIndex).
		WithPadding(cfg.Padding)

	if cfg.KeepCollisions {
		ext = ext.WithoutNoteheadFilter()
	}

	if cfg.GlyphTablePath != "" {
		f, err := os.Open(cfg.GlyphTablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open glyph table: %w", err)
		}
		defer f.Close()

		table, err := glyph.LoadTable(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load glyph table: %w", err)
		}
		ext = ext.WithGlyphTable(glyph.DefaultTable().Merge(table))
	}

	return ext, nil
}

func writeRecords(cfg *config.Config, score *segno.Score) error {
	data, err := json.MarshalIndent(score.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	data = append(data, '\n')

	if cfg.WritesStdout() {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cfg.OutputPath, data, 0644)
}

func writeReconstruction(cfg *config.Config, ext *segno.Extractor) error {
	categories := cfg.CategoryFilter()

	var out []byte
	var err error
	if len(categories) == 0 {
		out, _, err = ext.ReconstructAll()
	} else {
		out, _, err = ext.Reconstruct(categories...)
	}
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	return os.WriteFile(cfg.ReconstructPath, out, 0644)
}

// summaryOrder fixes the category display order for the summary table
var summaryOrder = []model.Category{
	model.CategoryStaffLine,
	model.CategoryBarline,
	model.CategoryStem,
	model.CategoryNotehead,
	model.CategoryClef,
	model.CategoryAccidental,
	model.CategoryDynamicMarking,
	model.CategoryOrnament,
	model.CategoryText,
	model.CategoryUnknown,
}

func printSummary(w io.Writer, score *segno.Score) {
	counts := score.CountByCategory()

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT")
	for _, cat := range summaryOrder {
		if n := counts[cat.String()]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", cat, n)
		}
	}
	fmt.Fprintf(tw, "TOTAL\t%d\n", len(score.Elements))
	tw.Flush()

	fmt.Fprintf(w, "\nStaves: %d", len(score.Staves))
	if len(score.Staves) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(score.Instruments(), ", "))
	}
	fmt.Fprintf(w, "\nVerified transforms: %d/%d", score.Report.Verified, len(score.Elements))
	if len(score.Report.Unverifiable) > 0 {
		fmt.Fprintf(w, " (unverifiable: %s)", strings.Join(score.Report.Unverifiable, ", "))
	}
	fmt.Fprintf(w, "\nMax corner deviation: %g\n", score.Report.MaxDeviation)
}

func printVersion() {
	fmt.Printf("segno %s (built %s)\n", version, buildTime)
}
