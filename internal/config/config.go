// Package config loads the command line configuration for the segno
// CLI from flags and environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mbering/segno/model"
)

const (
	// Default values
	DefaultLogLevel = "info"
	DefaultPadding  = 10.0
)

// Config holds all configuration for the segno CLI
type Config struct {
	// Input and output
	InputPath  string
	OutputPath string // records destination; empty or "-" writes stdout

	// Reconstruction
	ReconstructPath string   // when set, a reconstruction is written here
	Categories      []string // category filter for the reconstruction

	// Analysis configuration
	SVGIndex       int
	Padding        float64
	GlyphTablePath string // optional JSON glyph table merged onto the default
	KeepCollisions bool

	// Application configuration
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SVGIndex: 0,
		Padding:  DefaultPadding,
		LogLevel: DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SEGNO")
	viper.AutomaticEnv()

	viper.SetDefault("in", cfg.InputPath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("reconstruct", cfg.ReconstructPath)
	viper.SetDefault("categories", "")
	viper.SetDefault("svgindex", cfg.SVGIndex)
	viper.SetDefault("padding", cfg.Padding)
	viper.SetDefault("glyphs", cfg.GlyphTablePath)
	viper.SetDefault("keepcollisions", cfg.KeepCollisions)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.StringP("in", "i", cfg.InputPath, "Score document to analyze (.svg, .svgz, .html)")
	pflag.StringP("out", "o", cfg.OutputPath, "Destination for the JSON records ('-' for stdout)")
	pflag.StringP("reconstruct", "r", cfg.ReconstructPath, "Write a reconstructed document to this path")
	pflag.StringP("categories", "c", "", "Comma-separated categories to keep in the reconstruction (default all)")
	pflag.Int("svgindex", cfg.SVGIndex, "Which inline score of an HTML document to analyze (0-indexed)")
	pflag.Float64("padding", cfg.Padding, "Margin added around the reconstruction window")
	pflag.String("glyphs", cfg.GlyphTablePath, "JSON glyph table merged onto the built-in one")
	pflag.Bool("keepcollisions", cfg.KeepCollisions, "Keep noteheads that collide on a rounded horizontal position")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("in", pflag.Lookup("in"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("reconstruct", pflag.Lookup("reconstruct"))
	_ = viper.BindPFlag("categories", pflag.Lookup("categories"))
	_ = viper.BindPFlag("svgindex", pflag.Lookup("svgindex"))
	_ = viper.BindPFlag("padding", pflag.Lookup("padding"))
	_ = viper.BindPFlag("glyphs", pflag.Lookup("glyphs"))
	_ = viper.BindPFlag("keepcollisions", pflag.Lookup("keepcollisions"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nsegno - recover musical semantics from engraved score documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --in score.svg --out records.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --in score.svgz --reconstruct notes.svg --categories notehead,stem\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --in page.html --svgindex 1 --out -\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  SEGNO_IN              Score document to analyze\n")
		fmt.Fprintf(os.Stderr, "  SEGNO_OUT             Records destination\n")
		fmt.Fprintf(os.Stderr, "  SEGNO_RECONSTRUCT     Reconstruction destination\n")
		fmt.Fprintf(os.Stderr, "  SEGNO_CATEGORIES      Reconstruction category filter\n")
		fmt.Fprintf(os.Stderr, "  SEGNO_LOGLEVEL        Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputPath = viper.GetString("in")
	cfg.OutputPath = viper.GetString("out")
	cfg.ReconstructPath = viper.GetString("reconstruct")
	cfg.Categories = splitList(viper.GetString("categories"))
	cfg.SVGIndex = viper.GetInt("svgindex")
	cfg.Padding = viper.GetFloat64("padding")
	cfg.GlyphTablePath = viper.GetString("glyphs")
	cfg.KeepCollisions = viper.GetBool("keepcollisions")
	cfg.LogLevel = viper.GetString("loglevel")
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("no input document specified (use --in)")
	}

	for _, name := range c.Categories {
		if _, ok := model.ParseCategory(name); !ok {
			return fmt.Errorf("unknown category: %s", name)
		}
	}

	if c.SVGIndex < 0 {
		return errors.New("svg index cannot be negative")
	}

	if c.Padding < 0 {
		return errors.New("padding cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// CategoryFilter returns the parsed reconstruction categories. Call
// after Validate; unknown names are skipped here.
func (c *Config) CategoryFilter() []model.Category {
	var out []model.Category
	for _, name := range c.Categories {
		if cat, ok := model.ParseCategory(name); ok {
			out = append(out, cat)
		}
	}
	return out
}

// SlogLevel maps the configured log level onto slog's levels
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WritesStdout reports whether records go to standard output
func (c *Config) WritesStdout() bool {
	return c.OutputPath == "" || c.OutputPath == "-"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{In: %s, Out: %s, Reconstruct: %s, Categories: %v, LogLevel: %s}",
		c.InputPath, c.OutputPath, c.ReconstructPath, c.Categories, c.LogLevel)
}
