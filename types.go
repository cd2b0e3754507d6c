package doc2tex

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-doc2tex/internal/repair"
)

// SourceKind identifies the format of a source document.
type SourceKind string

const (
	KindDOCX     SourceKind = "docx"
	KindMarkdown SourceKind = "markdown"
)

var sourceExtensions = map[string]SourceKind{
	".docx":     KindDOCX,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
}

// DetectKind derives the source kind from the file extension, ignoring case.
func DetectKind(path string) (SourceKind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := sourceExtensions[ext]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// SupportedExtensions returns the accepted source extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(sourceExtensions))
	for ext := range sourceExtensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// SourceDocument is one input file loaded into memory.
type SourceDocument struct {
	Path string
	Kind SourceKind
	Data []byte
}

// Output is the LaTeX produced for one document.
type Output struct {
	LaTeX  string
	Issues []repair.Issue // issues fixed by the repair pass, in order
	Passes int            // repair passes that changed the text
}

// ConversionResult holds the outcome of converting a single file.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Kind       SourceKind
	ByteCount  int
	Success    bool
	Err        error
	Issues     []repair.Issue
	Duration   time.Duration
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	repair          bool
	repairPasses    int
	maxFileSize     int64
	workers         int
	integrationFile string
}

// WithRepair enables or disables the repair pass. Enabled by default.
func WithRepair(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.repair = enabled
	}
}

// WithRepairPasses sets how many repair passes may run per document.
// Panics if n is not positive.
func WithRepairPasses(n int) Option {
	if n < 1 {
		panic("doc2tex: WithRepairPasses count must be positive")
	}
	return func(c *Converter) {
		c.cfg.repairPasses = n
	}
}

// WithLogger routes log records to logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithMaxFileSize bounds the size of source files. Values <= 0 select the
// default of 100 MiB.
func WithMaxFileSize(n int64) Option {
	return func(c *Converter) {
		c.cfg.maxFileSize = n
	}
}

// WithEngine replaces the translation engine. Panics on a nil engine.
func WithEngine(e Engine) Option {
	if e == nil {
		panic("doc2tex: WithEngine engine must not be nil")
	}
	return func(c *Converter) {
		c.engine = e
	}
}

// WithWorkers sets how many files Run converts concurrently. 1 is
// sequential, 0 sizes the pool from GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.cfg.workers = n
	}
}

// WithIntegrationFile makes Run write a file of that name into the output
// root, with one \input line per converted document.
func WithIntegrationFile(name string) Option {
	return func(c *Converter) {
		c.cfg.integrationFile = name
	}
}

// WithRepairer replaces the rule catalogue used by the repair pass.
func WithRepairer(r *repair.Repairer) Option {
	return func(c *Converter) {
		if r != nil {
			c.repairer = r
		}
	}
}
