package doc2tex

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-doc2tex/internal/extract"
	"github.com/alnah/go-doc2tex/internal/fileutil"
	"github.com/alnah/go-doc2tex/internal/repair"
)

// Compile-time interface implementation checks.
var (
	_ Engine        = NativeEngine{}
	_ Engine        = (*PandocEngine)(nil)
	_ CommandRunner = (*ExecRunner)(nil)
)

// Converter orchestrates extraction, translation and repair.
// Create with NewConverter; a Converter is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	engine   Engine
	repairer *repair.Repairer
	logger   *slog.Logger
}

// NewConverter creates a Converter with default configuration: native
// engine, one repair pass, sequential batches, 100 MiB file limit.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			repair:       true,
			repairPasses: 1,
			maxFileSize:  extract.DefaultMaxFileSize,
			workers:      1,
		},
		engine:   NativeEngine{},
		repairer: repair.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if native, ok := c.engine.(NativeEngine); ok && native.MaxPartSize == 0 {
		c.engine = NativeEngine{MaxPartSize: c.cfg.maxFileSize}
	}
	if c.cfg.workers < 0 {
		return nil, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidOption, c.cfg.workers)
	}
	if name := c.cfg.integrationFile; name != "" {
		if strings.ContainsAny(name, "/\\\x00") || !strings.EqualFold(filepath.Ext(name), ".tex") {
			return nil, fmt.Errorf("%w: integration file must be a plain .tex file name, got %q", ErrInvalidOption, name)
		}
	}

	return c, nil
}

// Engine returns the translation engine in use.
func (c *Converter) Engine() Engine {
	return c.engine
}

// LoadSource reads the file at path into a SourceDocument. Read failures
// wrap ErrExtraction; unknown extensions return ErrUnsupportedFormat.
func LoadSource(path string, maxSize int64) (SourceDocument, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return SourceDocument{Path: path}, err
	}

	data, err := extract.ReadFile(path, maxSize)
	if err != nil {
		return SourceDocument{Path: path, Kind: kind}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	return SourceDocument{Path: path, Kind: kind, Data: data}, nil
}

// Convert translates one document and, unless disabled, runs the repair
// pass over the result. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (c *Converter) Convert(ctx context.Context, doc SourceDocument) (out *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := c.engine.Translate(ctx, doc)
	if err != nil {
		return nil, err
	}

	out = &Output{LaTeX: text}
	if !c.cfg.repair {
		return out, nil
	}

	out.LaTeX, out.Issues, out.Passes = c.repairer.Converge(text, c.cfg.repairPasses)
	for _, issue := range out.Issues {
		c.logger.Debug("repaired", "path", doc.Path, "kind", string(issue.Kind), "description", issue.Description)
	}
	return out, nil
}

// ConvertFile converts the source at inputPath and writes the LaTeX to
// outputPath, creating parent directories. Failures are reported in the
// result rather than returned.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
	}

	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		c.logger.Warn("conversion failed",
			"path", inputPath,
			"kind", string(ErrorKind(err)),
			"error", err)
		return result
	}

	doc, err := LoadSource(inputPath, c.cfg.maxFileSize)
	result.Kind = doc.Kind
	if err != nil {
		return fail(err)
	}

	out, err := c.Convert(ctx, doc)
	if err != nil {
		return fail(err)
	}

	content := out.LaTeX
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := fileutil.WriteFile(outputPath, content); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWrite, err))
	}

	result.Success = true
	result.ByteCount = len(content)
	result.Issues = out.Issues
	result.Duration = time.Since(start)

	c.logger.Info("converted",
		"path", inputPath,
		"output", outputPath,
		"engine", c.engine.Name(),
		"bytes", result.ByteCount,
		"count", len(out.Issues))
	return result
}
