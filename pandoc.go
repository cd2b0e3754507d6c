package doc2tex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/alnah/go-doc2tex/internal/fileutil"
	"github.com/alnah/go-doc2tex/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. Cancelling the context
// kills the command together with its children.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- executable comes from local config
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// pandocFormat maps a source kind to pandoc's reader name and a temp file
// extension pandoc recognizes.
var pandocFormat = map[SourceKind]struct{ reader, ext string }{
	KindDOCX:     {reader: "docx", ext: "docx"},
	KindMarkdown: {reader: "markdown-fancy_lists", ext: "md"},
}

// PandocEngine converts documents to LaTeX by invoking the Pandoc CLI.
type PandocEngine struct {
	Path   string
	Runner CommandRunner
}

// NewPandocEngine creates a PandocEngine with a real command runner.
// An empty path resolves "pandoc" from PATH.
func NewPandocEngine(path string) *PandocEngine {
	if path == "" {
		path = "pandoc"
	}
	return &PandocEngine{Path: path, Runner: &ExecRunner{}}
}

// Name returns "pandoc".
func (e *PandocEngine) Name() string { return "pandoc" }

// Translate writes the document to a temp file and runs
// pandoc -f <reader> -t latex on it. Uses markdown-fancy_lists so letter
// markers (A), B)) stay text instead of becoming lists.
func (e *PandocEngine) Translate(ctx context.Context, doc SourceDocument) (string, error) {
	format, ok := pandocFormat[doc.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Kind)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(doc.Data), format.ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	defer cleanup()

	stdout, stderr, err := e.Runner.Run(ctx, e.Path, "-f", format.reader, "-t", "latex", "--wrap=preserve", tmpPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w: %s", ErrEngine, ErrPandocNotFound, e.Path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrEngine, strings.TrimSpace(stderr), err)
	}

	return strings.TrimRight(stdout, "\n"), nil
}
