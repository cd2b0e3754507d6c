package doc2tex_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	doc2tex "github.com/alnah/go-doc2tex"
	"github.com/alnah/go-doc2tex/internal/repair"
)

// fakeEngine returns fixed LaTeX or an error.
type fakeEngine struct {
	out   string
	err   error
	panic bool
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Translate(_ context.Context, _ doc2tex.SourceDocument) (string, error) {
	if f.panic {
		panic("boom")
	}
	return f.out, f.err
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []doc2tex.Option
		wantErr error
	}{
		{name: "defaults", opts: nil},
		{name: "integration file", opts: []doc2tex.Option{doc2tex.WithIntegrationFile("alle.tex")}},
		{name: "integration file with directory", opts: []doc2tex.Option{doc2tex.WithIntegrationFile("out/alle.tex")}, wantErr: doc2tex.ErrInvalidOption},
		{name: "integration file wrong extension", opts: []doc2tex.Option{doc2tex.WithIntegrationFile("alle.txt")}, wantErr: doc2tex.ErrInvalidOption},
		{name: "negative workers", opts: []doc2tex.Option{doc2tex.WithWorkers(-1)}, wantErr: doc2tex.ErrInvalidOption},
		{name: "nil logger falls back to default", opts: []doc2tex.Option{doc2tex.WithLogger(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := doc2tex.NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			if conv.Engine().Name() != "native" {
				t.Errorf("Engine().Name() = %q, want native", conv.Engine().Name())
			}
		})
	}
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	assertPanics := func(t *testing.T, name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		f()
	}

	assertPanics(t, "WithRepairPasses(0)", func() { doc2tex.WithRepairPasses(0) })
	assertPanics(t, "WithEngine(nil)", func() { doc2tex.WithEngine(nil) })
}

// ---------------------------------------------------------------------------
// TestConvert - In-memory conversion
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("markdown heading and paragraph", func(t *testing.T) {
		t.Parallel()

		conv, err := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		if err != nil {
			t.Fatal(err)
		}
		out, err := conv.Convert(ctx, doc2tex.SourceDocument{
			Kind: doc2tex.KindMarkdown,
			Data: []byte("# Title\n\nHello & world"),
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		want := "\\section{Title}\n\nHello \\& world"
		if out.LaTeX != want {
			t.Errorf("LaTeX = %q, want %q", out.LaTeX, want)
		}
		if len(out.Issues) != 0 {
			t.Errorf("Issues = %v, want none", out.Issues)
		}
	})

	t.Run("docx paragraphs", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		out, err := conv.Convert(ctx, doc2tex.SourceDocument{
			Kind: doc2tex.KindDOCX,
			Data: buildDocx(t, "EINLEITUNG", "Text & mehr"),
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		want := "\\subsection{EINLEITUNG}\n\nText \\& mehr"
		if out.LaTeX != want {
			t.Errorf("LaTeX = %q, want %q", out.LaTeX, want)
		}
	})

	t.Run("corrupt docx is an extraction error", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		_, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX, Data: []byte("not a zip")})
		if !errors.Is(err, doc2tex.ErrExtraction) {
			t.Errorf("Convert() error = %v, want ErrExtraction", err)
		}
	})

	t.Run("repair applied to engine output", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(
			doc2tex.WithLogger(discardLogger()),
			doc2tex.WithEngine(&fakeEngine{out: `Safe-Words \\& Signalsysteme`}),
		)
		out, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if out.LaTeX != `Safe-Words \& Signalsysteme` {
			t.Errorf("LaTeX = %q", out.LaTeX)
		}
		if len(out.Issues) != 1 || out.Issues[0].Kind != repair.DoubleAmpersand {
			t.Errorf("Issues = %v, want one DOUBLE_AMPERSAND", out.Issues)
		}
		if out.Passes != 1 {
			t.Errorf("Passes = %d, want 1", out.Passes)
		}
	})

	t.Run("fenced code keeps its text through repair", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		out, err := conv.Convert(ctx, doc2tex.SourceDocument{
			Kind: doc2tex.KindMarkdown,
			Data: []byte("```\n\\ul{x} and a \\\\& b\n\\texorpdfstring{A}{B}\n```\n"),
		})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		want := "\\begin{verbatim}\n\\ul{x} and a \\\\& b\n\\texorpdfstring{A}{B}\n\\end{verbatim}"
		if out.LaTeX != want {
			t.Errorf("LaTeX = %q, want %q", out.LaTeX, want)
		}
		if len(out.Issues) != 0 {
			t.Errorf("Issues = %v, want none", out.Issues)
		}
	})

	t.Run("size limit applies to the unpacked docx body", func(t *testing.T) {
		t.Parallel()

		// Repetitive text compresses well below the limit but unpacks
		// far above it.
		data := buildDocx(t, strings.Repeat("Absatz ", 2000))
		if len(data) >= 2048 {
			t.Fatalf("setup: compressed docx is %d bytes, want < 2048", len(data))
		}

		conv, _ := doc2tex.NewConverter(
			doc2tex.WithLogger(discardLogger()),
			doc2tex.WithMaxFileSize(2048),
		)
		_, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX, Data: data})
		if !errors.Is(err, doc2tex.ErrFileTooLarge) {
			t.Errorf("Convert() error = %v, want ErrFileTooLarge", err)
		}
	})

	t.Run("repair disabled", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(
			doc2tex.WithLogger(discardLogger()),
			doc2tex.WithRepair(false),
			doc2tex.WithEngine(&fakeEngine{out: `a \\& b`}),
		)
		out, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX})
		if err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		if out.LaTeX != `a \\& b` || len(out.Issues) != 0 {
			t.Errorf("Convert() = %q, %v; want unchanged text and no issues", out.LaTeX, out.Issues)
		}
	})

	t.Run("engine error passed through", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithEngine(&fakeEngine{err: doc2tex.ErrEngine}))
		_, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX})
		if !errors.Is(err, doc2tex.ErrEngine) {
			t.Errorf("Convert() error = %v, want ErrEngine", err)
		}
	})

	t.Run("panic recovered", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithEngine(&fakeEngine{panic: true}))
		_, err := conv.Convert(ctx, doc2tex.SourceDocument{Kind: doc2tex.KindDOCX})
		if err == nil {
			t.Error("Convert() error = nil, want internal error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		conv, _ := doc2tex.NewConverter()
		_, err := conv.Convert(cctx, doc2tex.SourceDocument{Kind: doc2tex.KindMarkdown})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Convert() error = %v, want context.Canceled", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile - File conversion
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes tex with trailing newline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "notes.md")
		out := filepath.Join(dir, "build", "notes.tex")
		writeFile(t, in, []byte("- one\n- two\n"))

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		res := conv.ConvertFile(ctx, in, out)
		if !res.Success || res.Err != nil {
			t.Fatalf("ConvertFile() = %+v", res)
		}
		want := "\\begin{itemize}\n\\item one\n\\item two\n\\end{itemize}\n"
		if got := readFile(t, out); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
		if res.ByteCount != len(want) {
			t.Errorf("ByteCount = %d, want %d", res.ByteCount, len(want))
		}
		if res.Kind != doc2tex.KindMarkdown {
			t.Errorf("Kind = %q, want markdown", res.Kind)
		}
	})

	t.Run("empty document writes empty file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "leer.docx")
		out := filepath.Join(dir, "leer.tex")
		writeFile(t, in, buildDocx(t))

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		res := conv.ConvertFile(ctx, in, out)
		if !res.Success {
			t.Fatalf("ConvertFile() error = %v", res.Err)
		}
		if got := readFile(t, out); got != "" {
			t.Errorf("output = %q, want empty", got)
		}
	})

	t.Run("oversized file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "gross.md")
		writeFile(t, in, []byte("0123456789abcdef"))

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()), doc2tex.WithMaxFileSize(8))
		res := conv.ConvertFile(ctx, in, filepath.Join(dir, "gross.tex"))
		if res.Success || !errors.Is(res.Err, doc2tex.ErrFileTooLarge) {
			t.Errorf("ConvertFile() err = %v, want ErrFileTooLarge", res.Err)
		}
		if doc2tex.ErrorKind(res.Err) != doc2tex.ExtractionError {
			t.Errorf("ErrorKind = %s, want ExtractionError", doc2tex.ErrorKind(res.Err))
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeFile(t, in, []byte("text"))
		blocker := filepath.Join(dir, "blocker")
		writeFile(t, blocker, nil)

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		res := conv.ConvertFile(ctx, in, filepath.Join(blocker, "a.tex"))
		if !errors.Is(res.Err, doc2tex.ErrWrite) {
			t.Errorf("ConvertFile() err = %v, want ErrWrite", res.Err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		conv, _ := doc2tex.NewConverter(doc2tex.WithLogger(discardLogger()))
		res := conv.ConvertFile(ctx, filepath.Join(t.TempDir(), "fehlt.docx"), "out.tex")
		if !errors.Is(res.Err, doc2tex.ErrExtraction) || !errors.Is(res.Err, os.ErrNotExist) {
			t.Errorf("ConvertFile() err = %v, want ErrExtraction wrapping ErrNotExist", res.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDetectKind - Extension mapping
// ---------------------------------------------------------------------------

func TestDetectKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    doc2tex.SourceKind
		wantErr bool
	}{
		{path: "a.docx", want: doc2tex.KindDOCX},
		{path: "A.DOCX", want: doc2tex.KindDOCX},
		{path: "b.md", want: doc2tex.KindMarkdown},
		{path: "dir/c.Markdown", want: doc2tex.KindMarkdown},
		{path: "d.doc", wantErr: true},
		{path: "e.tex", wantErr: true},
		{path: "README", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := doc2tex.DetectKind(tt.path)
			if tt.wantErr {
				if !errors.Is(err, doc2tex.ErrUnsupportedFormat) {
					t.Errorf("DetectKind(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DetectKind(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	t.Parallel()

	got := doc2tex.SupportedExtensions()
	want := []string{".docx", ".markdown", ".md"}
	if len(got) != len(want) {
		t.Fatalf("SupportedExtensions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SupportedExtensions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// ---------------------------------------------------------------------------
// TestErrorKind - Failure classification
// ---------------------------------------------------------------------------

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want doc2tex.FailureKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "extraction", err: doc2tex.ErrExtraction, want: doc2tex.ExtractionError},
		{name: "too large", err: doc2tex.ErrFileTooLarge, want: doc2tex.ExtractionError},
		{name: "unsupported", err: doc2tex.ErrUnsupportedFormat, want: doc2tex.UnsupportedFormatError},
		{name: "write", err: doc2tex.ErrWrite, want: doc2tex.WriteError},
		{name: "engine", err: doc2tex.ErrEngine, want: doc2tex.EngineError},
		{name: "other", err: errors.New("x"), want: doc2tex.GenericError},
		{name: "cancelled", err: context.Canceled, want: doc2tex.GenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := doc2tex.ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
