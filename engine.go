package doc2tex

import (
	"context"
	"fmt"

	"github.com/alnah/go-doc2tex/internal/extract"
	"github.com/alnah/go-doc2tex/internal/latex"
)

// Engine turns a source document into a LaTeX fragment.
type Engine interface {
	Name() string
	Translate(ctx context.Context, doc SourceDocument) (string, error)
}

// NativeEngine extracts and translates documents in-process.
type NativeEngine struct {
	// MaxPartSize caps the decompressed document.xml of a DOCX source.
	// Zero selects the extractor default.
	MaxPartSize int64
}

// Name returns "native".
func (NativeEngine) Name() string { return "native" }

// Translate runs the extractor matching doc.Kind and the corresponding
// translator. DOCX paragraphs go through block classification; Markdown is
// translated line by line with inline markup.
func (e NativeEngine) Translate(ctx context.Context, doc SourceDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch doc.Kind {
	case KindDOCX:
		paragraphs, err := extract.DocxLimit(doc.Data, e.MaxPartSize)
		if err != nil {
			return "", err
		}
		return latex.TranslateParagraphs(paragraphs), nil
	case KindMarkdown:
		return latex.TranslateMarkdown(extract.Markdown(doc.Data)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Kind)
	}
}
