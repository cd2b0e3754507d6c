package latex

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// inlineParser runs goldmark with the paragraph parser as the only block
// parser, so a line is never reinterpreted as a list, quote or heading and
// only inline constructs are recognized. Paragraph transformers are left out
// because the link reference transformer would swallow "[x]: url" lines.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

// urlEscaper protects the characters hyperref does not accept verbatim in
// \href and \url arguments.
var urlEscaper = strings.NewReplacer(`%`, `\%`, `#`, `\#`, `\`, `\textbackslash{}`)

// RenderInline converts the inline Markdown of a single block to LaTeX.
// Text nodes are escaped exactly once; emphasis, code spans and links become
// LaTeX commands around them.
func RenderInline(markdown string) string {
	if markdown == "" {
		return ""
	}
	src := []byte(markdown)
	doc := inlineParser.Parse(text.NewReader(src))

	var sb strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.PreviousSibling() != nil {
			sb.WriteByte(' ')
		}
		renderChildren(&sb, n, src)
	}
	return sb.String()
}

func renderChildren(sb *strings.Builder, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		renderNode(sb, c, src)
	}
}

func renderNode(sb *strings.Builder, n ast.Node, src []byte) {
	switch n := n.(type) {
	case *ast.Text:
		sb.WriteString(Escape(plainText(n.Segment.Value(src))))
		switch {
		case n.HardLineBreak():
			sb.WriteString(`\\` + "\n")
		case n.SoftLineBreak():
			sb.WriteByte(' ')
		}

	case *ast.String:
		if n.IsCode() {
			sb.WriteString(Escape(string(n.Value)))
		} else {
			sb.WriteString(Escape(plainText(n.Value)))
		}

	case *ast.Emphasis:
		cmd := `\emph{`
		if n.Level >= 2 {
			cmd = `\textbf{`
		}
		sb.WriteString(cmd)
		renderChildren(sb, n, src)
		sb.WriteByte('}')

	case *ast.CodeSpan:
		sb.WriteString(`\texttt{`)
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.WriteString(Escape(string(t.Segment.Value(src))))
			} else if s, ok := c.(*ast.String); ok {
				sb.WriteString(Escape(string(s.Value)))
			}
		}
		sb.WriteByte('}')

	case *ast.Link:
		sb.WriteString(`\href{` + urlEscaper.Replace(string(n.Destination)) + `}{`)
		renderChildren(sb, n, src)
		sb.WriteByte('}')

	case *ast.AutoLink:
		sb.WriteString(`\url{` + urlEscaper.Replace(string(n.URL(src))) + `}`)

	case *ast.Image:
		// Images are out of scope; keep the alt text.
		renderChildren(sb, n, src)

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.WriteString(Escape(string(seg.Value(src))))
		}

	default:
		renderChildren(sb, n, src)
	}
}

// plainText resolves Markdown backslash escapes and character references.
func plainText(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}
