// Package latex translates extracted document text into LaTeX fragments.
//
// The package covers three stages:
//   - escaping of plain text (Escape)
//   - heuristic classification of paragraphs into blocks (Classify)
//   - block emission with balanced list environments (Fragment), fed either
//     by DOCX paragraphs (TranslateParagraphs) or Markdown lines
//     (TranslateMarkdown)
//
// No LaTeX is parsed or validated here; the output is plain text meant to be
// \input by a template.
package latex

import "strings"

// escaper substitutes LaTeX-special characters and German typographic
// punctuation. strings.Replacer scans its input once and never rescans
// replacement text, so the braces in \textbackslash{} are not re-escaped.
var escaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`\`, `\textbackslash{}`,
	"„", "\"`", // „ opening German quote
	"“", `"'`, // “ closing German quote
	"–", `--`, // en dash
	"—", `---`, // em dash
)

// Escape maps arbitrary text to LaTeX-safe text.
// Text without special characters is returned unchanged.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return escaper.Replace(text)
}
