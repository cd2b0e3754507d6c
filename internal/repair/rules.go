package repair

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one entry of the repair catalogue. Apply returns the fixed text
// and the number of places it changed; Describe turns that count into a
// human-readable issue description.
type Rule struct {
	Kind     IssueKind
	Name     string
	Apply    func(text string) (string, int)
	Describe func(count int) string
}

// DefaultRules returns the built-in catalogue in application order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kind:  DoubleAmpersand,
			Name:  "double-escaped ampersand",
			Apply: fixDoubleAmpersand,
			Describe: func(n int) string {
				return fmt.Sprintf(`replaced %d double-escaped ampersand(s) "\\&" with "\&"`, n)
			},
		},
		{
			Kind:  HypertargetWrapper,
			Name:  "hypertarget wrapper",
			Apply: unwrapHypertargets,
			Describe: func(n int) string {
				return fmt.Sprintf(`removed %d \hypertarget wrapper(s) and their \label; converter artifacts around the wrapped content`, n)
			},
		},
		{
			Kind:  TexorpdfstringWrapper,
			Name:  "texorpdfstring wrapper",
			Apply: unwrapTexorpdfstring,
			Describe: func(n int) string {
				return fmt.Sprintf(`unwrapped %d \texorpdfstring{A}{B} to A; the PDF-bookmark fallback is dropped`, n)
			},
		},
		{
			Kind:  QuoteWrappedListItem,
			Name:  "quote-wrapped list item",
			Apply: flattenQuotedItems,
			Describe: func(n int) string {
				return fmt.Sprintf(`flattened %d list item(s) whose body was wrapped in a quote environment`, n)
			},
		},
		{
			Kind:  ULMacro,
			Name:  "ul macro",
			Apply: replaceULMacro,
			Describe: func(n int) string {
				return fmt.Sprintf(`replaced %d \ul{...} with \underline{...}; \ul is not defined by the target style`, n)
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Double-escaped ampersand
// ---------------------------------------------------------------------------

// backslashesBeforeAmp matches a maximal backslash run followed by "&".
// Matching the whole run keeps "\\\&" (line break + escaped ampersand) intact.
var backslashesBeforeAmp = regexp.MustCompile(`\\+&`)

func fixDoubleAmpersand(text string) (string, int) {
	count := 0
	out := backslashesBeforeAmp.ReplaceAllStringFunc(text, func(m string) string {
		if len(m) != 3 {
			return m
		}
		count++
		return `\&`
	})
	return out, count
}

// ---------------------------------------------------------------------------
// \hypertarget{ID}{%<body>}\label{ID}
// ---------------------------------------------------------------------------

const hypertargetCmd = `\hypertarget{`

func unwrapHypertargets(text string) (string, int) {
	count := 0
	for from := 0; ; {
		i := indexCommand(text, hypertargetCmd, from)
		if i < 0 {
			return text, count
		}

		id, idEnd, ok := braceGroup(text, i+len(hypertargetCmd)-1)
		if !ok || idEnd >= len(text) || text[idEnd] != '{' {
			from = i + len(hypertargetCmd)
			continue
		}
		body, bodyEnd, ok := braceGroup(text, idEnd)
		if !ok || !strings.HasPrefix(body, "%") {
			from = i + len(hypertargetCmd)
			continue
		}

		end := bodyEnd
		if label := `\label{` + id + `}`; strings.HasPrefix(text[end:], label) {
			end += len(label)
		}

		body = strings.TrimPrefix(body, "%")
		body = strings.TrimPrefix(body, "\r")
		body = strings.TrimPrefix(body, "\n")
		body = strings.TrimSuffix(body, "\n")
		body = strings.TrimSuffix(body, "\r")

		text = text[:i] + body + text[end:]
		count++
		// Rescan from the start of the body so nested wrappers collapse in
		// the same pass.
		from = i
	}
}

// ---------------------------------------------------------------------------
// \texorpdfstring{A}{B}
// ---------------------------------------------------------------------------

const texorpdfCmd = `\texorpdfstring{`

func unwrapTexorpdfstring(text string) (string, int) {
	count := 0
	for from := 0; ; {
		i := indexCommand(text, texorpdfCmd, from)
		if i < 0 {
			return text, count
		}

		rich, richEnd, ok := braceGroup(text, i+len(texorpdfCmd)-1)
		if !ok || richEnd >= len(text) || text[richEnd] != '{' {
			from = i + len(texorpdfCmd)
			continue
		}
		_, end, ok := braceGroup(text, richEnd)
		if !ok {
			from = i + len(texorpdfCmd)
			continue
		}

		text = text[:i] + rich + text[end:]
		count++
		from = i
	}
}

// ---------------------------------------------------------------------------
// \item \begin{quote} ... \end{quote}
// ---------------------------------------------------------------------------

var quotedItem = regexp.MustCompile(`\\item[ \t]*\r?\n?[ \t]*\\begin\{quote\}\s*([\s\S]*?)\s*\\end\{quote\}`)

// itemTerminators may follow a flattened item; anything else means the quote
// was only part of the item body.
var itemTerminators = []string{`\item`, `\end{itemize}`, `\end{enumerate}`, `\end{description}`}

func flattenQuotedItems(text string) (string, int) {
	matches := quotedItem.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text, 0
	}

	var sb strings.Builder
	count, last := 0, 0
	for _, m := range matches {
		start, end := m[0], m[1]
		body := text[m[2]:m[3]]
		if isEscaped(text, start) || strings.Contains(body, `\begin{quote}`) || !endsItem(text[end:]) {
			continue
		}
		sb.WriteString(text[last:start])
		sb.WriteString(`\item ` + body)
		last = end
		count++
	}
	sb.WriteString(text[last:])
	return sb.String(), count
}

func endsItem(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return true
	}
	for _, t := range itemTerminators {
		if strings.HasPrefix(rest, t) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// \ul{...}
// ---------------------------------------------------------------------------

var ulMacro = regexp.MustCompile(`\\+ul[ \t]*\{`)

func replaceULMacro(text string) (string, int) {
	count := 0
	out := ulMacro.ReplaceAllStringFunc(text, func(m string) string {
		run := strings.IndexFunc(m, func(r rune) bool { return r != '\\' })
		if run%2 == 0 {
			return m
		}
		count++
		return m[:run-1] + `\underline{`
	})
	return out, count
}

// ---------------------------------------------------------------------------
// Verbatim protection
// ---------------------------------------------------------------------------

var verbatimBegin = regexp.MustCompile(`\\begin\{(verbatim\*?|Verbatim|lstlisting|minted)\}`)

// verbatimSpans returns the [start, end) ranges of verbatim-like
// environments. An environment without its \end runs to the end of text.
func verbatimSpans(text string) [][2]int {
	var spans [][2]int
	for from := 0; from < len(text); {
		loc := verbatimBegin.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			break
		}
		start := from + loc[0]
		if isEscaped(text, start) {
			from = start + 1
			continue
		}
		closing := `\end{` + text[from+loc[2]:from+loc[3]] + `}`
		end := len(text)
		if j := strings.Index(text[from+loc[1]:], closing); j >= 0 {
			end = from + loc[1] + j + len(closing)
		}
		spans = append(spans, [2]int{start, end})
		from = end
	}
	return spans
}

// applyOutsideVerbatim runs apply on the text between verbatim spans and
// copies the spans through unchanged.
func applyOutsideVerbatim(apply func(string) (string, int), text string) (string, int) {
	spans := verbatimSpans(text)
	if len(spans) == 0 {
		return apply(text)
	}

	var sb strings.Builder
	total, last := 0, 0
	for _, span := range spans {
		fixed, n := apply(text[last:span[0]])
		sb.WriteString(fixed)
		sb.WriteString(text[span[0]:span[1]])
		total += n
		last = span[1]
	}
	fixed, n := apply(text[last:])
	sb.WriteString(fixed)
	return sb.String(), total + n
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

// indexCommand finds cmd at or after from, skipping occurrences whose
// leading backslash is itself escaped.
func indexCommand(text, cmd string, from int) int {
	for from <= len(text) {
		j := strings.Index(text[from:], cmd)
		if j < 0 {
			return -1
		}
		i := from + j
		if !isEscaped(text, i) {
			return i
		}
		from = i + 1
	}
	return -1
}

// isEscaped reports whether the character at i is preceded by an odd number
// of backslashes.
func isEscaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// braceGroup reads the balanced group opening at text[open] == '{'. It
// returns the content without the outer braces and the index just past the
// closing brace. Escaped braces do not count.
func braceGroup(text string, open int) (string, int, bool) {
	if open >= len(text) || text[open] != '{' {
		return "", 0, false
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open+1 : i], i + 1, true
			}
		}
	}
	return "", 0, false
}
