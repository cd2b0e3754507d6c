package latex

import "strings"

// Sectioning commands by heading level.
var headingCommands = [...]string{1: `\section`, 2: `\subsection`, 3: `\subsubsection`}

// Fragment accumulates LaTeX output line by line. List environments are
// opened lazily by the first list item and closed by the next non-list block,
// a switch between ordered and unordered items, or String.
type Fragment struct {
	lines    []string
	listOpen bool
	listEnv  string
}

// ListOpen reports whether a list environment is currently open.
func (f *Fragment) ListOpen() bool {
	return f.listOpen
}

// Heading emits a sectioning command. Levels outside 1-3 are clamped.
func (f *Fragment) Heading(level int, content string) {
	level = min(max(level, 1), 3)
	f.block(headingCommands[level] + "{" + content + "}")
}

// Paragraph emits a paragraph of already rendered content.
func (f *Fragment) Paragraph(content string) {
	f.block(content)
}

// Bold emits a paragraph wrapped in \textbf.
func (f *Fragment) Bold(content string) {
	f.block(`\textbf{` + content + `}`)
}

// Item emits a list item, opening the environment when needed.
func (f *Fragment) Item(content string, ordered bool) {
	env := "itemize"
	if ordered {
		env = "enumerate"
	}
	if f.listOpen && f.listEnv != env {
		f.closeList()
	}
	if !f.listOpen {
		f.separate()
		f.lines = append(f.lines, `\begin{`+env+`}`)
		f.listOpen = true
		f.listEnv = env
	}
	f.lines = append(f.lines, `\item `+content)
}

// Verbatim emits raw lines inside a verbatim environment.
func (f *Fragment) Verbatim(lines []string) {
	f.closeList()
	f.separate()
	f.lines = append(f.lines, `\begin{verbatim}`)
	f.lines = append(f.lines, lines...)
	f.lines = append(f.lines, `\end{verbatim}`)
}

// Emit renders a classified block, escaping its text once.
func (f *Fragment) Emit(b Block) {
	text := Escape(b.Text)
	switch b.Kind {
	case BlockHeading:
		f.Heading(b.Level, text)
	case BlockListItem:
		f.Item(text, b.Ordered)
	case BlockBoldParagraph:
		f.Bold(text)
	default:
		f.Paragraph(text)
	}
}

// String closes any open list and returns the accumulated LaTeX.
func (f *Fragment) String() string {
	f.closeList()
	return strings.Join(f.lines, "\n")
}

func (f *Fragment) block(line string) {
	f.closeList()
	f.separate()
	f.lines = append(f.lines, line)
}

// separate inserts a blank line unless the fragment is empty or already
// ends with one.
func (f *Fragment) separate() {
	if n := len(f.lines); n > 0 && f.lines[n-1] != "" {
		f.lines = append(f.lines, "")
	}
}

func (f *Fragment) closeList() {
	if !f.listOpen {
		return
	}
	f.lines = append(f.lines, `\end{`+f.listEnv+`}`)
	f.listOpen = false
	f.listEnv = ""
}

// TranslateParagraphs classifies and emits DOCX paragraphs in order.
func TranslateParagraphs(paragraphs []string) string {
	var f Fragment
	for _, p := range paragraphs {
		f.Emit(Classify(p))
	}
	return f.String()
}
