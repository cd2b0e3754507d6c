package latex

import (
	"regexp"
	"strings"
)

// Precompiled line patterns for the Markdown translator.
var (
	// ATX heading: "# ", "## ", ... up to six hashes
	mdHeading = regexp.MustCompile(`^(#{1,6})\s+(.*?)(?:\s+#+)?\s*$`)

	// Bullet item: "- ", "* ", "+ "
	mdBullet = regexp.MustCompile(`^\s{0,3}[-*+]\s+(.*)$`)

	// Ordered item: "1. ", "2) "
	mdOrdered = regexp.MustCompile(`^\s{0,3}\d+[.)]\s+(.*)$`)

	// Whole-line bold: "**text**"
	mdBoldLine = regexp.MustCompile(`^\*\*(.+)\*\*$`)

	// Code fence opener/closer
	mdFence = regexp.MustCompile("^\\s{0,3}(```+|~~~+)")
)

// TranslateMarkdown converts Markdown text to LaTeX line by line.
// Recognized blocks are headings (levels above 3 clamp to 3), bullet and
// numbered list items, whole-line bold paragraphs and fenced code; every
// other non-blank line is a paragraph. Blank lines separate blocks but do not
// close an open list.
func TranslateMarkdown(markdown string) string {
	var f Fragment

	lines := strings.Split(markdown, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t\r")

		if m := mdFence.FindStringSubmatch(line); m != nil {
			body, next := fencedBody(lines, i+1, m[1])
			f.Verbatim(body)
			i = next
			continue
		}

		b, ok := classifyMarkdownLine(line)
		if !ok {
			continue
		}
		switch b.Kind {
		case BlockHeading:
			f.Heading(b.Level, RenderInline(b.Text))
		case BlockListItem:
			f.Item(RenderInline(b.Text), b.Ordered)
		case BlockBoldParagraph:
			f.Bold(RenderInline(b.Text))
		default:
			f.Paragraph(RenderInline(b.Text))
		}
	}

	return f.String()
}

// classifyMarkdownLine maps one line to a block. It returns false for blank
// lines, which carry no block.
func classifyMarkdownLine(line string) (Block, bool) {
	if strings.TrimSpace(line) == "" {
		return Block{}, false
	}

	if m := mdHeading.FindStringSubmatch(line); m != nil {
		return Block{Kind: BlockHeading, Level: min(len(m[1]), 3), Text: m[2]}, true
	}
	if m := mdBoldLine.FindStringSubmatch(line); m != nil && !strings.Contains(m[1], "**") {
		return Block{Kind: BlockBoldParagraph, Text: m[1]}, true
	}
	if m := mdBullet.FindStringSubmatch(line); m != nil {
		return Block{Kind: BlockListItem, Text: m[1]}, true
	}
	if m := mdOrdered.FindStringSubmatch(line); m != nil {
		return Block{Kind: BlockListItem, Text: m[1], Ordered: true}, true
	}

	return Block{Kind: BlockParagraph, Text: strings.TrimSpace(line)}, true
}

// fencedBody collects lines until a fence of the same kind closes the block.
// It returns the body and the index of the closing fence line (or the last
// line when the fence is never closed).
func fencedBody(lines []string, start int, fence string) ([]string, int) {
	marker := fence[:1]
	var body []string
	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, marker) == "" {
			return body, i
		}
		body = append(body, strings.TrimRight(lines[i], "\r"))
	}
	return body, len(lines) - 1
}
