package latex

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BlockKind is the closed set of block variants produced by classification.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
	BlockBoldParagraph
)

// String returns the variant name used in logs and test output.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockListItem:
		return "list-item"
	case BlockBoldParagraph:
		return "bold-paragraph"
	default:
		return "paragraph"
	}
}

// Block is one classified unit of text, not yet escaped.
type Block struct {
	Kind    BlockKind
	Level   int    // heading level 1-3, zero otherwise
	Text    string // content with list prefixes and bold markers removed
	Ordered bool   // numbered list item
}

// maxHeadingRunes is the exclusive length limit for all-caps headings.
const maxHeadingRunes = 80

var (
	// Numbered list prefix: "1. ", "12) "
	numberedPrefix = regexp.MustCompile(`^\d+[.)]\s+`)

	bulletGlyphs   = []string{"•", "·", "▪", "▫", "-"}
	emphasisGlyphs = []string{"►", "▶", "➔", "→", "✓", "✔", "⚠", "❗"}
)

// Classify maps a DOCX paragraph to a block. The heuristics are evaluated in
// order and the first match wins; anything unmatched is a plain paragraph.
func Classify(p string) Block {
	if isShortUppercase(p) {
		return Block{Kind: BlockHeading, Level: 2, Text: p}
	}

	if loc := numberedPrefix.FindStringIndex(p); loc != nil {
		return Block{Kind: BlockListItem, Text: p[loc[1]:], Ordered: true}
	}
	for _, g := range bulletGlyphs {
		if strings.HasPrefix(p, g) {
			return Block{Kind: BlockListItem, Text: strings.TrimLeftFunc(p[len(g):], unicode.IsSpace)}
		}
	}

	if strings.Contains(p, "**") {
		return Block{Kind: BlockBoldParagraph, Text: strings.TrimSpace(strings.ReplaceAll(p, "**", ""))}
	}
	for _, g := range emphasisGlyphs {
		if strings.HasPrefix(p, g) {
			return Block{Kind: BlockBoldParagraph, Text: p}
		}
	}

	return Block{Kind: BlockParagraph, Text: p}
}

// isShortUppercase reports whether s has at least one letter, no lowercase
// letters and fewer than maxHeadingRunes runes.
func isShortUppercase(s string) bool {
	if utf8.RuneCountInString(s) >= maxHeadingRunes {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
