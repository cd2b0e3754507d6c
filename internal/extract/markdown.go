package extract

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// MarkdownFile reads a Markdown source as UTF-8 text.
// A maxSize <= 0 selects DefaultMaxFileSize.
func MarkdownFile(path string, maxSize int64) (string, error) {
	data, err := ReadFile(path, maxSize)
	if err != nil {
		return "", err
	}
	return Markdown(data), nil
}

// Markdown returns the source text with a leading BOM removed, line endings
// normalized to \n and invalid UTF-8 replaced by U+FFFD. No segmentation is
// done here; the translator works line by line.
func Markdown(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return crlfOrCR.ReplaceAllString(text, "\n")
}
