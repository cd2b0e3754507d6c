// Package extract pulls paragraph-level text out of source documents.
//
// DOCX files are ZIP archives; the body lives in word/document.xml under the
// WordprocessingML namespace. Markdown sources are passed through as text and
// split into lines later by the Markdown translator.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// WordprocessingMLNamespace is the XML namespace of w:p and w:t elements.
const WordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// documentPart is the archive entry holding the document body.
const documentPart = "word/document.xml"

// DefaultMaxFileSize bounds source files and the decompressed document part.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// Sentinel errors for extraction.
var (
	ErrExtraction   = errors.New("extraction failed")
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)

// DocxFile reads the file at path and extracts its paragraphs.
// A maxSize <= 0 selects DefaultMaxFileSize.
func DocxFile(path string, maxSize int64) ([]string, error) {
	data, err := ReadFile(path, maxSize)
	if err != nil {
		return nil, err
	}
	return docx(data, limitOrDefault(maxSize))
}

// Docx extracts the non-empty paragraphs of a DOCX document held in memory.
// Paragraph order follows the document; each paragraph is the trimmed
// concatenation of its w:t runs.
func Docx(data []byte) ([]string, error) {
	return docx(data, DefaultMaxFileSize)
}

// DocxLimit is Docx with a cap on the decompressed size of
// word/document.xml. A maxPart <= 0 selects DefaultMaxFileSize.
func DocxLimit(data []byte, maxPart int64) ([]string, error) {
	return docx(data, limitOrDefault(maxPart))
}

func docx(data []byte, maxPart int64) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open zip: %v", ErrExtraction, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%w: %s not found in archive", ErrExtraction, documentPart)
	}
	if docFile.UncompressedSize64 > uint64(maxPart) {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrFileTooLarge, documentPart, docFile.UncompressedSize64, maxPart)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExtraction, documentPart, err)
	}
	defer rc.Close()

	paragraphs, err := parseDocumentXML(io.LimitReader(rc, maxPart))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return paragraphs, nil
}

// parseDocumentXML walks the token stream of document.xml. Paragraphs can
// nest (text boxes inside a paragraph), so open paragraphs form a stack and
// each one is emitted when its end tag is seen.
func parseDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		open       []*strings.Builder
		inText     int
		sawRoot    bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawRoot = true
			if t.Name.Space != WordprocessingMLNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText++
			}

		case xml.CharData:
			if inText > 0 && len(open) > 0 {
				open[len(open)-1].Write(t)
			}

		case xml.EndElement:
			if t.Name.Space != WordprocessingMLNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "p":
				if len(open) == 0 {
					continue
				}
				current := open[len(open)-1]
				open = open[:len(open)-1]
				text := strings.TrimSpace(norm.NFC.String(current.String()))
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}

	if !sawRoot {
		return nil, errors.New("parse xml: empty document")
	}
	return paragraphs, nil
}

func limitOrDefault(maxSize int64) int64 {
	if maxSize <= 0 {
		return DefaultMaxFileSize
	}
	return maxSize
}

// ReadFile reads a whole file, refusing files larger than maxSize.
// A maxSize <= 0 selects DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	maxSize = limitOrDefault(maxSize)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), maxSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
