package doc2tex

import (
	"errors"

	"github.com/alnah/go-doc2tex/internal/extract"
)

// Sentinel errors for library operations.
var (
	ErrExtraction        = extract.ErrExtraction
	ErrFileTooLarge      = extract.ErrFileTooLarge
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrWrite             = errors.New("writing output failed")
	ErrEngine            = errors.New("conversion engine failed")
	ErrPandocNotFound    = errors.New("pandoc executable not found")
	ErrNoInput           = errors.New("input not found")
	ErrInvalidOption     = errors.New("invalid option")
)

// FailureKind classifies a per-file failure for reports and exit codes.
type FailureKind string

const (
	ExtractionError        FailureKind = "ExtractionError"
	UnsupportedFormatError FailureKind = "UnsupportedFormatError"
	WriteError             FailureKind = "WriteError"
	EngineError            FailureKind = "EngineError"
	GenericError           FailureKind = "Error"
)

// ErrorKind maps err onto a FailureKind. A nil error has no kind.
func ErrorKind(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExtraction), errors.Is(err, ErrFileTooLarge):
		return ExtractionError
	case errors.Is(err, ErrUnsupportedFormat):
		return UnsupportedFormatError
	case errors.Is(err, ErrWrite):
		return WriteError
	case errors.Is(err, ErrEngine):
		return EngineError
	default:
		return GenericError
	}
}
