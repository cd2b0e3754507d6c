package main

import (
	"errors"
	"os"

	doc2tex "github.com/alnah/go-doc2tex"
	"github.com/alnah/go-doc2tex/internal/config"
)

// Exit codes for doc2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run, including partial batch failure without --strict
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input not found, permission denied, output not writable
	ExitStrict  = 4 // --strict and at least one file failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrStrictFailure) {
		return ExitStrict
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, doc2tex.ErrInvalidOption) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, doc2tex.ErrNoInput) ||
		errors.Is(err, doc2tex.ErrWrite) {
		return ExitIO
	}

	return ExitGeneral
}
