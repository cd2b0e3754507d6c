package main

import (
	"errors"

	doc2tex "github.com/alnah/go-doc2tex"
	"github.com/alnah/go-doc2tex/internal/config"
	"github.com/alnah/go-doc2tex/internal/hints"
)

// hintFor returns an actionable hint for a command error, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound([]string{err.Error()})
	case errors.Is(err, ErrNoInputArg):
		return hints.ForNoInput()
	case errors.Is(err, doc2tex.ErrPandocNotFound):
		return hints.ForPandocNotFound()
	case errors.Is(err, doc2tex.ErrWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrRepairNotConverged):
		return hints.ForRepairPasses()
	}
	return ""
}
