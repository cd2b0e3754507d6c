package main

import (
	"io"
	"os"

	"github.com/alnah/go-doc2tex/internal/config"
	"github.com/alnah/go-doc2tex/internal/repair"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Base configuration when no config file is named

	// Repairer used by the repair command; nil selects the default catalogue.
	Repairer *repair.Repairer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
