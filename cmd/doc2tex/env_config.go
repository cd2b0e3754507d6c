package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-doc2tex/internal/config"
)

// envPrefix marks the variables doc2tex reads.
const envPrefix = "DOC2TEX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOC2TEX_CONFIG: config file name or path
	OutputDir  string // DOC2TEX_OUTPUT_DIR: default output directory
	Engine     string // DOC2TEX_ENGINE: native or pandoc
	Workers    int    // DOC2TEX_WORKERS: parallel workers
	workersSet bool
}

// knownEnvVars lists valid DOC2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOC2TEX_CONFIG":     true,
	"DOC2TEX_OUTPUT_DIR": true,
	"DOC2TEX_ENGINE":     true,
	"DOC2TEX_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable DOC2TEX_WORKERS is ignored with a warning.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOC2TEX_CONFIG"),
		OutputDir:  os.Getenv("DOC2TEX_OUTPUT_DIR"),
		Engine:     os.Getenv("DOC2TEX_ENGINE"),
	}

	if workers := os.Getenv("DOC2TEX_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n >= 0 {
			cfg.Workers = n
			cfg.workersSet = true
		} else {
			fmt.Fprintf(w, "warning: ignoring DOC2TEX_WORKERS=%q (want a non-negative integer)\n", workers)
		}
	}

	return cfg
}

// warnUnknownEnvVars writes warnings for unrecognized DOC2TEX_* variables.
// Helps catch typos like DOC2TEX_OUTPUTDIR instead of DOC2TEX_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Engine != "" {
		cfg.Engine.Name = strings.ToLower(env.Engine)
	}
	if env.workersSet {
		cfg.Workers = env.Workers
	}
}
