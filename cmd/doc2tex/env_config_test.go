package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-doc2tex/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("DOC2TEX_CONFIG", "/path/to/config.yaml")
		t.Setenv("DOC2TEX_OUTPUT_DIR", "/out")
		t.Setenv("DOC2TEX_ENGINE", "Pandoc")
		t.Setenv("DOC2TEX_WORKERS", "4")

		var w bytes.Buffer
		cfg := loadEnvConfig(&w)

		if cfg.ConfigPath != "/path/to/config.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.OutputDir != "/out" {
			t.Errorf("OutputDir = %q", cfg.OutputDir)
		}
		if cfg.Engine != "Pandoc" {
			t.Errorf("Engine = %q", cfg.Engine)
		}
		if cfg.Workers != 4 || !cfg.workersSet {
			t.Errorf("Workers = %d (set=%v), want 4", cfg.Workers, cfg.workersSet)
		}
		if w.Len() != 0 {
			t.Errorf("unexpected warning: %q", w.String())
		}
	})

	t.Run("invalid workers ignored with warning", func(t *testing.T) {
		for _, value := range []string{"abc", "-1"} {
			t.Setenv("DOC2TEX_WORKERS", value)

			var w bytes.Buffer
			cfg := loadEnvConfig(&w)
			if cfg.workersSet {
				t.Errorf("DOC2TEX_WORKERS=%q: workersSet = true", value)
			}
			if !strings.Contains(w.String(), "DOC2TEX_WORKERS") {
				t.Errorf("DOC2TEX_WORKERS=%q: warning = %q", value, w.String())
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("DOC2TEX_OUTPUTDIR", "/typo")
	t.Setenv("DOC2TEX_ENGINE", "native")

	var w bytes.Buffer
	warnUnknownEnvVars(&w)

	if !strings.Contains(w.String(), "DOC2TEX_OUTPUTDIR") {
		t.Errorf("expected warning for DOC2TEX_OUTPUTDIR, got %q", w.String())
	}
	if strings.Contains(w.String(), "DOC2TEX_ENGINE") {
		t.Errorf("known variable reported as unknown: %q", w.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.DefaultDir = "/from-file"
	cfg.Workers = 2

	applyEnvConfig(&envConfig{OutputDir: "/from-env", Engine: "PANDOC"}, cfg)

	if cfg.Output.DefaultDir != "/from-env" {
		t.Errorf("Output.DefaultDir = %q, want env value", cfg.Output.DefaultDir)
	}
	if cfg.Engine.Name != config.EnginePandoc {
		t.Errorf("Engine.Name = %q, want pandoc", cfg.Engine.Name)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want file value 2 when env unset", cfg.Workers)
	}
}

func TestRun_EnvOutputDirAndFlagPrecedence(t *testing.T) {
	in := t.TempDir()
	envOut := t.TempDir()
	flagOut := t.TempDir()
	writeTestFile(t, filepath.Join(in, "a.md"), "A")

	t.Setenv("DOC2TEX_OUTPUT_DIR", envOut)

	env, _, stderr := testEnv()
	if code := run(context.Background(), []string{in}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr.String())
	}
	if got := readTestFile(t, filepath.Join(envOut, "a.tex")); got != "A\n" {
		t.Errorf("env output a.tex = %q", got)
	}

	env, _, stderr = testEnv()
	if code := run(context.Background(), []string{in, "-o", flagOut}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, stderr.String())
	}
	if got := readTestFile(t, filepath.Join(flagOut, "a.tex")); got != "A\n" {
		t.Errorf("flag output a.tex = %q", got)
	}
}

func TestRun_EnvConfigPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "doc2tex.yaml")
	writeTestFile(t, cfgPath, "repair:\n  maxPasses: 42\n")
	writeTestFile(t, filepath.Join(dir, "a.md"), "A")

	t.Setenv("DOC2TEX_CONFIG", cfgPath)

	env, _, _ := testEnv()
	if code := run(context.Background(), []string{dir}, env); code != ExitUsage {
		t.Errorf("exit = %d, want %d for invalid config named by DOC2TEX_CONFIG", code, ExitUsage)
	}
}
