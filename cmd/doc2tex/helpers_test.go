package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-doc2tex/internal/config"
)

// testEnv returns an Environment capturing output, with quiet logging so
// log records do not mix into assertions on stderr.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	return &Environment{Stdout: &stdout, Stderr: &stderr, Config: cfg}, &stdout, &stderr
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
