package doc2tex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-doc2tex/internal/fileutil"
)

// writeIntegrationFile writes name into root with one \input line per
// successful result, in result order. Paths are relative to root, use
// forward slashes and omit the .tex extension. Nothing is written when no
// file succeeded.
func writeIntegrationFile(root, name string, results []ConversionResult) (string, error) {
	path := filepath.Join(root, name)

	content, n := integrationContent(root, path, results)
	if n == 0 {
		return "", nil
	}

	if err := fileutil.WriteFile(path, content); err != nil {
		return path, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path, nil
}

func integrationContent(root, selfPath string, results []ConversionResult) (string, int) {
	var sb strings.Builder
	n := 0
	for _, res := range results {
		if !res.Success || filepath.Clean(res.OutputPath) == filepath.Clean(selfPath) {
			continue
		}
		rel, err := filepath.Rel(root, res.OutputPath)
		if err != nil {
			rel = res.OutputPath
		}
		rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		fmt.Fprintf(&sb, "\\input{%s}\n", rel)
		n++
	}
	return sb.String(), n
}
