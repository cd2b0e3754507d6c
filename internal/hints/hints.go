// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-doc2tex/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints for a missing pandoc executable.
// Detects CI/Docker environment and suggests installing pandoc into the image.
func ForPandocNotFound() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "install pandoc in the image or runner")
	} else {
		hints = append(hints, "install pandoc or set engine.pandocPath")
	}
	hints = append(hints, "use --engine native to convert without pandoc")

	return formatHints(hints)
}

// ForExtraction returns hints for unreadable source documents.
func ForExtraction(path string) string {
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(path), "."), "doc") {
		return format("legacy .doc files are not supported; re-save as .docx")
	}
	return format("re-save the document in Word or LibreOffice and retry")
}

// ForUnsupported lists the accepted source extensions.
func ForUnsupported(supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	return format("supported: " + strings.Join(supported, ", "))
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-doc2tex/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-doc2tex") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoInput returns a hint when no input path was given.
func ForNoInput() string {
	return format("pass a file or directory, or set input.defaultDir in the config")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForRepairPasses returns a hint when the pass cap was hit before the text
// stopped changing.
func ForRepairPasses() string {
	return format("raise --max-passes or inspect the reported issues")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
