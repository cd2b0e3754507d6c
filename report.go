package doc2tex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-doc2tex/internal/hints"
)

// Report is the outcome of a Run. It replaces any shared progress state:
// callers read counts and failures from it after the batch completes.
type Report struct {
	Results         []ConversionResult // in discovery order
	Skipped         []string           // unsupported or unreadable entries
	BytesWritten    int64
	IntegrationPath string // empty when no integration file was written
	IntegrationErr  error
}

// Succeeded returns the number of files converted and written.
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be converted.
func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Summary formats the report for terminal output: a count line, then one
// line per failure and per file the repair pass changed. Failures and
// skipped files carry hints.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d of %d files converted (%d bytes written)\n", r.Succeeded(), len(r.Results), r.BytesWritten)

	for _, res := range r.Results {
		switch {
		case !res.Success:
			sb.WriteString(failureLine(res))
		case len(res.Issues) > 0:
			fmt.Fprintf(&sb, "REPAIRED %s: %d issue(s)\n", res.InputPath, len(res.Issues))
			for _, issue := range res.Issues {
				fmt.Fprintf(&sb, "  %s\n", issue)
			}
		}
	}
	for _, path := range r.Skipped {
		line := "SKIPPED " + path
		if strings.EqualFold(filepath.Ext(path), ".doc") {
			line += hints.ForExtraction(path)
		}
		sb.WriteString(line + "\n")
	}
	if len(r.Skipped) > 0 {
		sb.WriteString(strings.TrimPrefix(hints.ForUnsupported(SupportedExtensions()), "\n") + "\n")
	}
	if r.IntegrationErr != nil {
		sb.WriteString(integrationFailureLine(r.IntegrationErr))
	}
	return sb.String()
}

// Failures formats only the failed files and a failed integration file,
// with the same lines and hints as Summary.
func (r *Report) Failures() string {
	var sb strings.Builder
	for _, res := range r.Results {
		if !res.Success {
			sb.WriteString(failureLine(res))
		}
	}
	if r.IntegrationErr != nil {
		sb.WriteString(integrationFailureLine(r.IntegrationErr))
	}
	return sb.String()
}

func failureLine(res ConversionResult) string {
	kind := ErrorKind(res.Err)
	line := fmt.Sprintf("FAILED %s %s: %v", kind, res.InputPath, res.Err)
	if kind == ExtractionError {
		line += hints.ForExtraction(res.InputPath)
	}
	return line + "\n"
}

func integrationFailureLine(err error) string {
	return fmt.Sprintf("FAILED %s integration file: %v%s\n", WriteError, err, hints.ForOutputDirectory())
}
