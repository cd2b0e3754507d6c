package doc2tex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-doc2tex/internal/fileutil"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discovery is the outcome of scanning the input path.
type discovery struct {
	files   []FileToConvert
	skipped []string
	root    string // directory the integration file is written to
}

// discoverFiles finds all supported sources under inputPath. Unsupported
// files are collected in skipped; Word lock files (~$name.docx) and dotfiles
// are ignored entirely, as are hidden directories. Only a failure to stat
// inputPath itself is returned as an error.
func discoverFiles(inputPath, outputDir string) (*discovery, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	d := &discovery{root: outputRoot(inputPath, outputDir, info.IsDir())}

	if !info.IsDir() {
		if _, err := DetectKind(inputPath); err != nil {
			d.skipped = append(d.skipped, inputPath)
			return d, nil
		}
		d.files = append(d.files, FileToConvert{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, outputDir, ""),
		})
		return d, nil
	}

	err = filepath.WalkDir(inputPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == inputPath {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			d.skipped = append(d.skipped, path)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(entry.Name()) && path != inputPath {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if _, err := DetectKind(path); err != nil {
			d.skipped = append(d.skipped, path)
			return nil
		}
		d.files = append(d.files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// ignored reports names that are never sources: dotfiles and Word lock files.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}

// resolveOutputPath determines the .tex output path for a source file.
// Without outputDir the output sits next to the source; with one, the
// directory structure below baseInputDir is mirrored.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	texName := fileutil.ReplaceExt(filepath.Base(inputPath), ".tex")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), texName)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), ".tex") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), texName)
		}
	}

	return filepath.Join(outputDir, texName)
}

// outputRoot is the directory that holds the integration file.
func outputRoot(inputPath, outputDir string, inputIsDir bool) string {
	switch {
	case outputDir != "" && strings.EqualFold(filepath.Ext(outputDir), ".tex"):
		return filepath.Dir(outputDir)
	case outputDir != "":
		return outputDir
	case inputIsDir:
		return inputPath
	default:
		return filepath.Dir(inputPath)
	}
}
