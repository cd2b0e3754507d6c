package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	doc2tex "github.com/alnah/go-doc2tex"
	"github.com/alnah/go-doc2tex/internal/config"
	"github.com/alnah/go-doc2tex/internal/extract"
	"github.com/alnah/go-doc2tex/internal/fileutil"
	"github.com/alnah/go-doc2tex/internal/repair"
)

// Sentinel errors for the repair command.
var (
	ErrRepairFailed       = errors.New("repair failed")
	ErrRepairNotConverged = errors.New("repair did not converge")
)

// texFile pairs an existing .tex file with where its repaired text goes.
type texFile struct {
	InputPath  string
	OutputPath string
}

// runRepair applies the repair catalogue to existing .tex files, in place
// or mirrored below --output.
func runRepair(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRepairFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: repair expects one file or directory, got %d", ErrUsage, len(positional))
	}
	if flags.maxPasses < 1 || flags.maxPasses > config.MaxRepairPasses {
		return fmt.Errorf("%w: --max-passes must be between 1 and %d, got %d", ErrUsage, config.MaxRepairPasses, flags.maxPasses)
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg.Log, flags.common, env.Stderr)

	found, err := discoverTexFiles(positional[0], flags.output)
	if err != nil {
		return fmt.Errorf("%w: %w", doc2tex.ErrNoInput, err)
	}
	files := found.files
	for _, path := range found.skipped {
		logger.Warn("skipping unreadable entry", "path", path)
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "SKIPPED %s\n", path)
		}
	}

	r := env.Repairer
	if r == nil {
		r = repair.New()
	}
	var failed, unconverged, changed int
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := extract.ReadFile(f.InputPath, cfg.Extract.MaxFileSize)
		if err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", f.InputPath, err)
			continue
		}

		original := string(data)
		fixed, issues, passes := r.Converge(original, flags.maxPasses)
		if _, more := r.Repair(fixed); len(more) > 0 {
			unconverged++
			logger.Warn("repair stopped at pass limit", "path", f.InputPath, "passes", passes)
		}

		if len(issues) > 0 {
			changed++
			if !flags.common.quiet {
				fmt.Fprintf(env.Stdout, "REPAIRED %s: %d issue(s) in %d pass(es)\n", f.InputPath, len(issues), passes)
				for _, issue := range issues {
					fmt.Fprintf(env.Stdout, "  %s\n", issue)
				}
			}
		} else if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "OK %s\n", f.InputPath)
		}

		if flags.dryRun || (f.OutputPath == f.InputPath && fixed == original) {
			continue
		}
		if err := fileutil.WriteFile(f.OutputPath, fixed); err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", f.OutputPath, err)
			continue
		}
		logger.Debug("repaired", "path", f.InputPath, "output", f.OutputPath, "issues", len(issues))
	}

	if !flags.common.quiet {
		verb := "repaired"
		if flags.dryRun {
			verb = "need repair"
		}
		fmt.Fprintf(env.Stdout, "%d of %d files %s\n", changed, len(files), verb)
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%w: %d of %d files", ErrRepairFailed, failed, len(files))
	case unconverged > 0:
		return fmt.Errorf("%w: %d file(s) still change after %d passes", ErrRepairNotConverged, unconverged, flags.maxPasses)
	}
	return nil
}

// texDiscovery is the outcome of scanning for .tex files.
type texDiscovery struct {
	root      string
	outputDir string
	files     []texFile
	skipped   []string
}

// discoverTexFiles lists .tex files under inputPath. Without outputDir each
// file is repaired in place; with one, the tree is mirrored below it.
// Entries below inputPath that cannot be read are skipped; only a failure
// on inputPath itself is returned.
func discoverTexFiles(inputPath, outputDir string) (*texDiscovery, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	d := &texDiscovery{root: inputPath, outputDir: outputDir}

	if !info.IsDir() {
		out := inputPath
		switch {
		case outputDir != "" && strings.EqualFold(filepath.Ext(outputDir), ".tex"):
			out = outputDir
		case outputDir != "":
			out = filepath.Join(outputDir, filepath.Base(inputPath))
		}
		d.files = append(d.files, texFile{InputPath: inputPath, OutputPath: out})
		return d, nil
	}

	if err := filepath.WalkDir(inputPath, d.visit); err != nil {
		return nil, err
	}
	return d, nil
}

// visit is the WalkDir callback of discoverTexFiles.
func (d *texDiscovery) visit(path string, entry fs.DirEntry, err error) error {
	if err != nil {
		if path == d.root {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		d.skipped = append(d.skipped, path)
		if entry != nil && entry.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if path != d.root && strings.HasPrefix(entry.Name(), ".") {
		if entry.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
		return nil
	}

	out := path
	if d.outputDir != "" {
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			d.skipped = append(d.skipped, path)
			return nil
		}
		out = filepath.Join(d.outputDir, rel)
	}
	d.files = append(d.files, texFile{InputPath: path, OutputPath: out})
	return nil
}
