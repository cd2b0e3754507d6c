package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-doc2tex/internal/repair"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds translation and repair flags of the convert command.
type engineFlags struct {
	engine       string
	noRepair     bool
	maxPasses    int
	maxPassesSet bool
}

// convertFlags holds all flags of the convert command.
type convertFlags struct {
	common      commonFlags
	engine      engineFlags
	output      string
	workers     int
	workersSet  bool
	integration string
	strict      bool
}

// repairFlags holds all flags of the repair command.
type repairFlags struct {
	common    commonFlags
	output    string
	dryRun    bool
	maxPasses int
}

// addCommonFlags adds config and verbosity flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file details and debug logs")
}

// addEngineFlags adds engine selection and repair flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.engine, "engine", "", "translation engine: native, pandoc")
	fs.BoolVar(&f.noRepair, "no-repair", false, "skip the escaping repair pass")
	fs.IntVar(&f.maxPasses, "max-passes", 1, "repair passes per document (1-10)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 1, "parallel workers (0 = auto)")
	fs.StringVar(&f.integration, "integration", "", "write an integration file with one \\input per document")
	fs.BoolVar(&f.strict, "strict", false, "exit with code 4 when any file fails")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.workersSet = fs.Changed("workers")
	f.engine.maxPassesSet = fs.Changed("max-passes")
	return f, fs.Args(), nil
}

// parseRepairFlags parses repair command flags and returns positional args.
func parseRepairFlags(args []string, usage io.Writer) (*repairFlags, []string, error) {
	fs := flag.NewFlagSet("repair", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &repairFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write repaired files here instead of in place")
	fs.BoolVar(&f.dryRun, "dry-run", false, "report issues without writing")
	fs.IntVar(&f.maxPasses, "max-passes", repair.DefaultMaxPasses, "repair passes per file")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRepairUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
