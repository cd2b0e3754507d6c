package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	doc2tex "github.com/alnah/go-doc2tex"
	"github.com/alnah/go-doc2tex/internal/config"
	"github.com/alnah/go-doc2tex/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrNoInputArg    = errors.New("no input specified")
	ErrStrictFailure = errors.New("one or more files failed")
)

// runConvert converts one file or a directory tree to LaTeX.
// Partial batch failures are reported but only fail the run under --strict.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, flags.common, env.Stderr)
	conv, err := doc2tex.NewConverter(converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	report, err := conv.Run(ctx, inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}

	printReport(env, report, flags.common)

	if err := ctx.Err(); err != nil {
		return err
	}
	if flags.strict && (report.Failed() > 0 || report.IntegrationErr != nil) {
		return fmt.Errorf("%w: %d of %d", ErrStrictFailure, report.Failed(), len(report.Results))
	}
	return nil
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by the caller).
func resolveConfig(configFlag string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	switch {
	case name != "":
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	case env.Config != nil:
		base := *env.Config
		cfg = &base
	default:
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.integration != "" {
		cfg.Output.IntegrationFile = flags.integration
	}
	if flags.engine.engine != "" {
		cfg.Engine.Name = strings.ToLower(flags.engine.engine)
	}
	if flags.engine.noRepair {
		cfg.Repair.Enabled = false
	}
	if flags.engine.maxPassesSet {
		cfg.Repair.MaxPasses = flags.engine.maxPasses
	}
	if flags.workersSet {
		cfg.Workers = flags.workers
	}
}

// resolveInputPath picks the positional argument, falling back to
// input.defaultDir from the config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: %w", ErrUsage, ErrNoInputArg)
}

// converterOptions translates a validated config into library options.
// Zero repair passes disables the repair stage.
func converterOptions(cfg *config.Config, logger *slog.Logger) []doc2tex.Option {
	opts := []doc2tex.Option{
		doc2tex.WithLogger(logger),
		doc2tex.WithMaxFileSize(cfg.Extract.MaxFileSize),
		doc2tex.WithWorkers(cfg.Workers),
		doc2tex.WithIntegrationFile(cfg.Output.IntegrationFile),
	}

	if cfg.Repair.Enabled && cfg.Repair.MaxPasses > 0 {
		opts = append(opts, doc2tex.WithRepairPasses(cfg.Repair.MaxPasses))
	} else {
		opts = append(opts, doc2tex.WithRepair(false))
	}

	if strings.EqualFold(cfg.Engine.Name, config.EnginePandoc) {
		opts = append(opts, doc2tex.WithEngine(doc2tex.NewPandocEngine(cfg.Engine.PandocPath)))
	}
	return opts
}

// printReport writes the batch summary. Quiet mode keeps only failures,
// which go to stderr.
func printReport(env *Environment, report *doc2tex.Report, common commonFlags) {
	if common.quiet {
		fmt.Fprint(env.Stderr, report.Failures())
	} else {
		fmt.Fprint(env.Stdout, report.Summary())
		if common.verbose {
			for _, res := range report.Results {
				if res.Success {
					fmt.Fprintf(env.Stdout, "OK %s -> %s (%v)\n", res.InputPath, res.OutputPath, res.Duration.Round(time.Millisecond))
				}
			}
		}
		if report.IntegrationPath != "" {
			fmt.Fprintf(env.Stdout, "integration file: %s\n", report.IntegrationPath)
		}
	}

	for _, res := range report.Results {
		if errors.Is(res.Err, doc2tex.ErrPandocNotFound) {
			fmt.Fprintf(env.Stderr, "pandoc unavailable%s\n", hints.ForPandocNotFound())
			return
		}
	}
}
