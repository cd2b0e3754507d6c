// Package config loads and validates YAML configuration for doc2tex.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-doc2tex/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Limits for validated fields.
const (
	MaxInputSize     = 1 << 20 // YAML input cap (1 MiB)
	MaxRepairPasses  = 10
	MaxWorkers       = 32
	MaxPathLength    = 4096
	DefaultFileLimit = 100 * 1024 * 1024
)

// Engine names accepted by engine.name.
const (
	EngineNative = "native"
	EnginePandoc = "pandoc"
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Repair  RepairConfig  `yaml:"repair"`
	Engine  EngineConfig  `yaml:"engine"`
	Extract ExtractConfig `yaml:"extract"`
	Log     LogConfig     `yaml:"log"`
	Workers int           `yaml:"workers"` // 0 = auto, 1 = sequential
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input path (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir      string `yaml:"defaultDir"`      // Empty = next to each source
	IntegrationFile string `yaml:"integrationFile"` // Empty = no integration file
}

// RepairConfig controls the escaping repair pass.
type RepairConfig struct {
	Enabled   bool `yaml:"enabled"`
	MaxPasses int  `yaml:"maxPasses"` // 1 = single pass
}

// EngineConfig selects the translator.
type EngineConfig struct {
	Name       string `yaml:"name"`       // "native" or "pandoc"
	PandocPath string `yaml:"pandocPath"` // Empty = "pandoc" from PATH
}

// ExtractConfig bounds source reading.
type ExtractConfig struct {
	MaxFileSize int64 `yaml:"maxFileSize"` // bytes
}

// LogConfig defines the structured logging handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the configuration used when no file is given:
// native engine, single repair pass, sequential processing.
func DefaultConfig() *Config {
	return &Config{
		Repair:  RepairConfig{Enabled: true, MaxPasses: 1},
		Engine:  EngineConfig{Name: EngineNative},
		Extract: ExtractConfig{MaxFileSize: DefaultFileLimit},
		Log:     LogConfig{Level: "info", Format: "text"},
		Workers: 1,
	}
}

// Validate checks enumerations and numeric ranges. Errors wrap
// ErrInvalidConfig and name the offending field.
func (c *Config) Validate() error {
	if c.Repair.MaxPasses < 0 || c.Repair.MaxPasses > MaxRepairPasses {
		return fmt.Errorf("%w: repair.maxPasses must be between 0 and %d, got %d", ErrInvalidConfig, MaxRepairPasses, c.Repair.MaxPasses)
	}

	switch strings.ToLower(c.Engine.Name) {
	case "", EngineNative, EnginePandoc:
	default:
		return fmt.Errorf("%w: engine.name: invalid value %q (must be native or pandoc)", ErrInvalidConfig, c.Engine.Name)
	}

	if c.Extract.MaxFileSize < 0 {
		return fmt.Errorf("%w: extract.maxFileSize must not be negative, got %d", ErrInvalidConfig, c.Extract.MaxFileSize)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Workers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: invalid value %q", ErrInvalidConfig, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format: invalid value %q (must be text or json)", ErrInvalidConfig, c.Log.Format)
	}

	if name := c.Output.IntegrationFile; name != "" {
		if strings.ContainsAny(name, "/\\\x00") {
			return fmt.Errorf("%w: output.integrationFile must be a file name, got %q", ErrInvalidConfig, name)
		}
		if !strings.EqualFold(filepath.Ext(name), ".tex") {
			return fmt.Errorf("%w: output.integrationFile must end in .tex, got %q", ErrInvalidConfig, name)
		}
	}

	for field, value := range map[string]string{
		"input.defaultDir":  c.Input.DefaultDir,
		"output.defaultDir": c.Output.DefaultDir,
		"engine.pandocPath": c.Engine.PandocPath,
	} {
		if len(value) > MaxPathLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidConfig, field, MaxPathLength)
		}
	}

	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched by name in standard locations.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML strictly (unknown fields are errors) on top of
// DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: input is %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}

	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-doc2tex/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-doc2tex", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
