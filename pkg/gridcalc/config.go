package gridcalc

import (
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"go.alis.build/alog"
	"gopkg.in/yaml.v3"
)

// Config is the file configuration of the command line tool.
type Config struct {
	// HistoryLimit is the maximum number of undo entries.
	HistoryLimit int `yaml:"history_limit"`
	// LogLevel is one of debug, info, notice, warning, error.
	LogLevel string `yaml:"log_level"`
	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty"`
	// Rows and Cols bound active-cell navigation.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
	// Import configures xlsx import.
	Import ImportConfig `yaml:"import"`
}

// ImportConfig is the import section of Config.
type ImportConfig struct {
	Sheet             string `yaml:"sheet"`
	IncludeStyles     *bool  `yaml:"include_styles"`
	IncludeDimensions *bool  `yaml:"include_dimensions"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		HistoryLimit: DefaultOptions().HistoryLimit,
		LogLevel:     "info",
		Rows:         DefaultRows,
		Cols:         DefaultCols,
	}
}

// LoadConfig reads a YAML configuration file. Fields the file leaves unset
// take their default values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("merge config defaults: %w", err)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Options returns the session options described by c.
func (c Config) Options() Options {
	return Options{
		HistoryLimit: c.HistoryLimit,
		Rows:         c.Rows,
		Cols:         c.Cols,
	}
}

// ImportOptions returns the import options described by c.
func (c Config) ImportOptions() ImportOptions {
	return ImportOptions{
		Sheet:             c.Import.Sheet,
		IncludeStyles:     c.Import.IncludeStyles,
		IncludeDimensions: c.Import.IncludeDimensions,
	}
}

// ParseLogLevel maps a level name to an alog level.
func ParseLogLevel(name string) (alog.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return alog.LevelDebug, nil
	case "", "info":
		return alog.LevelInfo, nil
	case "notice":
		return alog.LevelNotice, nil
	case "warn", "warning":
		return alog.LevelWarning, nil
	case "error":
		return alog.LevelError, nil
	}
	return alog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, notice, warning or error)", name)
}
