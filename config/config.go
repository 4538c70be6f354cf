// Package config provides configuration management for the chatpulse command-line tool.
// It supports loading configuration from YAML files, a .env file, environment
// variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	chaterrors "github.com/otherjamesbrown/chatpulse/pkg/errors"
)

// OutputFormat defines the supported output formats for reports.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Default configuration values.
const (
	DefaultOutputFormat = OutputFormatText
	DefaultLogLevel     = "info"
	DefaultLogFormat    = LogFormatConsole
	DefaultConfigDir    = ".chatpulse"
	DefaultConfigFile   = "config.yaml"
	DefaultEnvFile      = ".env"

	DefaultTopWords  = 20
	DefaultTopEmojis = 10
	DefaultTopUsers  = 10
	DefaultTopRoles  = 3

	DefaultContamination = 0.05
	DefaultSeed          = 42
	DefaultTrees         = 100
	DefaultMinDays       = 5
	DefaultMinRows       = 5
	DefaultGapThreshold  = 72 * time.Hour
	DefaultMaxPerSide    = 10
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "CHATPULSE_"

// AnalysisConfig sizes the ranked lists in a report.
type AnalysisConfig struct {
	TopWords  int `yaml:"top_words"`
	TopEmojis int `yaml:"top_emojis"`
	TopUsers  int `yaml:"top_users"`
	TopRoles  int `yaml:"top_roles"`
}

// AnomalyConfig tunes the anomaly detector.
type AnomalyConfig struct {
	// Contamination is the expected share of outlier days, in (0, 0.5].
	Contamination float64 `yaml:"contamination"`

	// Seed makes the isolation forest reproducible.
	Seed uint64 `yaml:"seed"`

	Trees   int `yaml:"trees"`
	MinDays int `yaml:"min_days"`
	MinRows int `yaml:"min_rows"`

	// GapThreshold is the shortest silence reported as a gap.
	GapThreshold time.Duration `yaml:"gap_threshold"`

	// MaxPerSide caps how many spikes and how many drops are listed.
	MaxPerSide int `yaml:"max_per_side"`
}

// Config holds the chatpulse configuration settings.
type Config struct {
	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is console or json.
	LogFormat string `yaml:"log_format"`

	// Workers bounds per-author parallelism. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// MetricsFile, when set, receives Prometheus metrics in text format
	// after each run.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Analysis AnalysisConfig `yaml:"analysis"`
	Anomaly  AnomalyConfig  `yaml:"anomaly"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: DefaultOutputFormat,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Analysis: AnalysisConfig{
			TopWords:  DefaultTopWords,
			TopEmojis: DefaultTopEmojis,
			TopUsers:  DefaultTopUsers,
			TopRoles:  DefaultTopRoles,
		},
		Anomaly: AnomalyConfig{
			Contamination: DefaultContamination,
			Seed:          DefaultSeed,
			Trees:         DefaultTrees,
			MinDays:       DefaultMinDays,
			MinRows:       DefaultMinRows,
			GapThreshold:  DefaultGapThreshold,
			MaxPerSide:    DefaultMaxPerSide,
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $CHATPULSE_CONFIG_DIR if set, otherwise ~/.chatpulse
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the default file location.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom loads the configuration. Sources are applied in this order
// (later sources override earlier):
// 1. Default values
// 2. Config file (path, or ~/.chatpulse/config.yaml when path is empty)
// 3. .env in the working directory (never overrides variables already set)
// 4. CHATPULSE_* environment variables
//
// A missing default config file is not an error; a missing explicit path is.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	if err := loadDotEnv(DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// configFile mirrors Config with the duration kept as a string.
type configFile struct {
	OutputFormat OutputFormat   `yaml:"output_format,omitempty"`
	LogLevel     string         `yaml:"log_level,omitempty"`
	LogFormat    string         `yaml:"log_format,omitempty"`
	Workers      int            `yaml:"workers,omitempty"`
	MetricsFile  string         `yaml:"metrics_file,omitempty"`
	Analysis     AnalysisConfig `yaml:"analysis"`
	Anomaly      struct {
		Contamination float64 `yaml:"contamination,omitempty"`
		Seed          *uint64 `yaml:"seed,omitempty"`
		Trees         int     `yaml:"trees,omitempty"`
		MinDays       int     `yaml:"min_days,omitempty"`
		MinRows       int     `yaml:"min_rows,omitempty"`
		GapThreshold  string  `yaml:"gap_threshold,omitempty"`
		MaxPerSide    int     `yaml:"max_per_side,omitempty"`
	} `yaml:"anomaly"`
}

// loadFromFile loads configuration from a YAML file. Zero values in the file
// leave the current setting alone.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if fileCfg.Workers != 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.MetricsFile != "" {
		cfg.MetricsFile = fileCfg.MetricsFile
	}

	a := fileCfg.Analysis
	setInt(&cfg.Analysis.TopWords, a.TopWords)
	setInt(&cfg.Analysis.TopEmojis, a.TopEmojis)
	setInt(&cfg.Analysis.TopUsers, a.TopUsers)
	setInt(&cfg.Analysis.TopRoles, a.TopRoles)

	an := fileCfg.Anomaly
	if an.Contamination != 0 {
		cfg.Anomaly.Contamination = an.Contamination
	}
	if an.Seed != nil {
		cfg.Anomaly.Seed = *an.Seed
	}
	setInt(&cfg.Anomaly.Trees, an.Trees)
	setInt(&cfg.Anomaly.MinDays, an.MinDays)
	setInt(&cfg.Anomaly.MinRows, an.MinRows)
	setInt(&cfg.Anomaly.MaxPerSide, an.MaxPerSide)
	if an.GapThreshold != "" {
		d, err := time.ParseDuration(an.GapThreshold)
		if err != nil {
			return fmt.Errorf("parsing anomaly.gap_threshold: %w", err)
		}
		cfg.Anomaly.GapThreshold = d
	}

	return nil
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// loadDotEnv loads path into the environment if it exists.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) error {
	env := func(key string) string { return os.Getenv(EnvPrefix + key) }

	if v := env("OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := env("METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}

	if v := env("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		cfg.Workers = n
	}
	if v := env("ANOMALY_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sANOMALY_SEED: %w", EnvPrefix, err)
		}
		cfg.Anomaly.Seed = seed
	}
	if v := env("ANOMALY_CONTAMINATION"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sANOMALY_CONTAMINATION: %w", EnvPrefix, err)
		}
		cfg.Anomaly.Contamination = c
	}
	if v := env("GAP_THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sGAP_THRESHOLD: %w", EnvPrefix, err)
		}
		cfg.Anomaly.GapThreshold = d
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", chaterrors.ErrValidation, fmt.Sprintf(format, args...))
	}

	if !c.OutputFormat.IsValid() {
		return invalid("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("invalid log_level: %q", c.LogLevel)
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return invalid("invalid log_format: %q (must be console or json)", c.LogFormat)
	}
	if c.Workers < 0 {
		return invalid("workers must not be negative")
	}

	a := c.Analysis
	if a.TopWords < 1 || a.TopEmojis < 1 || a.TopUsers < 1 || a.TopRoles < 1 {
		return invalid("analysis top_* values must be positive")
	}

	an := c.Anomaly
	if an.Contamination <= 0 || an.Contamination > 0.5 {
		return invalid("anomaly.contamination must be in (0, 0.5], got %v", an.Contamination)
	}
	if an.Trees < 1 {
		return invalid("anomaly.trees must be positive")
	}
	if an.MinDays < 2 || an.MinRows < 2 {
		return invalid("anomaly.min_days and anomaly.min_rows must be at least 2")
	}
	if an.GapThreshold <= 0 {
		return invalid("anomaly.gap_threshold must be positive")
	}
	if an.MaxPerSide < 1 {
		return invalid("anomaly.max_per_side must be positive")
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig writes cfg to the config file, creating the directory if needed.
func SaveConfig(cfg *Config) (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}

// Marshal renders cfg as YAML in the config file layout.
func Marshal(cfg *Config) ([]byte, error) {
	var fileCfg configFile
	fileCfg.OutputFormat = cfg.OutputFormat
	fileCfg.LogLevel = cfg.LogLevel
	fileCfg.LogFormat = cfg.LogFormat
	fileCfg.Workers = cfg.Workers
	fileCfg.MetricsFile = cfg.MetricsFile
	fileCfg.Analysis = cfg.Analysis
	fileCfg.Anomaly.Contamination = cfg.Anomaly.Contamination
	seed := cfg.Anomaly.Seed
	fileCfg.Anomaly.Seed = &seed
	fileCfg.Anomaly.Trees = cfg.Anomaly.Trees
	fileCfg.Anomaly.MinDays = cfg.Anomaly.MinDays
	fileCfg.Anomaly.MinRows = cfg.Anomaly.MinRows
	fileCfg.Anomaly.GapThreshold = cfg.Anomaly.GapThreshold.String()
	fileCfg.Anomaly.MaxPerSide = cfg.Anomaly.MaxPerSide

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
