package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/parser"
)

// Default values for configuration.
const (
	DefaultInputDir     = "./input_data"
	DefaultOutputDir    = "./transformed_data/sharepoint_excel_to_json_data"
	DefaultAggregateDir = "./transformed_data/aggregates"
	DefaultReportsDir   = "./transformed_data/individual_reports"
	DefaultWorkers      = 1
	DefaultLogLevel     = "info"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

// ConfigRawInput holds the unvalidated configuration from file, env and flags.
type ConfigRawInput struct {
	InputDir     string            `mapstructure:"input-dir"`
	OutputDir    string            `mapstructure:"output-dir"`
	AggregateDir string            `mapstructure:"aggregate-dir"`
	ReportsDir   string            `mapstructure:"reports-dir"`
	Workers      int               `mapstructure:"workers"`
	Ledger       string            `mapstructure:"ledger"`
	Parquet      string            `mapstructure:"parquet"`
	Tiers        string            `mapstructure:"tiers"`
	LogLevel     string            `mapstructure:"log-level"`
	Rules        parser.RuleConfig `mapstructure:"rules"`
}

// Config is the validated runtime configuration.
type Config struct {
	InputDir     string
	OutputDir    string
	AggregateDir string
	ReportsDir   string
	Workers      int
	Ledger       string
	Parquet      string
	Tiers        string
	LogLevel     slog.Level
	Rules        parser.Rules
}

// cfg holds the validated configuration of the running command.
var cfg = &Config{}

// initConfig sets up viper sources and defaults.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".evalstruct")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("EVALSTRUCT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	rules := parser.DefaultRuleConfig()
	v.SetDefault("input-dir", DefaultInputDir)
	v.SetDefault("output-dir", DefaultOutputDir)
	v.SetDefault("aggregate-dir", DefaultAggregateDir)
	v.SetDefault("reports-dir", DefaultReportsDir)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("ledger", "")
	v.SetDefault("parquet", "")
	v.SetDefault("tiers", "")
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("rules.months", rules.Months)
	v.SetDefault("rules.sentinels", rules.Sentinels)
	v.SetDefault("rules.name-header", rules.NameHeader)
	v.SetDefault("rules.categories", rules.Categories)
}

// loadConfig reads the config file, if any, and validates the merged input.
func loadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	var raw ConfigRawInput
	if err := viper.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return processConfig(raw)
}

// processConfig validates raw input into a Config.
func processConfig(raw ConfigRawInput) (*Config, error) {
	c := &Config{
		InputDir:     strings.TrimSpace(raw.InputDir),
		OutputDir:    strings.TrimSpace(raw.OutputDir),
		AggregateDir: strings.TrimSpace(raw.AggregateDir),
		ReportsDir:   strings.TrimSpace(raw.ReportsDir),
		Workers:      raw.Workers,
		Ledger:       strings.TrimSpace(raw.Ledger),
		Parquet:      strings.TrimSpace(raw.Parquet),
		Tiers:        strings.TrimSpace(raw.Tiers),
		Rules:        raw.Rules.Rules(),
	}
	if c.InputDir == "" {
		return nil, errors.New("input-dir must not be empty")
	}
	if c.OutputDir == "" {
		return nil, errors.New("output-dir must not be empty")
	}
	if c.Workers < 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}

	level, err := parseLogLevel(raw.LogLevel)
	if err != nil {
		return nil, err
	}
	c.LogLevel = level
	return c, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log-level %q (must be debug, info, warn or error)", s)
	}
	return level, nil
}

func setupLogging(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
