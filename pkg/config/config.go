package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for ruletune
type Config struct {
	Rules  RulesConfig  `mapstructure:"rules"`
	Tuning TuningConfig `mapstructure:"tuning"`
	Report ReportConfig `mapstructure:"report"`
}

// RulesConfig describes the rule corpus
type RulesConfig struct {
	Path          string   `mapstructure:"path"`
	Include       []string `mapstructure:"include"`
	Strict        bool     `mapstructure:"strict"`
	RespectIgnore bool     `mapstructure:"respect_ignore"`
	ExcludeFile   string   `mapstructure:"exclude_file"`
	NoisyFile     string   `mapstructure:"noisy_file"`
}

// TuningConfig describes the level override mapping
type TuningConfig struct {
	File   string `mapstructure:"file"`
	Header bool   `mapstructure:"header"`
	Policy string `mapstructure:"policy"` // optional rego module path
}

// ReportConfig holds the raymond templates used for progress lines
type ReportConfig struct {
	PathTemplate       string `mapstructure:"path_template"`
	TransitionTemplate string `mapstructure:"transition_template"`
}

// Config file names probed in each search directory, in order.
var configFileNames = []string{
	".ruletune.yaml",
	".ruletune.yml",
	"ruletune.yaml",
	"ruletune.yml",
	"ruletune.json",
	"ruletune.toml",
}

var defaultConfig = Config{
	Rules: RulesConfig{
		Path:          "./rules",
		Include:       []string{"**/*.yml", "**/*.yaml"},
		Strict:        false,
		RespectIgnore: true,
		ExcludeFile:   "./rules/config/exclude_rules.txt",
		NoisyFile:     "./rules/config/noisy_rules.txt",
	},
	Tuning: TuningConfig{
		File:   "./rules/config/level_tuning.txt",
		Header: false,
	},
	Report: ReportConfig{
		PathTemplate:       "path: {{{path}}}",
		TransitionTemplate: "level: {{{from}}} -> {{{to}}}",
	},
}

// Defaults returns a copy of the built-in configuration.
func Defaults() Config {
	c := defaultConfig
	c.Rules.Include = append([]string(nil), defaultConfig.Rules.Include...)
	return c
}

// NewViper returns a viper instance carrying ruletune defaults and the
// RULETUNE_ environment binding. Commands bind their flags onto it before
// calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("rules.path", defaultConfig.Rules.Path)
	v.SetDefault("rules.include", defaultConfig.Rules.Include)
	v.SetDefault("rules.strict", defaultConfig.Rules.Strict)
	v.SetDefault("rules.respect_ignore", defaultConfig.Rules.RespectIgnore)
	v.SetDefault("rules.exclude_file", defaultConfig.Rules.ExcludeFile)
	v.SetDefault("rules.noisy_file", defaultConfig.Rules.NoisyFile)
	v.SetDefault("tuning.file", defaultConfig.Tuning.File)
	v.SetDefault("tuning.header", defaultConfig.Tuning.Header)
	v.SetDefault("tuning.policy", defaultConfig.Tuning.Policy)
	v.SetDefault("report.path_template", defaultConfig.Report.PathTemplate)
	v.SetDefault("report.transition_template", defaultConfig.Report.TransitionTemplate)

	v.SetEnvPrefix("RULETUNE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration file (explicitFile, or the first one found
// by FindConfigFile), validates it against the schema, and unmarshals the
// merged result of defaults, file, environment and bound flags. A missing
// config file is not an error unless it was named explicitly.
func Load(v *viper.Viper, explicitFile string) (*Config, error) {
	path := explicitFile
	if path == "" {
		path = FindConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-selected config path
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
		if err := ValidateConfig(data, FormatOf(path)); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// FindConfigFile returns the first config file in the working directory,
// the user's home directory, or the ruletune home config directory.
// It returns "" when none exists.
func FindConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if rtHome, err := GetRuletuneHome(); err == nil {
		dirs = append(dirs, filepath.Join(rtHome, "config"))
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

// GetRuletuneHome returns the ruletune home directory
func GetRuletuneHome() (string, error) {
	if home := os.Getenv("RULETUNE_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if homeDir == "" {
		return "", errors.New("user home directory is empty")
	}

	return filepath.Join(homeDir, ".ruletune"), nil
}
