package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a file. Fields missing from the file
// keep their Defaults() value.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}
	if info.IsDir() {
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	return cfg, nil
}

// Parse decodes YAML bytes on top of Defaults() and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(interpolateEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// interpolateEnv replaces ${VAR} with the environment value. Unset variables are
// left in place so validation can report them.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}
	if cfg.Service.LogFormat != "json" && cfg.Service.LogFormat != "text" {
		return fmt.Errorf("service.log_format must be json or text (got %q)", cfg.Service.LogFormat)
	}

	if err := cfg.Pool.Validate(); err != nil {
		return fmt.Errorf("pool: %w", err)
	}

	for i, args := range cfg.Commands {
		for j, arg := range args {
			if m := envVarPattern.FindStringSubmatch(arg); m != nil {
				return fmt.Errorf("commands[%d][%d]: environment variable ${%s} is not set", i, j, m[1])
			}
		}
	}
	return nil
}

// Validate checks the invariants a dispatcher relies on.
func (p PoolConfig) Validate() error {
	var errs []error
	if p.BaseCommand == "" {
		errs = append(errs, errors.New("base_command is required"))
	} else if m := envVarPattern.FindStringSubmatch(p.BaseCommand); m != nil {
		errs = append(errs, fmt.Errorf("base_command: environment variable ${%s} is not set", m[1]))
	}
	if p.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent must be at least 1 (got %d)", p.MaxConcurrent))
	}
	if p.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive (got %s)", p.PollInterval))
	}
	if p.MaxProcessAge <= 0 {
		errs = append(errs, fmt.Errorf("max_process_age must be positive (got %s)", p.MaxProcessAge))
	}
	if p.PollLimit < 0 {
		errs = append(errs, fmt.Errorf("poll_limit must not be negative (got %d)", p.PollLimit))
	}
	if p.OutputSink == "" {
		errs = append(errs, errors.New("output_sink is required"))
	}
	return errors.Join(errs...)
}
