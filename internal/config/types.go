package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete procpool configuration.
type Config struct {
	Service  ServiceConfig `yaml:"service"`
	Pool     PoolConfig    `yaml:"pool"`
	Lock     LockConfig    `yaml:"lock,omitempty"`
	Commands [][]string    `yaml:"commands,omitempty"`
}

// ServiceConfig defines process-wide settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// PoolConfig is fixed once a dispatcher is constructed.
type PoolConfig struct {
	// BaseCommand is both the prefix of every launched invocation and the
	// search term used when counting running instances.
	BaseCommand   string        `yaml:"base_command"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	MaxProcessAge time.Duration `yaml:"max_process_age"`
	// PollLimit is the number of failed slot checks tolerated for a single
	// command before the rest of the queue is abandoned.
	PollLimit  int    `yaml:"poll_limit"`
	OutputSink string `yaml:"output_sink"`
}

// LockConfig defines the single-instance lock settings.
type LockConfig struct {
	// Path is optional; an empty path derives one from the base command.
	Path string `yaml:"path"`
}

// Defaults returns a Config with the documented pool defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:      "procpool",
			LogLevel:  "info",
			LogFormat: "json",
		},
		Pool: DefaultPool(),
	}
}

// DefaultPool returns the default pool configuration without a base command.
func DefaultPool() PoolConfig {
	return PoolConfig{
		MaxConcurrent: 5,
		PollInterval:  1000 * time.Millisecond,
		MaxProcessAge: 3000 * time.Millisecond,
		PollLimit:     1000,
		OutputSink:    os.DevNull,
	}
}

// UnmarshalYAML accepts poll_interval and max_process_age either as duration
// strings ("1s", "250ms") or as bare integers counted in milliseconds.
func (p *PoolConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i], value.Content[i+1]
			switch key.Value {
			case "poll_interval", "max_process_age":
				if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!int" {
					val.Value += "ms"
					val.Tag = "!!str"
				}
			}
		}
	}

	type plain PoolConfig
	return value.Decode((*plain)(p))
}
