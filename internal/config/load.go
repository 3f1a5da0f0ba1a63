package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load reads, parses, and validates configuration from the provided path.
// Warns if the config file has insecure permissions (world-writable).
func Load(path string) (*Config, error) {
	if runtime.GOOS != "windows" {
		if info, err := os.Stat(path); err == nil {
			mode := info.Mode().Perm()
			// A world-writable config can redirect which directory gets read.
			if mode&0o002 != 0 {
				fmt.Fprintf(os.Stderr, "WARNING: config file %s is world-writable (mode %o). Consider: chmod 644 %s\n", path, mode, path)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when every field is left empty.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(c *Config) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Log.Format == "" {
		c.Log.Format = "tinyproxy"
	}
	if c.Log.Include == "" {
		c.Log.Include = "*"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
}
