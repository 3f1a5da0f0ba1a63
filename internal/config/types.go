package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// LoggingConfig controls log verbosity and format.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// LogConfig describes where the tinyproxy logs live and how to read them.
type LogConfig struct {
	Dir     string `yaml:"dir" validate:"required"`          // e.g. /var/log/tinyproxy
	Format  string `yaml:"format" validate:"oneof=tinyproxy"` // parser name
	Include string `yaml:"include" validate:"required"`      // doublestar pattern on file base names
	TempDir string `yaml:"temp_dir,omitempty"`               // parent for per-run copies; "" = os.TempDir()
}

// ServerConfig controls the report HTTP server.
type ServerConfig struct {
	Listen            string        `yaml:"listen" validate:"required,hostname_port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" validate:"gt=0"`
}

const (
	DefaultLogDir            = "/var/log/tinyproxy"
	DefaultListen            = "0.0.0.0:8080"
	DefaultReadHeaderTimeout = 5 * time.Second
)
