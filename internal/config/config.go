// Package config loads the service configuration from a YAML file with
// sensible defaults and environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Ingest IngestConfig `yaml:"ingest"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// MaxUploadMB bounds the multipart body size.
	MaxUploadMB int `yaml:"maxUploadMB"`
}

// IngestConfig controls where GET /transactions looks for known files.
type IngestConfig struct {
	DataDir string `yaml:"dataDir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        3000,
			MaxUploadMB: 32,
		},
		Ingest: IngestConfig{
			DataDir: "data",
		},
	}
}

// merge fills any unset fields from the defaults.
func (c *Config) merge() {
	def := Default()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = def.Server.MaxUploadMB
	}
	if c.Ingest.DataDir == "" {
		c.Ingest.DataDir = def.Ingest.DataDir
	}
}

// Load reads the configuration file at path, applying defaults for
// anything unset. A missing file is not an error, defaults apply; an
// unreadable or malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	default:
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
		}
		cfg.merge()
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets deployment platforms override the listen port and data
// directory without editing the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Ingest.DataDir = v
	}
}

// Addr renders the host:port pair for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
