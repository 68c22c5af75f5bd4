// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable Load reads the config path from.
const EnvVar = "HOOKRELAY_CONFIG"

// Config is the configuration shared by the collector, the target and
// the operator CLI.
type Config struct {
	// Endpoint selects the relay endpoint.
	Endpoint EndpointConfig `yaml:"endpoint"`

	// Client tunes the sending side.
	Client ClientConfig `yaml:"client"`

	// Server tunes the collector's listener.
	Server ServerConfig `yaml:"server"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`

	// Console configures the collector's message output.
	Console ConsoleConfig `yaml:"console"`

	// Archive configures optional recording of relayed messages.
	Archive ArchiveConfig `yaml:"archive"`
}

// EndpointConfig selects where the collector listens and targets send.
type EndpointConfig struct {
	// Name is the endpoint name or an absolute socket path.
	// Default: named-pipe-for-dll-hook-message
	Name string `yaml:"name"`

	// RuntimeDir is the directory bare names resolve into.
	// Default: empty ($XDG_RUNTIME_DIR, else the OS temp dir)
	RuntimeDir string `yaml:"runtime_dir"`
}

// ClientConfig tunes the fire-and-forget sender.
type ClientConfig struct {
	// Attempts is the connection attempt bound against a busy endpoint.
	// Default: 10
	Attempts int `yaml:"attempts"`

	// Wait is the pause between attempts.
	// Default: 10ms
	Wait time.Duration `yaml:"wait"`

	// WriteTimeout bounds the single frame write.
	// Default: 1s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ServerConfig tunes the collector's listener.
type ServerConfig struct {
	// ReadTimeout bounds how long one connection may take to deliver
	// its frame.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// MaxReaders caps concurrently read connections. Zero is unbounded.
	// Default: 0
	MaxReaders int `yaml:"max_readers"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto, text or json. Auto picks text on a terminal.
	// Default: auto
	Format string `yaml:"format"`
}

// ConsoleConfig configures the collector's message output.
type ConsoleConfig struct {
	// Color is auto, always or never.
	// Default: auto
	Color string `yaml:"color"`
}

// ArchiveConfig configures optional recording of relayed messages.
type ArchiveConfig struct {
	// Path is the archive file. Empty disables archiving.
	Path string `yaml:"path"`

	// Compression is zstd or lz4.
	// Default: zstd
	Compression string `yaml:"compression"`
}

// Default returns the default configuration. Loaded files are merged
// over it, so fields a file omits keep these values.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			Name: "named-pipe-for-dll-hook-message",
		},
		Client: ClientConfig{
			Attempts:     10,
			Wait:         10 * time.Millisecond,
			WriteTimeout: time.Second,
		},
		Server: ServerConfig{
			ReadTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Console: ConsoleConfig{
			Color: "auto",
		},
		Archive: ArchiveConfig{
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the HOOKRELAY_CONFIG environment
// variable. It fails if the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hookrelay config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// Resolve picks the configuration a binary runs with: the --config
// path when given, else HOOKRELAY_CONFIG when set, else Default. The
// result is validated.
func Resolve(flagPath string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case flagPath != "":
		cfg, err = LoadFile(flagPath)
	case os.Getenv(EnvVar) != "":
		cfg, err = Load()
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile merges one configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	case ".json", ".jsonc":
		// JSON is a subset of YAML once comments and trailing commas
		// are gone, so one decoder serves both.
		data = jsonc.ToJSON(data)
	default:
		return fmt.Errorf("config file %s: unsupported extension (want .yaml, .yml, .json, or .jsonc)", path)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":            os.Getenv("HOME"),
		"XDG_RUNTIME_DIR": os.Getenv("XDG_RUNTIME_DIR"),
	}

	c.Endpoint.RuntimeDir = expandVars(c.Endpoint.RuntimeDir, vars)
	c.Endpoint.Name = expandVars(c.Endpoint.Name, vars)
	c.Archive.Path = expandVars(c.Archive.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Endpoint.Name == "" {
		errs = append(errs, fmt.Errorf("endpoint.name is required"))
	}
	if c.Endpoint.RuntimeDir != "" && !filepath.IsAbs(c.Endpoint.RuntimeDir) {
		errs = append(errs, fmt.Errorf("endpoint.runtime_dir must be absolute, got %q", c.Endpoint.RuntimeDir))
	}

	if c.Client.Attempts < 1 {
		errs = append(errs, fmt.Errorf("client.attempts must be at least 1, got %d", c.Client.Attempts))
	}
	if c.Client.Wait < 0 {
		errs = append(errs, fmt.Errorf("client.wait must not be negative"))
	}
	if c.Client.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("client.write_timeout must be positive"))
	}

	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.MaxReaders < 0 {
		errs = append(errs, fmt.Errorf("server.max_readers must not be negative"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "text", "json"}
	if !contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}
	colors := []string{"auto", "always", "never"}
	if !contains(colors, c.Console.Color) {
		errs = append(errs, fmt.Errorf("console.color must be one of: %v", colors))
	}
	compressions := []string{"zstd", "lz4"}
	if !contains(compressions, c.Archive.Compression) {
		errs = append(errs, fmt.Errorf("archive.compression must be one of: %v", compressions))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
