// Package config loads the aprsfeed configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/APRSCN/aprspos/client"
	"gopkg.in/yaml.v3"
)

// Config is the aprsfeed configuration
type Config struct {
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Output  Output  `yaml:"output"`
	Metrics Metrics `yaml:"metrics"`
}

// Server describes the APRS-IS connection
type Server struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Callsign string `yaml:"callsign"`
	Passcode string `yaml:"passcode"`
	Filter   string `yaml:"filter"`
	// Drop holds regular expressions, matching raw lines are ignored
	Drop []string `yaml:"drop"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Output controls how decoded positions are printed
type Output struct {
	// TimeFormat is a strftime pattern
	TimeFormat string `yaml:"time_format"`
	UTM        bool   `yaml:"utm"`
}

type Metrics struct {
	// Listen is the address serving /metrics, empty disables it
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: Server{
			Host:     client.DefaultHost,
			Port:     client.DefaultPort,
			Callsign: "N0CALL",
		},
		Log: Log{
			Level: "info",
		},
		Output: Output{
			TimeFormat: "%Y-%m-%d %H:%M:%S",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values yaml cannot
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
