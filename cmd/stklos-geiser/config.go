package main

import (
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v2"
)

// Config is the responder's configuration. Sources are layered:
// defaults, then the YAML file, then environment variables, then
// command-line flags, each overriding the last.
type Config struct {
	// Log is the protocol log file path; empty disables logging.
	Log string `yaml:"log"`
	// LoadPath lists directories consulted by load-file requests, in
	// priority order.
	LoadPath []string `yaml:"load-path"`
	// Encoding is the port encoding of the connection: utf-8 (default),
	// latin-1, or windows-1252.
	Encoding string `yaml:"encoding"`
	// Prompt disables the REPL prompt when false; the connection
	// manager's prompt detection needs it on.
	Prompt *bool `yaml:"prompt"`
}

// loadConfig reads the YAML config file at path. A missing file is not
// an error; it just contributes nothing.
func loadConfig(path string) (Config, error) {
	cfg := Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg Config) Config {
	if log := env.Str("GEISER_STKLOS_LOG"); log != "" {
		cfg.Log = log
	}
	if lp := env.Str("STKLOS_LOAD_PATH"); lp != "" {
		cfg.LoadPath = filepath.SplitList(lp)
	}
	if enc := env.Str("STKLOS_PORT_ENCODING"); enc != "" {
		cfg.Encoding = enc
	}
	return cfg
}

// promptOn resolves the prompt setting, defaulting to on.
func (c Config) promptOn() bool {
	return c.Prompt == nil || *c.Prompt
}
