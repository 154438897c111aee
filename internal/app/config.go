package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocumentPath string // .hcl file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Listen serves the document to renderers when set. Otherwise the app
	// runs once: it applies Actions in order and prints the result.
	Listen  string
	Actions []string
	Dump    bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocumentPath == "" {
		return nil, errors.New("DocumentPath is a required configuration field and cannot be empty")
	}
	if cfg.Listen != "" && (len(cfg.Actions) > 0 || cfg.Dump) {
		return nil, errors.New("actions and dump only apply when not listening")
	}
	switch cfg.LogFormat {
	case "", "text", "json", "auto":
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}
