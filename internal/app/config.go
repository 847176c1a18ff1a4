package app

import (
	"errors"
	"fmt"
)

// GraphFlags describes a single graph given directly on the command line.
type GraphFlags struct {
	Steps        int
	Width        int
	NbFields     int
	Type         string
	Radix        int
	Period       int
	Kernel       string
	Iterations   int
	Duration     string
	OutputBytes  int
	ScratchBytes int
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is an .hcl file or directory. When empty, Graphs is used.
	ConfigPath string
	Vars       map[string]string
	Graphs     []GraphFlags

	LogFormat string
	LogLevel  string
	Trace     bool
	Verify    bool

	SocketIOURL   string
	SocketIOEvent string

	// MaxTileBytes caps tile memory. Zero means no cap.
	MaxTileBytes int64
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && len(cfg.Graphs) == 0 {
		return nil, errors.New("either a config path or at least one graph is required")
	}
	if cfg.ConfigPath == "" && len(cfg.Vars) > 0 {
		return nil, errors.New("-var requires a config path")
	}
	for i, g := range cfg.Graphs {
		if g.Steps < 0 || g.Width <= 0 {
			return nil, fmt.Errorf("graph %d: steps must not be negative and width must be positive", i)
		}
	}
	if cfg.SocketIOURL != "" && cfg.SocketIOEvent == "" {
		return nil, errors.New("a socket.io event name is required when reporting to socket.io")
	}
	if cfg.MaxTileBytes < 0 {
		return nil, errors.New("max tile bytes must not be negative")
	}
	return &cfg, nil
}
