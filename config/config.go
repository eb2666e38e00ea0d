// Package config defines the runtime configuration for shelld and the
// loaders that populate it from a config file and the environment.
package config

import (
	"time"

	sherr "shelld/internal/errors"
)

// Config holds every tuneable for a shelld process.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	BindAddress string // empty = all interfaces
	Port        int
	MaxConns    int           // concurrent session limit
	Timeout     time.Duration // absolute session deadline (0 = none)

	// ── SSH transport ────────────────────────────────────────────────
	SSH         bool
	HostKeyPath string
	SSHPassword string // empty = no client auth

	// ── Session geometry ─────────────────────────────────────────────
	BufferSize  int // input buffer capacity; usable line is one less
	HistorySize int // history ring slots
	MaxArgs     int // token limit per line

	// ── Identity / output ────────────────────────────────────────────
	Name    string // server name reported by uname
	Stdio   bool   // run a single local session on stdin/stdout
	Verbose int
}

// Default returns a Config populated with the package defaults.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		MaxConns:    DefaultMaxConns,
		BufferSize:  DefaultBufferSize,
		HistorySize: DefaultHistorySize,
		MaxArgs:     DefaultMaxArgs,
		Name:        DefaultName,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if !c.Stdio {
		if c.Port < 1 || c.Port > 65535 {
			return &sherr.ConfigError{
				Field:   "port",
				Value:   c.Port,
				Message: "port must be in 1-65535",
			}
		}
	}
	if c.Stdio && c.SSH {
		return &sherr.ConfigError{
			Field:   "stdio",
			Message: "stdio mode and ssh transport are mutually exclusive",
		}
	}
	if c.SSH && c.HostKeyPath == "" {
		return &sherr.ConfigError{
			Field:   "host-key",
			Message: "ssh transport requires a host key file",
			Hint:    "generate one with: ssh-keygen -t ed25519 -f shelld_host_key -N ''",
		}
	}
	if c.MaxConns < 1 {
		return &sherr.ConfigError{
			Field:   "conns",
			Value:   c.MaxConns,
			Message: "connection limit must be at least 1",
		}
	}
	if c.BufferSize < 2 {
		return &sherr.ConfigError{
			Field:   "buffer",
			Value:   c.BufferSize,
			Message: "input buffer must hold at least one byte plus its terminator",
		}
	}
	if c.HistorySize < 1 {
		return &sherr.ConfigError{
			Field:   "history",
			Value:   c.HistorySize,
			Message: "history needs at least one slot",
		}
	}
	if c.MaxArgs < 1 {
		return &sherr.ConfigError{
			Field:   "max-args",
			Value:   c.MaxArgs,
			Message: "at least one argument token is required",
		}
	}
	return nil
}
