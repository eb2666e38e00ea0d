package config

// loader.go - configuration loading from a config file and from
// environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (LoadFromEnv)
//   3. Config file  (LoadFromFile)
//   4. Defaults   (defaults.go)

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromFile overlays settings from a whitespace-separated
// "key value" file onto cfg.  Blank lines and lines starting with '#'
// are skipped; unknown keys are ignored so the format can grow.
//
// Recognised keys: port, conns, name, address, timeout (seconds),
// buffer, history, max-args, ssh (bool), host-key.
func LoadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, " ")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "port":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Port = v
			}
		case "conns":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxConns = v
			}
		case "name":
			cfg.Name = value
		case "address":
			cfg.BindAddress = value
		case "timeout":
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				cfg.Timeout = time.Duration(v) * time.Second
			}
		case "buffer":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.BufferSize = v
			}
		case "history":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.HistorySize = v
			}
		case "max-args":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxArgs = v
			}
		case "ssh":
			cfg.SSH = parseBool(value)
		case "host-key":
			cfg.HostKeyPath = value
		}
	}
	return sc.Err()
}

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the SHELLD_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("SHELLD_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := envInt("SHELLD_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := envInt("SHELLD_CONNS"); v > 0 {
		cfg.MaxConns = v
	}
	if v := envInt("SHELLD_TIMEOUT"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if envBool("SHELLD_SSH") {
		cfg.SSH = true
	}
	if v := os.Getenv("SHELLD_HOST_KEY"); v != "" {
		cfg.HostKeyPath = v
	}
	if v := envInt("SHELLD_BUFFER"); v > 0 {
		cfg.BufferSize = v
	}
	if v := envInt("SHELLD_HISTORY"); v > 0 {
		cfg.HistorySize = v
	}
	if v := envInt("SHELLD_MAX_ARGS"); v > 0 {
		cfg.MaxArgs = v
	}
	if v := os.Getenv("SHELLD_NAME"); v != "" {
		cfg.Name = v
	}
	if v := envInt("SHELLD_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	return parseBool(os.Getenv(key))
}

func parseBool(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes"
}
