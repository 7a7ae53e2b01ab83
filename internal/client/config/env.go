package config

import (
	"fmt"
	"strconv"
)

// Environment variables read by parseEnv.
const (
	EnvServerBaseURL = "AUTHDEMO_API_URL"
	EnvDBPath        = "AUTHDEMO_DB"
	EnvStrictLogout  = "AUTHDEMO_STRICT_LOGOUT"
	EnvLogLevel      = "AUTHDEMO_LOG_LEVEL"
)

// parseEnv overlays cfg with the variables that are set and non-empty.
// An unparsable boolean panics.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvServerBaseURL); ok && v != "" {
		cfg.ServerBaseURL = v
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvStrictLogout); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvStrictLogout, err))
		}
		cfg.StrictLogout = b
	}
}
