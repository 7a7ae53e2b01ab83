package config

import (
	"os"
	"time"
)

// UI front ends.
const (
	UIRepl = "repl"
	UITUI  = "tui"
)

// Config holds runtime settings for the authdemo client.
//
// Fields:
//   - ServerBaseURL: base address of the external auth service.
//   - DBPath: SQLite file holding the persisted token.
//   - RequestTimeout: upper bound for one request to the service.
//   - RevalidateInterval: how often an unreachable session is re-checked.
//   - ValidateRetries: extra attempts when validation cannot reach the service.
//   - StrictLogout: log out on any validation failure, including transport errors.
//   - UI: "repl" or "tui".
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerBaseURL      string
	DBPath             string
	RequestTimeout     time.Duration
	RevalidateInterval time.Duration
	ValidateRetries    int
	StrictLogout       bool
	UI                 string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DBPath = "session.db"
	c.RequestTimeout = 10 * time.Second
	c.RevalidateInterval = 30 * time.Second
	c.ValidateRetries = 0
	c.StrictLogout = false
	c.UI = UIRepl
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. Malformed input panics.
func LoadConfig() *Config {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, lookup)
	parseFlags(cfg, args)
	return cfg
}
