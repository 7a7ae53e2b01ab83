package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
	"github.com/dmitrijs2005/authdemo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value, so a file only overrides
// what it names. Durations go through timex.Duration and may be strings
// like "30s" or integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL      *string         `json:"server_base_url"`
	DBPath             *string         `json:"db_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	RevalidateInterval *timex.Duration `json:"revalidate_interval"`
	ValidateRetries    *int            `json:"validate_retries"`
	StrictLogout       *bool           `json:"strict_logout"`
	UI                 *string         `json:"ui"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c or -config in args.
// Without such a flag nothing happens. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFileFlag(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RevalidateInterval != nil {
		cfg.RevalidateInterval = jc.RevalidateInterval.Duration
	}
	if jc.ValidateRetries != nil {
		cfg.ValidateRetries = *jc.ValidateRetries
	}
	if jc.StrictLogout != nil {
		cfg.StrictLogout = *jc.StrictLogout
	}
	if jc.UI != nil {
		cfg.UI = *jc.UI
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
