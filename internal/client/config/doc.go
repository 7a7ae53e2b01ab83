// Package config loads runtime configuration for the authdemo client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the auth service
//	-d string   local session database
//	-t int      request timeout (seconds)
//	-i int      revalidation interval (seconds)
//	-r int      validation retries on transport failure
//	-strict     log out on any validation failure
//	-ui string  repl or tui
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds. Absent keys keep the previous value:
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "db_path": "session.db",
//	  "request_timeout": "10s",
//	  "revalidate_interval": "30s",
//	  "validate_retries": 0,
//	  "strict_logout": false,
//	  "ui": "repl",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	AUTHDEMO_API_URL, AUTHDEMO_DB, AUTHDEMO_STRICT_LOGOUT, AUTHDEMO_LOG_LEVEL
package config
