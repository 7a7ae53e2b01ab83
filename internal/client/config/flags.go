package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the auth service
//	-d string   path of the local SQLite database
//	-t int      request timeout (in seconds)
//	-i int      revalidation interval (in seconds)
//	-r int      validation retries on transport failure
//	-strict     log out on any validation failure
//	-ui string  front end: repl or tui
//	-l string   log level
//
// args is filtered with flagx so flags owned by other parsers do not
// interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgsWithBools(args,
		[]string{"-a", "-d", "-t", "-i", "-r", "-ui", "-l"},
		[]string{"-strict"},
	)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the auth service")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path to the local session database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	revalidateInterval := fs.Int("i", int(cfg.RevalidateInterval.Seconds()), "revalidation interval (in seconds)")
	fs.IntVar(&cfg.ValidateRetries, "r", cfg.ValidateRetries, "validation retries on transport failure")
	fs.BoolVar(&cfg.StrictLogout, "strict", cfg.StrictLogout, "log out on any validation failure")
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "front end: repl or tui")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are applied only when given, keeping sub-second JSON values.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.RevalidateInterval = time.Duration(*revalidateInterval) * time.Second
		}
	})

	if cfg.UI != UIRepl && cfg.UI != UITUI {
		panic(fmt.Errorf("unknown ui %q: want %s or %s", cfg.UI, UIRepl, UITUI))
	}
	if cfg.ValidateRetries < 0 {
		panic(fmt.Errorf("validate retries must not be negative, got %d", cfg.ValidateRetries))
	}
}
