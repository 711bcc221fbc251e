package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the stories API
//	-t int      request timeout in seconds, 0 for none
//	-r float    outbound requests per second, 0 to disable throttling
//	-n int      number of stories to request, 0 for the server default
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn or error
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-r", "-n", "-d", "-l"})

	fs := flag.NewFlagSet("hackorsnooze", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the stories API")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "requests per second")
	fs.IntVar(&cfg.StoriesLimit, "n", cfg.StoriesLimit, "stories to request")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
