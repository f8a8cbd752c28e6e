package config

import (
	"flag"

	"github.com/dmitrijs2005/memoradmin/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     backend base URL
//	-d string     local SQLite database path
//	-s int        default page size
//	-t duration   request timeout, 0 disables it
//	-l string     log level
//	-f string     log format: console or json
//
// args are filtered with flagx.FilterArgs first so -c/-config do not trip
// the parser.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.IntVar(&cfg.PageSize, "s", cfg.PageSize, "default page size")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout (0 = none)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: console or json")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			cfg.PageSizeSet = true
		}
	})
}
