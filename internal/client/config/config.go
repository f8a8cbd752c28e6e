package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the admin CLI.
//
// RequestTimeout of zero means requests never time out on the client side.
// PageSizeSet records that the page size came from the JSON file, the
// environment or a flag; a remembered page size then does not override it.
type Config struct {
	BaseURL        string        `env:"API_BASE_URL"`
	DBPath         string        `env:"ADMIN_DB_PATH"`
	PageSize       int           `env:"ADMIN_PAGE_SIZE"`
	RequestTimeout time.Duration `env:"ADMIN_REQUEST_TIMEOUT"`
	LogLevel       string        `env:"ADMIN_LOG_LEVEL"`
	LogFormat      string        `env:"ADMIN_LOG_FORMAT"`

	PageSizeSet bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080/api"
	c.DBPath = "memoradmin.db"
	c.PageSize = 10
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "console"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. Malformed input panics.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
