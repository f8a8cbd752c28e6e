package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/memoradmin/internal/flagx"
	"github.com/dmitrijs2005/memoradmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointers tell
// absent keys from zero values, so a partial file only overrides what it
// names.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	DBPath         *string         `json:"db_path"`
	PageSize       *int            `json:"page_size"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c or -config. Read or
// unmarshal errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
		cfg.PageSizeSet = true
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
