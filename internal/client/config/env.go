package config

import "github.com/caarlos0/env/v11"

const pageSizeEnv = "ADMIN_PAGE_SIZE"

// parseEnv overlays cfg with variables that are set; unset ones keep the
// current value.
func parseEnv(cfg *Config) {
	opts := env.Options{
		OnSet: func(tag string, value any, isDefault bool) {
			if tag == pageSizeEnv && !isDefault && value != "" {
				cfg.PageSizeSet = true
			}
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		panic(err)
	}
}
