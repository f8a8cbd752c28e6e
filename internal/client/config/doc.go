// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: API_BASE_URL, ADMIN_DB_PATH, ADMIN_PAGE_SIZE,
//     ADMIN_REQUEST_TIMEOUT, ADMIN_LOG_LEVEL.
//  4. Command-line flags -a, -d, -s, -t, -l.
//
// # JSON schema
//
// Durations accept "30s" style strings or integer nanoseconds:
//
//	{
//	  "base_url": "https://api.example.org/api",
//	  "db_path": "/var/lib/memoradmin/admin.db",
//	  "page_size": 20,
//	  "request_timeout": "15s",
//	  "log_level": "debug"
//	}
package config
