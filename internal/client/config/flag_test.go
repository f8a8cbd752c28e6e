package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example.org", "-d", "/tmp/a.db", "-s", "50", "-t", "15s", "-l", "debug", "-f", "json"},
			expected: &Config{
				BaseURL: "https://api.example.org", DBPath: "/tmp/a.db", PageSize: 50,
				RequestTimeout: 15 * time.Second, LogLevel: "debug", LogFormat: "json", PageSizeSet: true,
			},
		},
		{
			name:     "config flag is ignored here",
			args:     []string{"-c", "x.json", "-s", "5"},
			expected: &Config{PageSize: 5, PageSizeSet: true},
		},
		{name: "bad page size", args: []string{"-s", "abc"}, expectPanic: true},
		{name: "bad timeout", args: []string{"-t", "forever"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
