package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-a", "http://api", "-x", "1"}, []string{"-a"}, []string{"-a", "http://api"}},
		{"equals form", []string{"-s=50", "-a", "x"}, []string{"-s"}, []string{"-s=50"}},
		{"unknown flags ignored", []string{"-x", "1", "--y=2", "positional"}, []string{"-c"}, []string{}},
		{"flag at end without value", []string{"-c"}, []string{"-c"}, []string{"-c"}},
		{"next dash token is not a value", []string{"-c", "-config=alt.json"}, []string{"-c", "-config"}, []string{"-c", "-config=alt.json"}},
		{"repeats kept in order", []string{"-t", "5s", "-t", "10s"}, []string{"-t"}, []string{"-t", "5s", "-t", "10s"}},
		{"empty", nil, []string{"-c"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/admin.json", ConfigPath([]string{"-c", "/etc/admin.json"}))
	assert.Equal(t, "/etc/long.json", ConfigPath([]string{"-a", "http://x", "-config", "/etc/long.json"}))
	assert.Equal(t, "/2.json", ConfigPath([]string{"-c", "/1.json", "-config=/2.json"}))
	assert.Empty(t, ConfigPath([]string{"-s", "20"}))
}
