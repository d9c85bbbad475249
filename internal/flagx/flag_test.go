package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	cfgFlags := []string{"-c", "-config", "--config"}

	cases := map[string]struct {
		args    []string
		allowed []string
		want    []string
	}{
		"separate value": {
			args:    []string{"-c", "desk.json", "-a", "https://api.salemerge.in/api"},
			allowed: cfgFlags,
			want:    []string{"-c", "desk.json"},
		},
		"equals form": {
			args:    []string{"-l", "debug", "--config=desk.json"},
			allowed: cfgFlags,
			want:    []string{"--config=desk.json"},
		},
		"order kept across forms": {
			args:    []string{"-config=a.json", "-d", "q.db", "-c", "b.json"},
			allowed: cfgFlags,
			want:    []string{"-config=a.json", "-c", "b.json"},
		},
		"nothing allowed present": {
			args:    []string{"-t", "10", "-l=warn", "stray"},
			allowed: cfgFlags,
			want:    []string{},
		},
		"trailing flag without value": {
			args:    []string{"-d", "q.db", "-c"},
			allowed: cfgFlags,
			want:    []string{"-c"},
		},
		"dash token is not a value": {
			args:    []string{"-c", "-l", "info"},
			allowed: cfgFlags,
			want:    []string{"-c"},
		},
		"value starting with dashes after equals": {
			args:    []string{"--config=--odd.json"},
			allowed: cfgFlags,
			want:    []string{"--config=--odd.json"},
		},
		"runtime flags picked together": {
			args:    []string{"-c", "desk.json", "-a", "http://localhost:3000/api", "-t", "5", "-x"},
			allowed: []string{"-a", "-t"},
			want:    []string{"-a", "http://localhost:3000/api", "-t", "5"},
		},
		"repeated flag": {
			args:    []string{"-d", "one.db", "-d", "two.db"},
			allowed: []string{"-d"},
			want:    []string{"-d", "one.db", "-d", "two.db"},
		},
		"empty": {
			args:    nil,
			allowed: cfgFlags,
			want:    []string{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/quotedesk.json", ConfigPath([]string{"-c", "/etc/quotedesk.json"}))
	assert.Equal(t, "desk.json", ConfigPath([]string{"-a", "http://x/api", "-config", "desk.json"}))
	assert.Equal(t, "eq.json", ConfigPath([]string{"--config=eq.json", "-l", "debug"}))
	assert.Equal(t, "second.json", ConfigPath([]string{"-c", "first.json", "-config", "second.json"}))
	assert.Empty(t, ConfigPath([]string{"-d", "q.db", "-t", "3"}))
	assert.Empty(t, ConfigPath(nil))
}
