package config

import (
	"flag"
	"os"
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
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-d", "postgres://db", "-s", "pepper",
			"-m", "10", "-i", "30", "-w", "2", "-l", "debug", "-seed=false",
		}, expectPanic: false,
			expected: &Config{
				ListenAddr:      "127.0.0.1:9090",
				DatabaseDSN:     "postgres://db",
				Pepper:          "pepper",
				MaxConnections:  10,
				IdleTimeout:     30 * time.Second,
				ShutdownTimeout: 2 * time.Second,
				LogLevel:        "debug",
				SeedUsers:       false,
			}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-x", "-l", "warn"},
			expected: &Config{LogLevel: "warn"}},
		{name: "bad number", args: []string{"cmd", "-m", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
