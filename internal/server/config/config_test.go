package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5555", c.ListenAddr)
	assert.Equal(t, "memory://", c.DatabaseDSN)
	assert.Equal(t, "ChangeThisPepperForProd", c.Pepper)
	assert.Equal(t, 256, c.MaxConnections)
	assert.Equal(t, 5*time.Minute, c.IdleTimeout)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.SeedUsers)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"server"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_PositionalPort(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"server", "-a", "127.0.0.1:7000", "6000"}
	c := LoadConfig()
	assert.Equal(t, "127.0.0.1:6000", c.ListenAddr)

	os.Args = []string{"server", "6001"}
	c = LoadConfig()
	assert.Equal(t, ":6001", c.ListenAddr)

	os.Args = []string{"server", "port"}
	assert.Panics(t, func() { LoadConfig() })
}
