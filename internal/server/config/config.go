// Package config handles configuration for the server component,
// including defaults, JSON overlay, command-line flags and the optional
// positional port argument.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/common"
)

// Config holds runtime settings for the booking server.
//
// Fields:
//   - ListenAddr: TCP bind address of the line protocol.
//   - DatabaseDSN: "memory://" for the in-process store or a PostgreSQL DSN (pgx).
//   - Pepper: server-wide secret mixed into every password hash. Do not use the default in prod.
//   - MaxConnections: upper bound of concurrently served connections.
//   - IdleTimeout: a connection silent for this long is closed.
//   - ShutdownTimeout: grace period for open connections on shutdown.
//   - LogLevel: debug, info, warn or error.
//   - SeedUsers: create the default admin and employee accounts at startup.
type Config struct {
	ListenAddr      string
	DatabaseDSN     string
	Pepper          string
	MaxConnections  int
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	SeedUsers       bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the pepper is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = fmt.Sprintf(":%d", common.DefaultPort)
	c.DatabaseDSN = "memory://"
	c.Pepper = "ChangeThisPepperForProd"
	c.MaxConnections = 256
	c.IdleTimeout = 5 * time.Minute
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.SeedUsers = true
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, then command-line flags and finally a bare
// port argument.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parsePositional(cfg)
	return cfg
}
