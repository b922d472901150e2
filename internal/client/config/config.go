package config

import "time"

// Config holds runtime settings for the booking CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the booking server.
//   - HeartbeatInterval: how often an idle session sends PING to the server.
type Config struct {
	ServerEndpointAddr string
	HeartbeatInterval  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:5555"
	c.HeartbeatInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
