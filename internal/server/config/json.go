package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/apptbook/internal/flagx"
	"github.com/dmitrijs2005/apptbook/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// Absent keys leave the current value untouched.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	Pepper          string         `json:"pepper"`
	MaxConnections  int            `json:"max_connections"`
	IdleTimeout     timex.Duration `json:"idle_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	LogLevel        string         `json:"log_level"`
	SeedUsers       *bool          `json:"seed_users"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.Pepper, c.Pepper)
	setString(&config.LogLevel, c.LogLevel)
	if c.MaxConnections > 0 {
		config.MaxConnections = c.MaxConnections
	}
	if c.IdleTimeout.Duration > 0 {
		config.IdleTimeout = c.IdleTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.SeedUsers != nil {
		config.SeedUsers = *c.SeedUsers
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
