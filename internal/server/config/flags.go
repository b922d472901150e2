package config

import (
	"flag"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/flagx"
)

// valuedFlags are the flags of this package that take a value.
var valuedFlags = []string{"-a", "-d", "-s", "-m", "-i", "-w", "-l", "-c", "-config"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (e.g., ":5555")
//	-d string   database DSN ("memory://" or "postgres://...")
//	-s string   password pepper
//	-m int      max concurrent connections
//	-i int      idle timeout, seconds
//	-w int      shutdown timeout, seconds
//	-l string   log level
//	-seed bool  seed default accounts (use -seed=false to disable)
//
// Duration flags are accepted as integers in seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-m", "-i", "-w", "-l", "-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to listen on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Pepper, "s", config.Pepper, "password pepper")
	fs.IntVar(&config.MaxConnections, "m", config.MaxConnections, "max concurrent connections")

	idleTimeout := fs.Int("i", int(config.IdleTimeout.Seconds()), "idle timeout (in seconds)")
	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.BoolVar(&config.SeedUsers, "seed", config.SeedUsers, "seed default accounts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.IdleTimeout = time.Duration(*idleTimeout) * time.Second
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}

// parsePositional applies "server <port>": a bare numeric argument replaces
// the port of ListenAddr and keeps its host.
func parsePositional(config *Config) {
	rest := flagx.Positional(os.Args[1:], valuedFlags)
	if len(rest) == 0 {
		return
	}

	port, err := strconv.Atoi(rest[0])
	if err != nil || port <= 0 || port > 65535 {
		panic("invalid port argument: " + rest[0])
	}

	host, _, err := net.SplitHostPort(config.ListenAddr)
	if err != nil {
		host = ""
	}
	config.ListenAddr = net.JoinHostPort(host, strconv.Itoa(port))
}
