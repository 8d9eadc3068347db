package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/postbox/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-k string   database driver: pgx or sqlite
//	-d string   database DSN
//	-t int      request timeout, seconds
//	-w int      shutdown grace period, seconds
//	-i int      database health check interval, seconds
//	-l string   log level
//
// Duration flags are whole seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-k", "-d", "-t", "-w", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to serve the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to serve gRPC health checks")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (pgx or sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown grace period (in seconds)")
	healthCheckInterval := fs.Int("i", int(config.HealthCheckInterval.Seconds()), "database health check interval (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	config.HealthCheckInterval = time.Duration(*healthCheckInterval) * time.Second
}
