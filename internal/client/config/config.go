package config

import "time"

// Config holds runtime settings for the postbox CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the HTTP API.
//   - HealthEndpointAddr: host:port of the gRPC health endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerEndpointAddr  string
	HealthEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:3000"
	c.HealthEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
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
