package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/postbox/internal/flagx"
	"github.com/dmitrijs2005/postbox/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP    string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	DatabaseDriver      string         `json:"database_driver"`
	DatabaseDSN         string         `json:"database_dsn"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout"`
	HealthCheckInterval timex.Duration `json:"health_check_interval"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays config with the file named by -c/-config. Keys missing
// from the file leave the current value untouched. Read or decode failures
// panic, matching how flag errors are treated.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlayString(&config.DatabaseDriver, c.DatabaseDriver)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.LogLevel, c.LogLevel)

	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.HealthCheckInterval.Duration > 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
