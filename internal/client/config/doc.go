// Package config loads runtime configuration for the postbox CLI.
//
// Sources, later ones winning: built-in defaults, an optional JSON file given
// with -c or -config, then command-line flags.
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:3000",
//	  "health_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
