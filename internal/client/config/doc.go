// Package config loads runtime configuration for the pharmacy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the pharmacy API
//	-i int      online status check interval (seconds)
//	-t string   file the access token is cached in
//	-r int      per-request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "online_check_interval": "3s",
//	  "token_file": "/home/me/.pharmacy-token",
//	  "request_timeout": "10s"
//	}
package config
