// Package config loads runtime configuration for the Wayfarer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-i int      online status check interval (seconds)
//	-d string   cache directory root
//	-b string   local database path
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "online_check_interval": "3s",
//	  "probe_timeout": "2s",
//	  "cache_dir": "/var/cache/wayfarer",
//	  "database_path": "/var/lib/wayfarer/wayfarer.db",
//	  "log_level": "debug"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
