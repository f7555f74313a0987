// Package config loads runtime configuration for the meuponto client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file named by -c/--config. A ".toml" extension selects
//     TOML, anything else is read as JSON. Keys absent from the file keep
//     their default.
//  3. Command-line flags that were set explicitly.
//
// # File schema
//
//	{
//	  "database_path": "/home/me/.config/meuponto/meuponto.db",
//	  "log_file": "/home/me/.cache/meuponto/meuponto.log",
//	  "log_level": "info",
//	  "command_timeout": "5s"
//	}
//
// or, in TOML:
//
//	database_path = "meuponto.db"
//	log_level = "debug"
//	command_timeout = "5s"
//
// Environment variables are not read.
package config
