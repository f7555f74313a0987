package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig   = "config"
	FlagDatabase = "db"
	FlagLogFile  = "log-file"
	FlagLogLevel = "log-level"
	FlagTimeout  = "timeout"
)

// RegisterFlags adds the configuration flags to fs, using the defaults of
// LoadDefaults for their help text.
//
//	-c, --config string      JSON or TOML config file
//	-d, --db string          SQLite database path
//	-l, --log-file string    rotating log file (empty logs to stderr)
//	    --log-level string   debug, info, warn or error
//	-t, --timeout duration   per-command timeout
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "JSON or TOML config file")
	fs.StringP(FlagDatabase, "d", d.DatabasePath, "SQLite database path")
	fs.StringP(FlagLogFile, "l", d.LogFile, "rotating log file (empty logs to stderr)")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.DurationP(FlagTimeout, "t", d.CommandTimeout, "per-command timeout")
}

// applyFlags copies the flags the user actually set into cfg, so that flag
// defaults never mask values read from the config file.
func applyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	if fs.Changed(FlagDatabase) {
		if cfg.DatabasePath, err = fs.GetString(FlagDatabase); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogFile) {
		if cfg.LogFile, err = fs.GetString(FlagLogFile); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTimeout) {
		if cfg.CommandTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	return nil
}
