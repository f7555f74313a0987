package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/meuponto/internal/timex"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk shape of Config. Intervals use timex.Duration so
// they can be written as "3s"; JSON additionally accepts nanoseconds.
type fileConfig struct {
	DatabasePath   string         `json:"database_path" toml:"database_path"`
	LogFile        string         `json:"log_file" toml:"log_file"`
	LogLevel       string         `json:"log_level" toml:"log_level"`
	CommandTimeout timex.Duration `json:"command_timeout" toml:"command_timeout"`
}

// parseFile overlays cfg with the keys present in the file at path. Files
// ending in .toml are TOML, anything else is JSON. Unknown keys are errors.
func parseFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	fc := fileConfig{
		DatabasePath:   cfg.DatabasePath,
		LogFile:        cfg.LogFile,
		LogLevel:       cfg.LogLevel,
		CommandTimeout: timex.Duration{Duration: cfg.CommandTimeout},
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&fc)
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.DatabasePath = fc.DatabasePath
	cfg.LogFile = fc.LogFile
	cfg.LogLevel = fc.LogLevel
	cfg.CommandTimeout = fc.CommandTimeout.Duration
	return nil
}
