package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

// Config holds runtime settings of the meuponto client.
type Config struct {
	// DatabasePath is the SQLite file; ":memory:" keeps everything in RAM.
	DatabasePath string `validate:"required"`
	// LogFile enables the rotating JSON log. Empty logs to stderr.
	LogFile  string
	LogLevel string `validate:"oneof=debug info warn error"`
	// CommandTimeout bounds every storage-touching command.
	CommandTimeout time.Duration `validate:"gt=0"`
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = DefaultDatabasePath()
	c.LogFile = ""
	c.LogLevel = "warn"
	c.CommandTimeout = 10 * time.Second
}

// DefaultDatabasePath is meuponto/meuponto.db under the user config dir, or
// meuponto.db in the working directory when that dir is unknown.
func DefaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "meuponto.db"
	}
	return filepath.Join(dir, "meuponto", "meuponto.db")
}

// Validate reports the first problems with c wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	v := validator.New()
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v (%s)", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, ", "))
}

// LoadConfig builds a Config from defaults, then the file named by the
// "config" flag (if any), then every flag that was set explicitly. Later
// sources take precedence.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := parseFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
