package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Veraticus/lumina/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath      = "database.path"
	KeyDatabaseEphemeral = "database.ephemeral"
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyStrictPull        = "sync.strict_pull"
	KeyHistoryLimit      = "sync.history_limit"
	KeyAutoCheckpoint    = "checkpoint.auto"
)

// DefaultDatabasePath is used when no database path is configured.
const DefaultDatabasePath = "$HOME/.local/share/lumina/lumina.db"

// Config is the resolved runtime configuration.
type Config struct {
	DatabasePath   string
	LogLevel       string
	LogFormat      string
	HistoryLimit   int
	Ephemeral      bool
	StrictPull     bool
	AutoCheckpoint bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyDatabaseEphemeral, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyStrictPull, false)
	v.SetDefault(KeyHistoryLimit, 10)
	v.SetDefault(KeyAutoCheckpoint, true)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		Ephemeral:      v.GetBool(KeyDatabaseEphemeral),
		LogLevel:       strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:      strings.ToLower(v.GetString(KeyLogFormat)),
		StrictPull:     v.GetBool(KeyStrictPull),
		HistoryLimit:   v.GetInt(KeyHistoryLimit),
		AutoCheckpoint: v.GetBool(KeyAutoCheckpoint),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if !c.Ephemeral && strings.TrimSpace(c.DatabasePath) == "" {
		problems = append(problems, "database.path must not be empty")
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.LogFormat))
	}
	if c.HistoryLimit < 0 {
		problems = append(problems, "sync.history_limit must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// LoadDotEnv loads environment variables from the given files, skipping
// files that do not exist. Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
