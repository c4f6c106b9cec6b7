package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the complete journal configuration
type Config struct {
	Storage  StorageConfig  `json:"storage" yaml:"storage" toml:"storage"`
	Log      LogConfig      `json:"log" yaml:"log" toml:"log"`
	Journal  JournalConfig  `json:"journal" yaml:"journal" toml:"journal"`
	Auth     AuthConfig     `json:"auth" yaml:"auth" toml:"auth"`
	Calendar CalendarConfig `json:"calendar" yaml:"calendar" toml:"calendar"`
}

// StorageConfig selects where on-device state lives
type StorageConfig struct {
	Type   string `json:"type" yaml:"type" toml:"type"` // "memory", "file" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" toml:"db_path,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format" toml:"format"` // console or json
}

// JournalConfig controls how dates are bucketed for statistics
type JournalConfig struct {
	Timezone  string `json:"timezone" yaml:"timezone" toml:"timezone"`
	Week      string `json:"week" yaml:"week" toml:"week"` // "rolling" or "calendar"
	WeekStart string `json:"week_start,omitempty" yaml:"week_start,omitempty" toml:"week_start,omitempty"`
}

type AuthConfig struct {
	Verifier     string `json:"verifier" yaml:"verifier" toml:"verifier"` // "stub" or "bcrypt"
	RequireLogin bool   `json:"require_login" yaml:"require_login" toml:"require_login"`
}

type CalendarConfig struct {
	Latency string `json:"latency,omitempty" yaml:"latency,omitempty" toml:"latency,omitempty"` // e.g. "1s"
}

// Location resolves the configured timezone; empty means local time.
func (j JournalConfig) Location() (*time.Location, error) {
	if j.Timezone == "" || strings.EqualFold(j.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(j.Timezone)
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// StartDay parses WeekStart; empty means Monday.
func (j JournalConfig) StartDay() (time.Weekday, error) {
	if j.WeekStart == "" {
		return time.Monday, nil
	}
	d, ok := weekdays[strings.ToLower(j.WeekStart)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", j.WeekStart)
	}
	return d, nil
}

// ParseLatency converts the latency string to time.Duration
func (c CalendarConfig) ParseLatency() (time.Duration, error) {
	if c.Latency == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Latency)
}

func isTOML(path string) bool {
	return strings.HasSuffix(path, ".toml")
}

// LoadFromFile loads configuration from a file (YAML, JSON or TOML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (toml): %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		// Try YAML first, fall back to JSON
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON, YAML or TOML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch {
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		data, err = yaml.Marshal(c)
	case isTOML(path):
		data, err = toml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads envFile (if present) and lets FXJOURNAL_* variables
// override the file settings.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	str := map[string]*string{
		"FXJOURNAL_STORAGE_TYPE":   &c.Storage.Type,
		"FXJOURNAL_STORAGE_DIR":    &c.Storage.Dir,
		"FXJOURNAL_DB_PATH":        &c.Storage.DBPath,
		"FXJOURNAL_LOG_LEVEL":      &c.Log.Level,
		"FXJOURNAL_LOG_FORMAT":     &c.Log.Format,
		"FXJOURNAL_TIMEZONE":       &c.Journal.Timezone,
		"FXJOURNAL_WEEK":           &c.Journal.Week,
		"FXJOURNAL_WEEK_START":     &c.Journal.WeekStart,
		"FXJOURNAL_AUTH_VERIFIER":  &c.Auth.Verifier,
		"FXJOURNAL_CALENDAR_DELAY": &c.Calendar.Latency,
	}
	for k, dst := range str {
		if v, ok := os.LookupEnv(k); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("FXJOURNAL_REQUIRE_LOGIN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FXJOURNAL_REQUIRE_LOGIN: %w", err)
		}
		c.Auth.RequireLogin = b
	}

	return c.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory":
	case "file":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir required for file storage")
		}
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path required for sqlite storage")
		}
	default:
		return fmt.Errorf("storage.type must be 'memory', 'file' or 'sqlite'")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}

	if _, err := c.Journal.Location(); err != nil {
		return fmt.Errorf("journal.timezone: %w", err)
	}
	if c.Journal.Week != "rolling" && c.Journal.Week != "calendar" {
		return fmt.Errorf("journal.week must be 'rolling' or 'calendar'")
	}
	if _, err := c.Journal.StartDay(); err != nil {
		return fmt.Errorf("journal.week_start: %w", err)
	}

	if c.Auth.Verifier != "stub" && c.Auth.Verifier != "bcrypt" {
		return fmt.Errorf("auth.verifier must be 'stub' or 'bcrypt'")
	}
	if c.Auth.Verifier == "bcrypt" && c.Storage.Type == "memory" {
		return fmt.Errorf("auth.verifier 'bcrypt' needs persistent storage")
	}

	if _, err := c.Calendar.ParseLatency(); err != nil {
		return fmt.Errorf("calendar.latency: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type: "file",
			Dir:  "./fxjournal-data",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Journal: JournalConfig{
			Timezone: "Local",
			Week:     "rolling",
		},
		Auth: AuthConfig{
			Verifier: "stub",
		},
	}
}
