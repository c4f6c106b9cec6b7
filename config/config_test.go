package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "file", cfg.Storage.Type)
	assert.Equal(t, "rolling", cfg.Journal.Week)
	assert.Equal(t, "stub", cfg.Auth.Verifier)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"memory storage", func(c *Config) { c.Storage.Type = "memory" }, ""},
		{"unknown storage", func(c *Config) { c.Storage.Type = "s3" }, "storage.type must be"},
		{"file without dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir required"},
		{"sqlite without path", func(c *Config) { c.Storage.Type = "sqlite" }, "storage.db_path required"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad timezone", func(c *Config) { c.Journal.Timezone = "Mars/Olympus" }, "journal.timezone"},
		{"bad week", func(c *Config) { c.Journal.Week = "fortnight" }, "journal.week must be"},
		{"bad week start", func(c *Config) { c.Journal.WeekStart = "someday" }, "journal.week_start"},
		{"bad verifier", func(c *Config) { c.Auth.Verifier = "ldap" }, "auth.verifier must be"},
		{"bcrypt in memory", func(c *Config) { c.Auth.Verifier = "bcrypt"; c.Storage.Type = "memory" }, "needs persistent storage"},
		{"bad latency", func(c *Config) { c.Calendar.Latency = "soon" }, "calendar.latency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"toml format", ".toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Storage = StorageConfig{Type: "sqlite", Dir: "./data", DBPath: "/tmp/j.db"}
			cfg.Journal.Week = "calendar"
			cfg.Journal.WeekStart = "sunday"
			cfg.Calendar.Latency = "250ms"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))
			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadKeepsDefaultsForMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: memory\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stub", cfg.Auth.Verifier)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: floppy\n"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid config")
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FXJOURNAL_LOG_LEVEL=debug\nFXJOURNAL_WEEK=calendar\n"), 0644))

	t.Setenv("FXJOURNAL_STORAGE_TYPE", "sqlite")
	t.Setenv("FXJOURNAL_DB_PATH", filepath.Join(dir, "j.db"))
	t.Setenv("FXJOURNAL_REQUIRE_LOGIN", "true")
	t.Cleanup(func() {
		os.Unsetenv("FXJOURNAL_LOG_LEVEL")
		os.Unsetenv("FXJOURNAL_WEEK")
	})

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, filepath.Join(dir, "j.db"), cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "calendar", cfg.Journal.Week)
	assert.True(t, cfg.Auth.RequireLogin)
}

func TestApplyEnvMissingFileAndBadBool(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))

	t.Setenv("FXJOURNAL_REQUIRE_LOGIN", "maybe")
	assert.Error(t, Default().ApplyEnv(""))
}

func TestJournalHelpers(t *testing.T) {
	loc, err := JournalConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = JournalConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	d, err := JournalConfig{}.StartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = JournalConfig{WeekStart: "Sunday"}.StartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	lat, err := CalendarConfig{Latency: "1s"}.ParseLatency()
	require.NoError(t, err)
	assert.Equal(t, time.Second, lat)
}
