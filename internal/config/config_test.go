package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		// viper treats an explicitly named missing file as an error
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("loads values from file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte(`
database:
  host: db.internal
  port: 3307
  database: exams
  username: drill
server:
  port: 9000
streak:
  default_target: 15
  replay_policy: replay
`)
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 3307, cfg.Database.Port)
		assert.Equal(t, "exams", cfg.Database.Database)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 15, cfg.Streak.DefaultTarget)
		assert.Equal(t, "replay", cfg.Streak.ReplayPolicy)
		// untouched defaults survive
		assert.Equal(t, filepath.Join("outputs", "reports"), cfg.Reports.OutputDirectory)
	})

	t.Run("secrets come from the environment", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database:\n  host: localhost\n"), 0o644))

		t.Setenv("OPODRILL_DB_PASSWORD", "hunter2")
		t.Setenv("OPODRILL_JWT_SECRET", "topsecret")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", cfg.Database.Password)
		assert.Equal(t, "topsecret", cfg.Server.JWTSecret)
	})

	t.Run("rejects invalid replay policy", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("streak:\n  replay_policy: sometimes\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "replay_policy")
	})
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Database: DatabaseConfig{Host: "localhost", Port: 3306, Database: "opodrill", Username: "opodrill"},
		Server:   ServerConfig{Port: 8080},
		Reports:  ReportsConfig{OutputDirectory: "outputs"},
		Streak:   StreakConfig{DefaultTarget: 10, ReplayPolicy: "strict"},
	}
	assert.NoError(t, Validate(valid))

	broken := *valid
	broken.Database.Host = ""
	err := Validate(&broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}
