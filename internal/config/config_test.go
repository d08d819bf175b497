package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "hangulmastery.db", cfg.Database.Path)
	assert.True(t, cfg.Database.AutoSeed)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Quiz.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Quiz.SweepInterval)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  mode: debug
quiz:
  session_ttl: 10m
  seed: 42
rate_limit:
  burst: 5
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DATABASE_PATH", "/tmp/learners.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env beats file")
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 10*time.Minute, cfg.Quiz.SessionTTL)
	assert.EqualValues(t, 42, cfg.Quiz.Seed)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, "/tmp/learners.db", cfg.Database.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("QUIZ_SESSION_TTL=45m\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUIZ_SESSION_TTL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Quiz.SessionTTL)
}

func TestLoadMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 8080, Mode: "release"},
		Database:  DatabaseConfig{Path: "x.db"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
		Quiz:      QuizConfig{SessionTTL: time.Minute, SweepInterval: time.Second},
		CORS:      CORSConfig{AllowOrigins: []string{"*"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"zero rps", func(c *Config) { c.RateLimit.RequestsPerSecond = 0 }, true},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
		{"tiny ttl", func(c *Config) { c.Quiz.SessionTTL = time.Millisecond }, true},
		{"sweep longer than ttl", func(c *Config) { c.Quiz.SweepInterval = 2 * time.Minute }, true},
		{"empty origin", func(c *Config) { c.CORS.AllowOrigins = []string{""} }, true},
		{"missing content dir", func(c *Config) { c.Content.Dir = "/definitely/not/here" }, true},
		{"content dir exists", func(c *Config) { c.Content.Dir = os.TempDir() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
