package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 6, cfg.API.MaxParallel)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.Equal(t, 600*time.Millisecond, cfg.Battle.DisplayDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.Battle.AIDelay)
	assert.Equal(t, 2*time.Second, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, "pokeref.db", cfg.Store.Path)
	assert.Equal(t, 10*time.Minute, cfg.Server.SessionIdleTTL)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokeref.yaml")
	body := []byte(`
log:
  debug: true
cache:
  redis_addr: "localhost:6379"
  ttl: 5m
battle:
  ai_delay: 10ms
  seed: 42
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Millisecond, cfg.Battle.AIDelay)
	assert.Equal(t, uint64(42), cfg.Battle.Seed)
	// untouched keys keep their defaults
	assert.Equal(t, 600*time.Millisecond, cfg.Battle.DisplayDelay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("POKEREF_STORE_PATH", "/tmp/other.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
}

func TestLoadWithFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("server.addr", ":8080", "")
	require.NoError(t, fs.Parse([]string{"--server.addr=:9999"}))

	cfg, err := LoadWithFlags("", fs)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}
