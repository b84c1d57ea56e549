package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "LOG_LEVEL", "DATA_DIR", "DB_PATH", "SESSION_PATH", "BLOCKING_TIMEOUT"} {
		t.Setenv(envPrefix+"_"+key, "")
	}

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, defaultEnv, cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, defaultLogLevel, cfg.LogLevel)
	assert.Equal(t, filepath.Join(defaultDataDir, "gymlog.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(defaultDataDir, "session.yaml"), cfg.SessionPath)
	assert.Equal(t, defaultBlockingTimeout, cfg.BlockingTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GYMLOG_ENV", "Production")
	t.Setenv("GYMLOG_LOG_LEVEL", "DEBUG")
	t.Setenv("GYMLOG_DATA_DIR", dir)
	t.Setenv("GYMLOG_DB_PATH", "")
	t.Setenv("GYMLOG_SESSION_PATH", filepath.Join(dir, "me.yaml"))
	t.Setenv("GYMLOG_BLOCKING_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Same(t, cfg, AppConfig)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "gymlog.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "me.yaml"), cfg.SessionPath)
	assert.Equal(t, 250*time.Millisecond, cfg.BlockingTimeout)
}

func TestLoad_RejectsNegativeTimeout(t *testing.T) {
	t.Setenv("GYMLOG_BLOCKING_TIMEOUT", "-1s")

	_, err := Load()
	assert.Error(t, err)
}
