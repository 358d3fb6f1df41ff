package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http-port: :8088\n"), 0644))

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)

	// 文件中的值覆盖默认值
	assert.Equal(t, ":8088", cfg.Server.HttpPort)

	// 未配置的字段使用默认值
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 10, cfg.App.DefaultPageSize)
	assert.Equal(t, "viewer", cfg.User.DefaultRole)
	assert.True(t, cfg.User.RegisterIsEnable)
	assert.False(t, cfg.App.StrictAmountCheck)
	assert.Equal(t, "X-Trace-ID", cfg.Tracer.Header)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("user:\n  default-role: editor\n"), 0644))

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "editor", cfg.User.DefaultRole)

	cfg.App.StrictAmountCheck = true
	require.NoError(t, cfg.Save())

	reloaded, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, reloaded.App.StrictAmountCheck)
	assert.Equal(t, "editor", reloaded.User.DefaultRole)
}

func TestGetTokenExpiry(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Security.TokenExpiry = "7d"
	assert.Equal(t, 7*24*time.Hour, cfg.GetTokenExpiry())

	cfg.Security.TokenExpiry = "bogus"
	assert.Equal(t, 365*24*time.Hour, cfg.GetTokenExpiry())
}

func TestGetMaintenanceInterval(t *testing.T) {
	cfg := &AppConfig{}
	cfg.App.MaintenanceInterval = "1h"
	assert.Equal(t, time.Hour, cfg.GetMaintenanceInterval())

	cfg.App.MaintenanceInterval = ""
	assert.Equal(t, 24*time.Hour, cfg.GetMaintenanceInterval())
}
