package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joboy-dev/portfolio.api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio.yaml"), []byte(body), 0o644))
}

func TestLoad_FromConfigPathWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
service:
  name: portfolio
server:
  port: "7001"
jwt:
  access_token_ttl: 30m
upload:
  allowed_extensions: [jpg, png]
`)
	t.Setenv("CONFIG_PATH", dir)
	t.Setenv("PORTFOLIO_SERVER_PORT", "9000")

	cfg, err := config.Load("portfolio")
	require.NoError(t, err)

	assert.Equal(t, "portfolio", cfg.GetString("service.name"))
	assert.Equal(t, "9000", cfg.GetString("server.port"))
	assert.Equal(t, 30*time.Minute, cfg.GetDuration("jwt.access_token_ttl"))
	assert.Equal(t, []string{"jpg", "png"}, cfg.GetStringSlice("upload.allowed_extensions"))
	assert.True(t, cfg.IsSet("service.name"))
	assert.False(t, cfg.IsSet("missing.key"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = config.Load("portfolio")
	assert.Error(t, err)
}
