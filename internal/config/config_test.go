package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gointegral"
	"github.com/njchilds90/gointegral/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "scan", cfg.Mode)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, "C", cfg.Constant)
	assert.Equal(t, -1, cfg.Precision)
	assert.True(t, cfg.Prompt)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integral.yaml")
	body := "mode: grouped\nconstant: K\nserver:\n  addr: \":9090\"\n  write_timeout: 3s\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "grouped", cfg.Mode)
	assert.Equal(t, "K", cfg.Constant)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("INTEGRAL_OUTPUT", "json")
	t.Setenv("INTEGRAL_SERVER_ADDR", ":7000")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := config.New()
	v.Set("mode", "fuzzy")
	_, err := config.Load(v, "")
	require.ErrorContains(t, err, "unknown parse mode")

	v = config.New()
	v.Set("output", "xml")
	_, err = config.Load(v, "")
	require.ErrorContains(t, err, "unknown output format")
}

func TestOptions(t *testing.T) {
	v := config.New()
	v.Set("constant", "K")
	v.Set("mode", "strict")
	cfg, err := config.Load(v, "")
	require.NoError(t, err)

	out, err := gointegral.IndefiniteIntegral("-2*x^3", cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "-0.5*x^4 + K", out)

	_, err = gointegral.IndefiniteIntegral("x^1 + x^2", cfg.Options()...)
	require.ErrorIs(t, err, gointegral.ErrParse)
}
