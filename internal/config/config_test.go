package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frames.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, l)
	d, err := cfg.EvalTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[engine]
timeout = "250ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1e-5, cfg.Geometry.Tolerance)
	d, err := cfg.EvalTimeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"level":     `log_level = "loud"`,
		"tolerance": "[geometry]\ntolerance = 0.0",
		"timeout":   "[engine]\ntimeout = \"soon\"",
		"syntax":    `log_level = `,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)

	// Without an explicit path a missing default file is not an error.
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
