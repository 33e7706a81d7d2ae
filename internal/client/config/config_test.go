package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvConfig, "")
	return dir
}

func writeINI(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	writeINI(t, filepath.Join(home, ".userdesk.ini"), "api_url = http://file/api/users\ntimeout = 3s\n")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "http://file/api/users", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	t.Setenv(EnvAPIURL, "http://env/api/users")
	cfg, err = Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "http://env/api/users", cfg.APIURL)

	cfg, err = Load("", "http://flag/api/users")
	require.NoError(t, err)
	assert.Equal(t, "http://flag/api/users", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "custom.ini")
	writeINI(t, custom, "api_url = http://custom/api/users\n")

	t.Setenv(EnvConfig, custom)
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "http://custom/api/users", cfg.APIURL)

	_, err = Load(filepath.Join(dir, "missing.ini"), "")
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.ini")
	writeINI(t, path, "timeout = soon\n")
	_, err := Load(path, "")
	assert.ErrorContains(t, err, "invalid timeout")
}
