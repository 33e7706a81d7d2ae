// Package config resolves the client settings: the users endpoint and the
// request timeout.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"
)

const (
	DefaultAPIURL  = "http://localhost:8080/api/users"
	DefaultTimeout = 10 * time.Second

	EnvAPIURL = "USERDESK_API_URL"
	EnvConfig = "USERDESK_CONFIG"
)

type Config struct {
	APIURL  string
	Timeout time.Duration
}

type fileConfig struct {
	APIURL  string `ini:"api_url"`
	Timeout string `ini:"timeout"`
}

// DefaultPath returns the INI file consulted when neither --config nor
// USERDESK_CONFIG names one.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".userdesk.ini")
}

// Load merges, from lowest to highest precedence, the defaults, the INI file,
// the environment and flagURL. An explicitly named file must exist; the
// default file is optional.
func Load(path, flagURL string) (Config, error) {
	cfg := Config{APIURL: DefaultAPIURL, Timeout: DefaultTimeout}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if flagURL != "" {
		cfg.APIURL = flagURL
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := f.Section("").MapTo(&fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("config %s: invalid timeout %q", path, fc.Timeout)
		}
		c.Timeout = d
	}
	return nil
}
