package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Missing everything.
	cfg := new(Config)

	err := Validate(cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConfiguration)

	// Missing password.
	cfg = &Config{
		BaseURL:  "https://docs.example.com",
		Username: "publisher",
	}

	err = Validate(cfg)
	require.ErrorIs(t, err, ErrConfiguration)

	// Malformed URL.
	cfg = &Config{
		BaseURL:  "not a url",
		Username: "publisher",
		Password: "secret",
	}

	err = Validate(cfg)
	require.ErrorIs(t, err, ErrConfiguration)

	// Complete configuration fills defaults.
	cfg = &Config{
		BaseURL:  "https://docs.example.com",
		Username: "publisher",
		Password: "secret",
	}

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultCollection, cfg.Collection)
	require.Equal(t, DefaultPackageName, cfg.PackageName)
	require.Equal(t, DefaultUploadTimeout, cfg.UploadTimeout)
	require.Equal(t, DefaultPollInterval, cfg.PollInterval)
	require.Equal(t, DefaultPollBudget, cfg.PollBudget)
}

// TestLoad_SettingsFileAndEnv ensures YAML settings and env credentials combine.
func TestLoad_SettingsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	contents := []byte("collection: handbook\npoll_interval: 1s\npoll_budget: 5\n")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	t.Setenv(EnvBaseURL, "https://docs.example.com/")
	t.Setenv(EnvUsername, "publisher")
	t.Setenv(EnvPassword, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Trailing slash is trimmed so URL joins stay predictable.
	require.Equal(t, "https://docs.example.com", cfg.BaseURL)
	require.Equal(t, "handbook", cfg.Collection)
	require.Equal(t, time.Second, cfg.PollInterval)
	require.Equal(t, 5, cfg.PollBudget)
	require.Equal(t, DefaultPackageName, cfg.PackageName)
}

// TestLoad_MissingFileUsesDefaults verifies the settings file is optional.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://docs.example.com")
	t.Setenv(EnvUsername, "publisher")
	t.Setenv(EnvPassword, "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultCollection, cfg.Collection)
}

// TestLoad_MissingCredentials verifies the pre-flight check fires before any network use.
func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrConfiguration))
}
