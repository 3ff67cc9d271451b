package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFullEnv(t *testing.T) {
	t.Helper()
	for name, value := range map[string]string{
		"WORDPRESS_USERNAME":             "user",
		"WORDPRESS_APPLICATION_PASSWORD": "app-pass",
		"WORDPRESS_CLIENT_ID":            "client-id",
		"WORDPRESS_CLIENT_SECRET":        "client-secret",
		"WORDPRESS_SITE_ID":              "site123",
		"GITHUB_TOKEN":                   "gh-token",
		"LLM_BASE_URL":                   "https://llm.example.com/v1",
		"LLM_AUTH_TOKEN":                 "llm-token",
		"LLM_DEFAULT_MODEL":              "some-model",
	} {
		t.Setenv(name, value)
	}
	t.Setenv("BLOGBOT_CONFIG_PATH", "")
}

func TestLoad(t *testing.T) {
	setFullEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "user", cfg.WordPress.Username)
	assert.Equal(t, "site123", cfg.WordPress.SiteID)
	assert.Equal(t, "gh-token", cfg.Github.Token)
	assert.Equal(t, "lsimons-bot", cfg.Github.Username)
	assert.Equal(t, "bot@leosimons.com", cfg.Github.AuthorEmail)
	assert.Equal(t, "some-model", cfg.LLM.Model)

	assert.Equal(t, 5, cfg.Gates.MinCommits)
	assert.Equal(t, 200, cfg.Gates.MinLines)
	assert.Equal(t, 24, cfg.Gates.CooldownHours)
	assert.Equal(t, 7, cfg.Gates.WindowDays)
}

func TestLoadReportsAllMissingVars(t *testing.T) {
	setFullEnv(t)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("LLM_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.Contains(t, err.Error(), "LLM_BASE_URL")
	assert.NotContains(t, err.Error(), "WORDPRESS_USERNAME")
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	setFullEnv(t)

	path := filepath.Join(t.TempDir(), "blogbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
github:
  username: someone-else
gates:
  min_commits: 3
  cooldown_hours: 48
`), 0o600))
	t.Setenv("BLOGBOT_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "someone-else", cfg.Github.Username)
	assert.Equal(t, "bot@leosimons.com", cfg.Github.AuthorEmail, "unset override keeps default")
	assert.Equal(t, 3, cfg.Gates.MinCommits)
	assert.Equal(t, 48, cfg.Gates.CooldownHours)
	assert.Equal(t, 200, cfg.Gates.MinLines)
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	setFullEnv(t)
	t.Setenv("BLOGBOT_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}
