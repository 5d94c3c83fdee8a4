package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRegistry(t *testing.T) {
	// Given
	path := writeFile(t, ".analytixcfg", `
[default]
secrets = /etc/analytix/secrets.json
database = /var/lib/analytix.db

[brand]
secrets = ~/brand.json
currency = EUR

[empty]
`)

	// When
	registry, err := NewRegistry(path)
	require.NoError(t, err)
	ctx := context.Background()

	// Then
	profiles, err := registry.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "brand"}, profiles)

	cfg, err := registry.GetConfig(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "/etc/analytix/secrets.json", cfg.SecretsPath)
	assert.Equal(t, "/var/lib/analytix.db", cfg.Database)
	assert.Equal(t, "USD", cfg.Currency)

	cfg, err = registry.GetConfig(ctx, "brand")
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "brand.json"), cfg.SecretsPath)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, "EUR", cfg.Currency)

	_, err = registry.GetConfig(ctx, "empty")
	assert.ErrorContains(t, err, "no secrets file")

	_, err = registry.GetConfig(ctx, "missing")
	assert.ErrorContains(t, err, "profile missing not found")
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadSecrets(t *testing.T) {
	// Given
	path := writeFile(t, "secrets.json", `{
  "installed": {
    "client_id": "123.apps.googleusercontent.com",
    "project_id": "analytix-demo",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "client_secret": "shh",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob", "http://localhost"]
  }
}`)

	// When
	secrets, err := LoadSecrets(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "analytix-demo", secrets.ProjectID)
	assert.Equal(t, "123.apps.googleusercontent.com", secrets.ClientID)
	assert.Equal(t, "https://oauth2.googleapis.com/token", secrets.TokenURI)
	assert.Equal(t, []string{"urn:ietf:wg:oauth:2.0:oob", "http://localhost"}, secrets.RedirectURIs)
}

func TestLoadSecrets_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "web application secrets", content: `{"web": {"client_id": "x"}}`},
		{name: "missing token uri", content: `{"installed": {"client_id": "x", "auth_uri": "y"}}`},
		{name: "not json", content: `client_id = x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSecrets(writeFile(t, "secrets.json", tt.content))
			assert.Error(t, err)
		})
	}
}
