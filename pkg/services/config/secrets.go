package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/analytix/pkg/models/domain"
)

// installedSecrets mirrors the "installed" object of a client secrets file
// downloaded from the Google Developers console.
type installedSecrets struct {
	ProjectID    string   `mapstructure:"project_id"`
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	AuthURI      string   `mapstructure:"auth_uri"`
	TokenURI     string   `mapstructure:"token_uri"`
	RedirectURIs []string `mapstructure:"redirect_uris"`
}

// LoadSecrets reads the client secrets of an installed application.
func LoadSecrets(path string) (*domain.Secrets, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}
	if !v.IsSet("installed") {
		return nil, fmt.Errorf("secrets file %s has no installed application", path)
	}

	var s installedSecrets
	if err := v.UnmarshalKey("installed", &s); err != nil {
		return nil, fmt.Errorf("failed to parse secrets: %w", err)
	}
	if s.ClientID == "" || s.TokenURI == "" || s.AuthURI == "" {
		return nil, fmt.Errorf("secrets file %s is missing client_id, auth_uri or token_uri", path)
	}

	return &domain.Secrets{
		ProjectID:    s.ProjectID,
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		AuthURI:      s.AuthURI,
		TokenURI:     s.TokenURI,
		RedirectURIs: s.RedirectURIs,
	}, nil
}
