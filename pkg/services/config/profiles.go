package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/de-tools/analytix/pkg/models/domain"
)

const (
	DefaultProfilesFile = ".analytixcfg"
	DefaultProfile      = "default"
	DefaultDatabase     = "analytix.db"
)

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath returns the profiles file in the home directory.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultProfilesFile), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*domain.ConfigProfile, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	secrets := section.Key("secrets").String()
	if secrets == "" {
		return nil, fmt.Errorf("profile %s has no secrets file", profile)
	}

	return &domain.ConfigProfile{
		Name:        profile,
		SecretsPath: expandHome(secrets),
		Database:    expandHome(section.Key("database").MustString(DefaultDatabase)),
		Currency:    section.Key("currency").MustString(domain.DefaultCurrency),
	}, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
