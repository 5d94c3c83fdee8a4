package domain

import "fmt"

// ConfigProfile is one named section of the profiles file.
type ConfigProfile struct {
	Name        string
	SecretsPath string
	Database    string
	Currency    string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.SecretsPath)
}

// Secrets are the OAuth client credentials of a Google Developers project.
type Secrets struct {
	ProjectID    string
	ClientID     string
	ClientSecret string
	AuthURI      string
	TokenURI     string
	RedirectURIs []string
}
