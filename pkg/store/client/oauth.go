package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/de-tools/analytix/pkg/models/domain"
)

const ScopePrefix = "https://www.googleapis.com/auth/"

// AnalyticsScopes are every scope the reports endpoint accepts.
var AnalyticsScopes = []string{
	ScopePrefix + "yt-analytics.readonly",
	ScopePrefix + "yt-analytics-monetary.readonly",
}

// ResolveScopes expands short scope names and rejects scopes the reports
// endpoint does not know. No scopes, or the single scope "all", selects
// every analytics scope.
func ResolveScopes(scopes ...string) ([]string, error) {
	if len(scopes) == 0 || (len(scopes) == 1 && scopes[0] == "all") {
		return append([]string{}, AnalyticsScopes...), nil
	}

	resolved := make([]string, 0, len(scopes))
	var invalid []string
	for _, s := range scopes {
		if !strings.HasPrefix(s, ScopePrefix) {
			s = ScopePrefix + s
		}
		if !contains(AnalyticsScopes, s) {
			invalid = append(invalid, s)
			continue
		}
		resolved = append(resolved, s)
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("one or more scopes you provided are invalid: %s", strings.Join(invalid, ", "))
	}
	return resolved, nil
}

// Authorizer runs the installed-app authorization code flow.
type Authorizer struct {
	config *oauth2.Config
}

func NewAuthorizer(secrets domain.Secrets, scopes []string) (*Authorizer, error) {
	if secrets.ClientID == "" {
		return nil, fmt.Errorf("client id is missing from the secrets")
	}
	if len(secrets.RedirectURIs) == 0 {
		return nil, fmt.Errorf("no redirect uri in the secrets")
	}

	return &Authorizer{
		config: &oauth2.Config{
			ClientID:     secrets.ClientID,
			ClientSecret: secrets.ClientSecret,
			RedirectURL:  secrets.RedirectURIs[0],
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  secrets.AuthURI,
				TokenURL: secrets.TokenURI,
			},
		},
	}, nil
}

func (a *Authorizer) AuthCodeURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for an access token.
func (a *Authorizer) Exchange(ctx context.Context, code string) (domain.AuthState, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return domain.AuthState{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	zerolog.Ctx(ctx).Info().Time("expiry", token.Expiry).Msg("token retrieved")
	return domain.NewAuthState(token.AccessToken, token.Expiry), nil
}

// Authorise prints the consent URL to out, reads the code the user pastes
// from in and exchanges it.
func (a *Authorizer) Authorise(ctx context.Context, out io.Writer, in io.Reader) (domain.AuthState, error) {
	_, _ = fmt.Fprintf(out, "You need to authorise the session: %s\nCODE > ", a.AuthCodeURL("analytix"))

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return domain.AuthState{}, fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.AuthState{}, fmt.Errorf("%w: no authorization code given", domain.ErrUnauthorized)
	}
	return a.Exchange(ctx, code)
}

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}
