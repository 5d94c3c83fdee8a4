package report

import (
	"context"
	"fmt"

	"github.com/de-tools/analytix/pkg/adapters"
	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/store/duckdb/token"
)

// Credentials resolves the credential cached for a profile.
type Credentials interface {
	AuthState(ctx context.Context, profile string) (domain.AuthState, error)
	Store(ctx context.Context, profile string, state domain.AuthState, scopes []string) error
}

type storedCredentials struct {
	tokens token.Store
}

func NewCredentials(tokens token.Store) (Credentials, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token store is nil")
	}
	return &storedCredentials{tokens: tokens}, nil
}

// AuthState returns the zero state when nothing is cached.
func (c *storedCredentials) AuthState(ctx context.Context, profile string) (domain.AuthState, error) {
	t, err := c.tokens.Get(ctx, profile)
	if err != nil {
		return domain.AuthState{}, err
	}
	return adapters.MapStoreTokenToDomain(t), nil
}

func (c *storedCredentials) Store(ctx context.Context, profile string, state domain.AuthState, scopes []string) error {
	return c.tokens.Save(ctx, adapters.MapDomainAuthStateToStore(profile, state, scopes))
}
