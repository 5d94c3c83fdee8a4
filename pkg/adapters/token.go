package adapters

import (
	"strings"

	"github.com/de-tools/analytix/pkg/models/domain"
	"github.com/de-tools/analytix/pkg/models/store"
)

func MapStoreTokenToDomain(t *store.Token) domain.AuthState {
	if t == nil {
		return domain.AuthState{}
	}
	return domain.NewAuthState(t.AccessToken, t.ExpiresAt)
}

func MapDomainAuthStateToStore(profile string, state domain.AuthState, scopes []string) store.Token {
	return store.Token{
		Profile:     profile,
		AccessToken: state.Token(),
		Scopes:      strings.Join(scopes, " "),
		ExpiresAt:   state.Expiry(),
	}
}
