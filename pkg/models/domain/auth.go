package domain

import "time"

// AuthState is an immutable snapshot of the credential used to call the API.
// The zero value means no credential is available.
type AuthState struct {
	token  string
	expiry time.Time
}

// NewAuthState returns a state holding token until expiry.
func NewAuthState(token string, expiry time.Time) AuthState {
	return AuthState{token: token, expiry: expiry}
}

func (a AuthState) Token() string {
	return a.token
}

func (a AuthState) Expiry() time.Time {
	return a.expiry
}

// Valid reports whether the credential exists and has not expired at now.
func (a AuthState) Valid(now time.Time) bool {
	return a.token != "" && now.Before(a.expiry)
}
