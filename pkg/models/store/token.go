package store

import "time"

type Token struct {
	Profile     string
	AccessToken string
	Scopes      string
	ExpiresAt   time.Time
	UpdatedAt   time.Time
}
