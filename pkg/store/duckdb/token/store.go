package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/analytix/pkg/models/store"
	"github.com/de-tools/analytix/pkg/store/duckdb"
)

// Store caches access tokens per profile.
type Store interface {
	Save(ctx context.Context, token store.Token) error
	// Get returns nil when the profile has no cached token.
	Get(ctx context.Context, profile string) (*store.Token, error)
	Delete(ctx context.Context, profile string) error
}

type tokenStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &tokenStore{db: db}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *tokenStore) execer(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *tokenStore) Save(ctx context.Context, token store.Token) error {
	if token.Profile == "" {
		return fmt.Errorf("token profile is required")
	}

	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT OR REPLACE INTO tokens (profile, access_token, scopes, expires_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		token.Profile, token.AccessToken, token.Scopes, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *tokenStore) Get(ctx context.Context, profile string) (*store.Token, error) {
	var (
		token  store.Token
		scopes sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT profile, access_token, scopes, expires_at, updated_at
		FROM tokens
		WHERE profile = ?`,
		profile,
	).Scan(&token.Profile, &token.AccessToken, &scopes, &token.ExpiresAt, &token.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	token.Scopes = scopes.String
	return &token, nil
}

func (s *tokenStore) Delete(ctx context.Context, profile string) error {
	_, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM tokens WHERE profile = ?`, profile)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
