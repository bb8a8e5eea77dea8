package auth

import (
	"context"

	"prince-pos/internal/domain"
)

// TokenStore persists the session's token pair between terminal restarts.
type TokenStore interface {
	Save(ctx context.Context, pair domain.TokenPair) error
	Load(ctx context.Context) (domain.TokenPair, error)
	Clear(ctx context.Context) error
}

// Backend covers the authentication endpoints of the remote API.
type Backend interface {
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	Signup(ctx context.Context, username, password string) (*domain.TokenPair, error)
	RefreshToken(ctx context.Context, refresh string) (*domain.TokenPair, error)
	Logout(ctx context.Context, refresh string) error
}
