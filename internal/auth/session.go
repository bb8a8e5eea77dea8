package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"prince-pos/internal/domain"
	"prince-pos/internal/remote"
)

var _ remote.TokenSource = (*Session)(nil)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRefreshExpired   = errors.New("refresh token expired")
)

// Session owns the terminal's token pair. Tokens are decoded only to read
// the exp claim; signature verification is the backend's job.
type Session struct {
	backend Backend
	store   TokenStore

	mu         sync.Mutex
	pair       domain.TokenPair
	accessExp  time.Time
	refreshExp time.Time
}

func NewSession(backend Backend, store TokenStore) *Session {
	return &Session{backend: backend, store: store}
}

// Rehydrate loads a persisted token pair at startup. A missing pair is not
// an error; the terminal simply starts logged out.
func (s *Session) Rehydrate(ctx context.Context) error {
	pair, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.adopt(pair)
	return nil
}

func (s *Session) adopt(pair domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.accessExp = tokenExpiry(pair.Access)
	s.refreshExp = tokenExpiry(pair.Refresh)
}

// tokenExpiry reads the exp claim without verifying the signature. A token
// that cannot be parsed is treated as already expired.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.StandardClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(claims.ExpiresAt, 0)
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Access != "" || s.pair.Refresh != ""
}

// Access returns a usable access token, refreshing first when the current
// one is already expired and a live refresh token exists.
func (s *Session) Access(ctx context.Context) (string, error) {
	s.mu.Lock()
	access := s.pair.Access
	expired := access == "" || !s.accessExp.IsZero() && time.Now().After(s.accessExp)
	refreshable := s.pair.Refresh != "" && (s.refreshExp.IsZero() || time.Now().Before(s.refreshExp))
	s.mu.Unlock()

	if !expired {
		return access, nil
	}
	if !refreshable {
		return "", ErrNotAuthenticated
	}
	return s.Refresh(ctx)
}

// Refresh exchanges the refresh token for a new access token.
func (s *Session) Refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	refresh := s.pair.Refresh
	s.mu.Unlock()

	if refresh == "" {
		return "", ErrNotAuthenticated
	}

	pair, err := s.backend.RefreshToken(ctx, refresh)
	if err != nil {
		return "", err
	}

	s.adopt(*pair)
	if err := s.store.Save(ctx, *pair); err != nil {
		log.Printf("Warning: failed to persist refreshed tokens: %v", err)
	}
	return pair.Access, nil
}

// Verify reports whether the session is usable, refreshing transparently
// when the access token has expired. A failed refresh clears the session.
func (s *Session) Verify(ctx context.Context) bool {
	s.mu.Lock()
	hasAccess := s.pair.Access != ""
	accessLive := hasAccess && (s.accessExp.IsZero() || time.Now().Before(s.accessExp))
	hasRefresh := s.pair.Refresh != ""
	s.mu.Unlock()

	if accessLive {
		return true
	}
	if !hasRefresh {
		_ = s.Clear(ctx)
		return false
	}
	if _, err := s.Refresh(ctx); err != nil {
		_ = s.Clear(ctx)
		return false
	}
	return true
}

func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.pair = domain.TokenPair{}
	s.accessExp = time.Time{}
	s.refreshExp = time.Time{}
	s.mu.Unlock()
	return s.store.Clear(ctx)
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	pair, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.adopt(*pair)
	return s.store.Save(ctx, *pair)
}

func (s *Session) Signup(ctx context.Context, username, password string) error {
	pair, err := s.backend.Signup(ctx, username, password)
	if err != nil {
		return err
	}
	s.adopt(*pair)
	return s.store.Save(ctx, *pair)
}

func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.pair.Refresh
	s.mu.Unlock()

	if refresh != "" {
		if err := s.backend.Logout(ctx, refresh); err != nil {
			log.Printf("Warning: backend logout failed: %v", err)
		}
	}
	return s.Clear(ctx)
}

// StartAutoRefresh proactively refreshes the access token on a fixed
// interval so the API never sees an expired one. Stops on ctx cancel.
func (s *Session) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !s.Authenticated() {
					continue
				}
				if _, err := s.Refresh(ctx); err != nil {
					log.Printf("Warning: background token refresh failed: %v", err)
				}
			}
		}
	}()
}
