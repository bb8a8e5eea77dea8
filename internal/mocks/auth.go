package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prince-pos/internal/auth"
	"prince-pos/internal/domain"
)

// AuthBackend is a mock of auth.Backend.
type AuthBackend struct {
	mock.Mock
}

func NewAuthBackend(t constructorTestingT) *AuthBackend {
	m := &AuthBackend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthBackend) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	var pair *domain.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*domain.TokenPair)
	}
	return pair, args.Error(1)
}

func (m *AuthBackend) Signup(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, username, password)
	var pair *domain.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*domain.TokenPair)
	}
	return pair, args.Error(1)
}

func (m *AuthBackend) RefreshToken(ctx context.Context, refresh string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refresh)
	var pair *domain.TokenPair
	if args.Get(0) != nil {
		pair = args.Get(0).(*domain.TokenPair)
	}
	return pair, args.Error(1)
}

func (m *AuthBackend) Logout(ctx context.Context, refresh string) error {
	return m.Called(ctx, refresh).Error(0)
}

var _ auth.Backend = (*AuthBackend)(nil)

// Session is a mock of httpapi.Session.
type Session struct {
	mock.Mock
}

func NewSession(t constructorTestingT) *Session {
	m := &Session{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Session) Authenticated() bool {
	return m.Called().Bool(0)
}

func (m *Session) Verify(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *Session) Login(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *Session) Signup(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

func (m *Session) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
