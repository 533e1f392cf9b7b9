package auth

import (
	"context"

	"hazard-watch/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*domain.Identity, error) {
	args := m.Called(token)
	var id *domain.Identity
	if args.Get(0) != nil {
		id = args.Get(0).(*domain.Identity)
	}
	return id, args.Error(1)
}
