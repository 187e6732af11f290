package ports

import (
	"context"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Token, error)
	Profile(ctx context.Context, claims domain.Claims) (*domain.User, error)
}
