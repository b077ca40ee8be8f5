package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a new account and returns a signed access token for it.
	// The first account ever created becomes an auto-approved admin.
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
