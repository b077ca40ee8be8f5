package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// UserService covers admin-only user management. Every method checks that the
// actor holds the user management permission before touching state.
type UserService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	ChangeRole(ctx context.Context, actor *domain.User, userID string, role domain.Role) (*domain.User, error)
	Approve(ctx context.Context, actor *domain.User, userID string) (*domain.User, error)
	ToggleActive(ctx context.Context, actor *domain.User, userID string) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, userID string) error
}
