package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	SetApproved(ctx context.Context, id string, approved bool) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
