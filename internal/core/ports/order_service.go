package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// CreateOrderInput carries the data needed to create a new order.
type CreateOrderInput struct {
	OrderNumber     string
	GoogleSheetLink string
}

// ApprovalInput is a stage decision taken by a checker or admin.
type ApprovalInput struct {
	Stage  domain.Stage
	Status domain.StageStatus
}

// OrderService defines use-case operations on orders and their stage decisions.
type OrderService interface {
	Create(ctx context.Context, actor *domain.User, in CreateOrderInput) (*domain.Order, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Order, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error)
	Update(ctx context.Context, actor *domain.User, id string, update OrderMetaUpdate) (*domain.Order, error)
	// Delete removes the order and cascades to its patterns, chat messages and
	// stored files. Blob deletion is best-effort.
	Delete(ctx context.Context, actor *domain.User, id string) error
	Decide(ctx context.Context, actor *domain.User, id string, in ApprovalInput) error
}
