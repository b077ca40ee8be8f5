package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// ChatRepository defines persistence operations for chat messages.
type ChatRepository interface {
	Insert(ctx context.Context, msg *domain.ChatMessage) error
	FindByID(ctx context.Context, id string) (*domain.ChatMessage, error)
	// ListByOrder returns the order's messages ordered by creation time ascending.
	ListByOrder(ctx context.Context, orderID string) ([]*domain.ChatMessage, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}
