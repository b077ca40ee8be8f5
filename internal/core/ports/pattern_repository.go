package ports

import (
	"context"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// PatternRepository defines persistence operations for pattern records.
type PatternRepository interface {
	Insert(ctx context.Context, p *domain.Pattern) error
	FindByID(ctx context.Context, id string) (*domain.Pattern, error)
	// ListByOrder returns the order's patterns, optionally filtered by stage
	// (empty stage = all stages). Results are capped at a fixed limit.
	ListByOrder(ctx context.Context, orderID string, stage domain.Stage) ([]*domain.Pattern, error)
	CountByOrderIDs(ctx context.Context, orderIDs []string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByOrder(ctx context.Context, orderID string) error
}
