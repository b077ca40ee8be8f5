package ports

import (
	"context"
	"time"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// OrderMetaUpdate is a partial update of order metadata. Nil fields are left
// untouched.
type OrderMetaUpdate struct {
	OrderNumber           *string
	GoogleSheetLink       *string
	FinalMeasurementsLink *string
}

// Empty reports whether the update carries no fields at all.
func (u OrderMetaUpdate) Empty() bool {
	return u.OrderNumber == nil && u.GoogleSheetLink == nil && u.FinalMeasurementsLink == nil
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// ListCreatedSince returns orders whose creation time is at or after from.
	ListCreatedSince(ctx context.Context, from time.Time) ([]*domain.Order, error)
	UpdateMeta(ctx context.Context, id string, update OrderMetaUpdate) error
	// SetStageDecision records an approval decision. The stage date is written
	// only when stampDate is true; the status is written unconditionally.
	SetStageDecision(ctx context.Context, id string, stage domain.Stage, status domain.StageStatus, date string, stampDate bool) error
	// SetInitialPatternDate stamps the first-initial-upload date.
	SetInitialPatternDate(ctx context.Context, id string, date string) error
	Delete(ctx context.Context, id string) error
}
