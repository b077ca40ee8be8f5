package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// OrderService implements order CRUD, approval decisions, and the cascading
// delete of an order's patterns and chat thread.
type OrderService struct {
	orders   ports.OrderRepository
	patterns ports.PatternRepository
	chats    ports.ChatRepository
	blobs    ports.BlobStore
	log      zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	patterns ports.PatternRepository,
	chats ports.ChatRepository,
	blobs ports.BlobStore,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, patterns: patterns, chats: chats, blobs: blobs, log: log}
}

func (s *OrderService) Create(ctx context.Context, actor *domain.User, in ports.CreateOrderInput) (*domain.Order, error) {
	if !actor.Role.Can(domain.ActionCreateOrder) {
		return nil, domain.ErrForbidden
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     in.OrderNumber,
		GoogleSheetLink: in.GoogleSheetLink,
		CreatedBy:       actor.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("order created")
	return order, nil
}

func (s *OrderService) List(ctx context.Context, actor *domain.User) ([]*domain.Order, error) {
	if !actor.CanReadOrders() {
		return nil, domain.ErrNotApproved
	}
	return s.orders.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error) {
	if !actor.CanReadOrders() {
		return nil, domain.ErrNotApproved
	}
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) Update(ctx context.Context, actor *domain.User, id string, update ports.OrderMetaUpdate) (*domain.Order, error) {
	if !actor.Role.Can(domain.ActionUpdateOrder) {
		return nil, domain.ErrForbidden
	}
	if update.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	if err := s.orders.UpdateMeta(ctx, id, update); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

// Delete removes the order and everything hanging off it. The steps are
// independent writes with no transaction; blob deletion failures are logged
// and skipped so storage hygiene never blocks the primary delete.
func (s *OrderService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.Role.Can(domain.ActionDeleteOrder) {
		return domain.ErrForbidden
	}

	patterns, err := s.patterns.ListByOrder(ctx, id, "")
	if err != nil {
		return err
	}
	for _, p := range patterns {
		if err := s.blobs.Delete(ctx, p.FileID); err != nil {
			s.log.Warn().Err(err).Str("file_id", p.FileID).Msg("orphaned blob left behind")
		}
	}

	if err := s.patterns.DeleteByOrder(ctx, id); err != nil {
		return err
	}
	if err := s.chats.DeleteByOrder(ctx, id); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("order_id", id).Int("patterns", len(patterns)).Msg("order deleted")
	return nil
}

// Decide records an approval decision on one stage. The initial stage's date
// is stamped only on the first decision; second and approved restamp on every
// call. That asymmetry is long-standing behavior the dashboard depends on.
func (s *OrderService) Decide(ctx context.Context, actor *domain.User, id string, in ports.ApprovalInput) error {
	if !actor.Role.Can(domain.ActionDecideApproval) {
		return domain.ErrForbidden
	}
	if !domain.ValidStage(in.Stage) {
		return domain.ErrInvalidStage
	}
	if !domain.ValidStageStatus(in.Status) {
		return domain.ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	stampDate := true
	if in.Stage == domain.StageInitial {
		stampDate = order.InitialPatternDate == ""
	}

	now := domain.FormatTime(time.Now())
	if err := s.orders.SetStageDecision(ctx, id, in.Stage, in.Status, now, stampDate); err != nil {
		return err
	}

	s.log.Info().
		Str("order_id", id).
		Str("stage", string(in.Stage)).
		Str("status", string(in.Status)).
		Msg("approval decision recorded")
	return nil
}
