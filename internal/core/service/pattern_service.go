package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// PatternService implements pattern file upload, listing, download and delete.
type PatternService struct {
	patterns ports.PatternRepository
	orders   ports.OrderRepository
	blobs    ports.BlobStore
	log      zerolog.Logger
}

func NewPatternService(
	patterns ports.PatternRepository,
	orders ports.OrderRepository,
	blobs ports.BlobStore,
	log zerolog.Logger,
) *PatternService {
	return &PatternService{patterns: patterns, orders: orders, blobs: blobs, log: log}
}

// Upload stores the file bytes and persists a pattern record. Slots
// accumulate: uploading into an occupied slot adds another file rather than
// replacing the existing one.
func (s *PatternService) Upload(ctx context.Context, actor *domain.User, orderID string, in ports.UploadPatternInput) (*domain.Pattern, error) {
	if !domain.ValidStage(in.Stage) {
		return nil, domain.ErrInvalidStage
	}
	if !domain.ValidSlot(in.Slot) {
		return nil, domain.ErrInvalidSlot
	}
	if !actor.Role.Can(domain.UploadAction(in.Stage)) {
		return nil, domain.ErrForbidden
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	fileID, err := s.blobs.Put(ctx, in.Filename, in.Content)
	if err != nil {
		return nil, err
	}

	pattern := &domain.Pattern{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		Stage:      in.Stage,
		Slot:       in.Slot,
		FileID:     fileID,
		Filename:   in.Filename,
		UploadedBy: actor.ID,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.patterns.Insert(ctx, pattern); err != nil {
		return nil, err
	}

	// The first initial-stage upload marks when pattern making started.
	if in.Stage == domain.StageInitial && order.InitialPatternDate == "" {
		now := domain.FormatTime(time.Now())
		if err := s.orders.SetInitialPatternDate(ctx, orderID, now); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to stamp initial pattern date")
		}
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("pattern_id", pattern.ID).
		Str("stage", string(in.Stage)).
		Int("slot", in.Slot).
		Msg("pattern uploaded")
	return pattern, nil
}

func (s *PatternService) List(ctx context.Context, actor *domain.User, orderID string, stage domain.Stage) ([]*domain.Pattern, error) {
	return s.patterns.ListByOrder(ctx, orderID, stage)
}

func (s *PatternService) Download(ctx context.Context, actor *domain.User, patternID string) (*ports.FileDownload, error) {
	pattern, err := s.patterns.FindByID(ctx, patternID)
	if err != nil {
		return nil, err
	}
	content, err := s.blobs.Get(ctx, pattern.FileID)
	if err != nil {
		return nil, err
	}
	return &ports.FileDownload{Filename: pattern.Filename, Content: content}, nil
}

// Delete removes the record; the blob delete is best-effort and never blocks it.
func (s *PatternService) Delete(ctx context.Context, actor *domain.User, patternID string) error {
	if !actor.Role.Can(domain.ActionDeletePattern) {
		return domain.ErrForbidden
	}
	pattern, err := s.patterns.FindByID(ctx, patternID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, pattern.FileID); err != nil {
		s.log.Warn().Err(err).Str("file_id", pattern.FileID).Msg("orphaned blob left behind")
	}
	if err := s.patterns.Delete(ctx, patternID); err != nil {
		return err
	}
	s.log.Info().Str("pattern_id", patternID).Msg("pattern deleted")
	return nil
}
