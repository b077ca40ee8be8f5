package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// ChatService implements the per-order chat thread.
type ChatService struct {
	chats ports.ChatRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewChatService(chats ports.ChatRepository, blobs ports.BlobStore, log zerolog.Logger) *ChatService {
	return &ChatService{chats: chats, blobs: blobs, log: log}
}

// Send appends a message to the order's thread. A message needs text or an
// image; image attachment is limited to roles that handle pattern files.
// Quoting snapshots the quoted text and author at send time; a dangling
// quoted id simply produces no snapshot.
func (s *ChatService) Send(ctx context.Context, actor *domain.User, orderID string, in ports.SendMessageInput) (*domain.ChatMessage, error) {
	if strings.TrimSpace(in.Message) == "" && in.Image == nil {
		return nil, domain.ErrEmptyMessage
	}
	if in.Image != nil && !actor.Role.Can(domain.ActionAttachChatImage) {
		return nil, domain.ErrForbidden
	}

	var imageID string
	if in.Image != nil {
		id, err := s.blobs.Put(ctx, in.ImageFilename, in.Image)
		if err != nil {
			return nil, err
		}
		imageID = id
	}

	msg := &domain.ChatMessage{
		ID:              uuid.NewString(),
		OrderID:         orderID,
		UserID:          actor.ID,
		UserName:        actor.Name,
		Message:         in.Message,
		ImageID:         imageID,
		QuotedMessageID: in.QuotedMessageID,
		CreatedAt:       time.Now().UTC(),
	}

	if in.QuotedMessageID != "" {
		quoted, err := s.chats.FindByID(ctx, in.QuotedMessageID)
		switch {
		case err == nil:
			msg.QuotedMessageText = quoted.Message
			msg.QuotedUserName = quoted.UserName
		case errors.Is(err, domain.ErrMessageNotFound):
			// broken reference: keep the id, skip the snapshot
		default:
			return nil, err
		}
	}

	if err := s.chats.Insert(ctx, msg); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("message_id", msg.ID).
		Bool("has_image", imageID != "").
		Msg("chat message sent")
	return msg, nil
}

func (s *ChatService) List(ctx context.Context, actor *domain.User, orderID string) ([]*domain.ChatMessage, error) {
	return s.chats.ListByOrder(ctx, orderID)
}

// GetImage serves a chat image by blob reference. Any storage failure is
// reported as a missing image to avoid leaking storage internals on an
// unauthenticated endpoint.
func (s *ChatService) GetImage(ctx context.Context, imageID string) ([]byte, error) {
	content, err := s.blobs.Get(ctx, imageID)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}
	return content, nil
}
