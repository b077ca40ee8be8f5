package ports

import (
	"context"
	"io"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// SendMessageInput carries one chat submission. Image is nil when no image
// was attached.
type SendMessageInput struct {
	Message         string
	ImageFilename   string
	Image           io.Reader
	QuotedMessageID string
}

// ChatService defines use-case operations on per-order chat threads.
type ChatService interface {
	Send(ctx context.Context, actor *domain.User, orderID string, in SendMessageInput) (*domain.ChatMessage, error)
	List(ctx context.Context, actor *domain.User, orderID string) ([]*domain.ChatMessage, error)
	// GetImage fetches a chat image by its opaque blob reference. Callers are
	// not authenticated; access control is by knowledge of the reference only.
	GetImage(ctx context.Context, imageID string) ([]byte, error)
}
