package ports

import (
	"context"
	"io"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// UploadPatternInput carries one multipart pattern upload.
type UploadPatternInput struct {
	Stage    domain.Stage
	Slot     int
	Filename string
	Content  io.Reader
}

// FileDownload is the payload returned when fetching a stored file.
type FileDownload struct {
	Filename string
	Content  []byte
}

// PatternService defines use-case operations on pattern files.
type PatternService interface {
	Upload(ctx context.Context, actor *domain.User, orderID string, in UploadPatternInput) (*domain.Pattern, error)
	List(ctx context.Context, actor *domain.User, orderID string, stage domain.Stage) ([]*domain.Pattern, error)
	Download(ctx context.Context, actor *domain.User, patternID string) (*FileDownload, error)
	Delete(ctx context.Context, actor *domain.User, patternID string) error
}
