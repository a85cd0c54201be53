package file

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// UploadBookCover validates, stores and links a cover image to a book.
	// A 300px thumbnail variant is stored alongside the original.
	UploadBookCover(ctx context.Context, bookID uuid.UUID, fileName string, data []byte, actorID uuid.UUID) (*UploadResp, error)

	// GetImage streams a stored cover, resolved through the owning book.
	GetImage(ctx context.Context, fileName string) (*Image, error)
}
