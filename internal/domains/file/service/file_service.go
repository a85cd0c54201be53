package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/domains/file"
	"libreria-backend/internal/infrastructure/storage"
	"libreria-backend/pkg/logger"
)

const (
	objectPrefix  = "books/"
	thumbPrefix   = "books/thumbs/"
	thumbnailSize = 300
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

type fileServiceImpl struct {
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
	books     book.Repository
	baseURL   string
}

func NewFileService(
	store *storage.MinIOStorage,
	processor *storage.ImageProcessor,
	books book.Repository,
	baseURL string,
) file.Service {
	return &fileServiceImpl{
		storage:   store,
		processor: processor,
		books:     books,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *fileServiceImpl) UploadBookCover(ctx context.Context, bookID uuid.UUID, fileName string, data []byte, actorID uuid.UUID) (*file.UploadResp, error) {
	ext := strings.ToLower(path.Ext(fileName))
	contentType, allowed := contentTypes[ext]
	if !allowed {
		return nil, file.ErrInvalidExtension
	}

	if err := s.processor.ValidateImage(data); err != nil {
		if int64(len(data)) > s.processor.MaxSize {
			return nil, file.ErrFileTooLarge
		}
		return nil, file.ErrInvalidImage
	}

	// The book must exist before anything is written to storage.
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	objectName := uuid.NewString() + ext
	if err := s.storage.Upload(ctx, objectPrefix+objectName, data, contentType); err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	// A failed thumbnail does not fail the upload: the original is already
	// stored and linked below.
	if thumb, err := s.processor.Thumbnail(data, thumbnailSize); err == nil {
		if err := s.storage.Upload(ctx, thumbPrefix+objectName, thumb, "image/jpeg"); err != nil {
			logger.Error("thumbnail upload failed", err)
		}
	} else {
		logger.Error("thumbnail generation failed", err)
	}

	secureURL := s.baseURL + "/" + objectName
	if err := s.books.SetImageURL(ctx, bookID, secureURL, actorID); err != nil {
		return nil, err
	}

	return &file.UploadResp{SecureURL: secureURL}, nil
}

func (s *fileServiceImpl) GetImage(ctx context.Context, fileName string) (*file.Image, error) {
	// Only images referenced by a live book are served.
	if _, err := s.books.GetByImageName(ctx, fileName); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return nil, &file.NoBookError{Name: fileName}
		}
		return nil, err
	}

	data, contentType, err := s.storage.Download(ctx, objectPrefix+fileName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, &file.NoBookError{Name: fileName}
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	if contentType == "" {
		contentType = contentTypes[strings.ToLower(path.Ext(fileName))]
	}

	return &file.Image{Data: data, ContentType: contentType}, nil
}
