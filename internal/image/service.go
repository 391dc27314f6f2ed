package image

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

type imageService struct {
	repo     Repository
	maxBytes int64
}

func NewService(repo Repository, maxBytes int64) Service {
	return &imageService{
		repo:     repo,
		maxBytes: maxBytes,
	}
}

func (s *imageService) List(ctx context.Context) ([]domain.Image, error) {
	return s.repo.List(ctx)
}

// Save enforces the upload policy before anything touches disk: image
// content types only, size within the configured cap.
func (s *imageService) Save(ctx context.Context, originalName, contentType string, size int64, data io.Reader) (*domain.Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.NewValidationError("unsupported content type", errors.ValidationDetail{
			Field:   "image",
			Message: fmt.Sprintf("content type %s is not an image", contentType),
		})
	}

	if size > s.maxBytes {
		return nil, errors.NewValidationError("file too large", errors.ValidationDetail{
			Field:   "image",
			Message: fmt.Sprintf("file exceeds the %d byte limit", s.maxBytes),
		})
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return nil, errors.NewValidationError("unsupported file extension", errors.ValidationDetail{
			Field:   "image",
			Message: fmt.Sprintf("extension %q is not allowed", ext),
		})
	}

	// Guard against clients that lie about Content-Length.
	return s.repo.Save(ctx, originalName, io.LimitReader(data, s.maxBytes+1))
}

func (s *imageService) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}
