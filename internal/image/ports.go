package image

import (
	"context"
	"io"

	"vitrine/internal/domain"
)

type Service interface {
	List(ctx context.Context) ([]domain.Image, error)
	Save(ctx context.Context, originalName, contentType string, size int64, data io.Reader) (*domain.Image, error)
	Delete(ctx context.Context, name string) error
}

type Repository interface {
	List(ctx context.Context) ([]domain.Image, error)
	Save(ctx context.Context, originalName string, data io.Reader) (*domain.Image, error)
	Delete(ctx context.Context, name string) error
}
