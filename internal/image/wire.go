package image

import (
	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/image/repository"
)

func NewModule(cfg config.ImagesConfig, logger *zap.Logger) *Controller {
	repo := repository.NewDirStore(cfg.UploadDir, cfg.PublicPath)
	svc := NewService(repo, cfg.MaxUploadBytes)
	return NewController(svc, cfg.MaxUploadBytes, logger)
}
