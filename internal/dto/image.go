package dto

import "vitrine/internal/domain"

type ListImagesResponse struct {
	Images []domain.Image `json:"images"`
}

type UploadImageResponse struct {
	OK    bool         `json:"ok"`
	Image domain.Image `json:"image"`
}

type DeleteImageResponse struct {
	OK bool `json:"ok"`
}
