package image

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/internal/domain"
	"vitrine/internal/dto"
	apperrors "vitrine/internal/errors"
)

type Controller struct {
	service  Service
	maxBytes int64
	logger   *zap.Logger
}

func NewController(service Service, maxBytes int64, logger *zap.Logger) *Controller {
	return &Controller{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

func (c *Controller) ListImages(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	images, err := c.service.List(r.Context())
	if err != nil {
		c.handleError(w, traceID, err)
		return
	}

	if images == nil {
		images = []domain.Image{}
	}

	c.writeJSON(w, http.StatusOK, dto.ListImagesResponse{Images: images})
}

func (c *Controller) UploadImage(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	// Cap the whole request body; a 6 MB upload fails here before the
	// service ever sees it.
	r.Body = http.MaxBytesReader(w, r.Body, c.maxBytes+1024)

	if err := r.ParseMultipartForm(c.maxBytes); err != nil {
		c.writeValidationError(w, traceID, "invalid multipart body", apperrors.ValidationDetail{
			Field:   "image",
			Message: "request must be multipart/form-data with an image field within the size limit",
		})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		c.writeValidationError(w, traceID, "missing image field", apperrors.ValidationDetail{
			Field:   "image",
			Message: "multipart field 'image' is required",
		})
		return
	}
	defer file.Close()

	saved, err := c.service.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		c.handleError(w, traceID, err)
		return
	}

	c.logger.Info("image uploaded",
		zap.String("traceId", traceID),
		zap.String("name", saved.Name),
		zap.Int64("size", saved.Size),
	)

	c.writeJSON(w, http.StatusOK, dto.UploadImageResponse{OK: true, Image: *saved})
}

func (c *Controller) DeleteImage(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	name := chi.URLParam(r, "filename")

	if err := c.service.Delete(r.Context(), name); err != nil {
		c.handleError(w, traceID, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.DeleteImageResponse{OK: true})
}

func (c *Controller) handleError(w http.ResponseWriter, traceID string, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"traceId": traceID,
			"error":   "NOT_FOUND",
			"message": nf.Message,
		})
		return
	}

	c.logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"traceId": traceID,
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, traceID, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
