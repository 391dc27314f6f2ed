package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/internal/domain"
	"vitrine/internal/dto"
	apperrors "vitrine/internal/errors"
)

var imageURLPattern = regexp.MustCompile(`^https?://`)

type OrderUseCase interface {
	Submit(ctx context.Context, req dto.SubmitOrderRequest) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ToggleProcessed(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if validationErr := validateSubmitRequest(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, err := c.useCase.Submit(r.Context(), req); err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.SubmitOrderResponse{OK: true})
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	orders, err := c.useCase.List(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, c.logger.With(zap.String("traceId", traceID)))
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	c.writeJSON(w, http.StatusOK, dto.ListOrdersResponse{Orders: orders})
}

func (c *OrderController) ToggleProcessed(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	id := chi.URLParam(r, "id")

	order, err := c.useCase.ToggleProcessed(r.Context(), id)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, c.logger.With(zap.String("traceId", traceID)))
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	id := chi.URLParam(r, "id")

	order, err := c.useCase.Delete(r.Context(), id)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, c.logger.With(zap.String("traceId", traceID)))
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

// Limits are defined in characters, not bytes; multibyte input within the
// limits must pass.
func validateSubmitRequest(req dto.SubmitOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.ProductTitle == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productTitle",
			Message: "productTitle is required",
		})
	} else if utf8.RuneCountInString(req.ProductTitle) > domain.MaxTitleLen {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productTitle",
			Message: "productTitle exceeds maximum of 200 characters",
		})
	}

	if req.Price == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price is required",
		})
	} else if utf8.RuneCountInString(req.Price) > domain.MaxPriceLen {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price exceeds maximum of 50 characters",
		})
	}

	if req.Size != nil && utf8.RuneCountInString(*req.Size) > domain.MaxSizeLen {
		details = append(details, apperrors.ValidationDetail{
			Field:   "size",
			Message: "size exceeds maximum of 20 characters",
		})
	}

	if req.ImageURL != nil && !imageURLPattern.MatchString(*req.ImageURL) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "imageUrl",
			Message: "imageUrl must be an http(s) URL",
		})
	}

	if req.CustomerPhone != nil && utf8.RuneCountInString(*req.CustomerPhone) > domain.MaxPhoneLen {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerPhone",
			Message: "customerPhone exceeds maximum of 20 characters",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"traceId": traceID,
			"error":   "NOT_FOUND",
			"message": nf.Message,
		})
		return
	}

	if _, ok := apperrors.IsUpstreamError(err); ok {
		logger.Error("messaging provider call failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"traceId": traceID,
			"error":   "UPSTREAM_ERROR",
			"message": "order stored but notification failed",
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
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

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
