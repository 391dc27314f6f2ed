package usecase

import (
	"context"

	"go.uber.org/zap"

	"vitrine/internal/domain"
	"vitrine/internal/dto"
)

type OrderStore interface {
	Append(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ToggleProcessed(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
}

type Forwarder interface {
	Notify(ctx context.Context, order domain.Order) error
}

type OrderUseCase struct {
	store     OrderStore
	forwarder Forwarder
	logger    *zap.Logger
}

func NewOrderUseCase(store OrderStore, forwarder Forwarder, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		store:     store,
		forwarder: forwarder,
		logger:    logger,
	}
}

// Submit persists the order and then forwards it to the messaging provider.
// Persistence happens strictly first: a forwarding failure is returned to the
// caller but the stored record stays.
func (uc *OrderUseCase) Submit(ctx context.Context, req dto.SubmitOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		ProductTitle:  req.ProductTitle,
		Price:         req.Price,
		Size:          req.Size,
		ImageURL:      req.ImageURL,
		CustomerPhone: req.CustomerPhone,
	}

	if err := uc.store.Append(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order persisted",
		zap.String("orderId", order.ID),
		zap.String("productTitle", order.ProductTitle),
	)

	if err := uc.forwarder.Notify(ctx, *order); err != nil {
		uc.logger.Error("order notification failed",
			zap.String("orderId", order.ID),
			zap.Error(err),
		)
		return order, err
	}

	return order, nil
}

func (uc *OrderUseCase) List(ctx context.Context) ([]domain.Order, error) {
	return uc.store.List(ctx)
}

func (uc *OrderUseCase) ToggleProcessed(ctx context.Context, id string) (*domain.Order, error) {
	return uc.store.ToggleProcessed(ctx, id)
}

func (uc *OrderUseCase) Delete(ctx context.Context, id string) (*domain.Order, error) {
	order, err := uc.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order deleted", zap.String("orderId", id))
	return order, nil
}
