package dto

import "vitrine/internal/domain"

type SubmitOrderRequest struct {
	ProductTitle  string  `json:"productTitle"`
	Price         string  `json:"price"`
	Size          *string `json:"size,omitempty"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

type SubmitOrderResponse struct {
	OK bool `json:"ok"`
}

type ListOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}
