package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

// WhatsAppForwarder relays order details to the messaging provider's graph
// API. Calls are best-effort: no retries, and a failure never touches the
// already-persisted order.
type WhatsAppForwarder struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	logger *zap.Logger
}

func NewWhatsAppForwarder(cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppForwarder {
	return &WhatsAppForwarder{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type textMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type imageMessage struct {
	MessagingProduct string    `json:"messaging_product"`
	To               string    `json:"to"`
	Type             string    `json:"type"`
	Image            imageBody `json:"image"`
}

type imageBody struct {
	Link    string `json:"link"`
	Caption string `json:"caption"`
}

// Notify sends the order summary as a text message, followed by an image
// message when the order carries an image reference.
func (f *WhatsAppForwarder) Notify(ctx context.Context, order domain.Order) error {
	summary := buildSummary(order)

	err := f.post(ctx, textMessage{
		MessagingProduct: "whatsapp",
		To:               f.cfg.AdminRecipient,
		Type:             "text",
		Text:             textBody{Body: summary},
	})
	if err != nil {
		return errors.NewUpstreamError("sending order notification", err)
	}

	if order.ImageURL != nil {
		err := f.post(ctx, imageMessage{
			MessagingProduct: "whatsapp",
			To:               f.cfg.AdminRecipient,
			Type:             "image",
			Image: imageBody{
				Link:    *order.ImageURL,
				Caption: order.ProductTitle,
			},
		})
		if err != nil {
			return errors.NewUpstreamError("sending order image", err)
		}
	}

	f.logger.Info("order forwarded",
		zap.String("orderId", order.ID),
		zap.Bool("withImage", order.ImageURL != nil),
	)

	return nil
}

func (f *WhatsAppForwarder) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", f.cfg.APIBase, f.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.cfg.AccessToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling messaging provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("messaging provider returned status %d", resp.StatusCode)
	}

	return nil
}

func buildSummary(order domain.Order) string {
	var b strings.Builder
	b.WriteString("New order received\n")
	fmt.Fprintf(&b, "Product: %s\n", order.ProductTitle)
	fmt.Fprintf(&b, "Price: %s\n", order.Price)
	if order.Size != nil {
		fmt.Fprintf(&b, "Size: %s\n", *order.Size)
	}
	if order.CustomerPhone != nil {
		fmt.Fprintf(&b, "Customer: %s\n", *order.CustomerPhone)
	}
	fmt.Fprintf(&b, "Order ID: %s", order.ID)
	return b.String()
}
