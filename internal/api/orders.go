package api

import (
	"context"
	"net/http"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

// CreateOrder submits the order exactly once per idempotency key; the
// backend replays the stored response for a duplicate key instead of
// creating a second order.
func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, idempotencyKey string) (*domain.Order, error) {
	var out domain.Order
	headers := map[string]string{"Idempotency-Key": idempotencyKey}
	if err := c.doRequest(ctx, http.MethodPost, "/orders", headers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}
