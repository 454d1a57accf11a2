package api

import (
	"context"
	"net/url"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) ListCards(ctx context.Context) ([]domain.Card, error) {
	var out []domain.Card
	if err := c.get(ctx, "/cards", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type addCardRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	SetDefault      bool   `json:"setDefault"`
}

// AddCard registers a processor payment method against the user account.
func (c *Client) AddCard(ctx context.Context, paymentMethodID string, setDefault bool) (*domain.Card, error) {
	var out domain.Card
	req := addCardRequest{PaymentMethodID: paymentMethodID, SetDefault: setDefault}
	if err := c.post(ctx, "/cards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.del(ctx, "/cards/"+url.PathEscape(id))
}
