package api

import (
	"context"
	"net/url"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
