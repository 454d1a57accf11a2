package api

import (
	"context"
	"net/url"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) DefaultAddress(ctx context.Context) (*domain.Address, error) {
	var out domain.Address
	if err := c.get(ctx, "/orders/default-address", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var out []domain.Address
	if err := c.get(ctx, "/addresses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, addr domain.Address) (*domain.Address, error) {
	var out domain.Address
	if err := c.post(ctx, "/addresses", addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.del(ctx, "/addresses/"+url.PathEscape(id))
}
