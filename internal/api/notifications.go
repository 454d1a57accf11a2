package api

import (
	"context"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) CreateNotification(ctx context.Context, n domain.Notification) error {
	return c.post(ctx, "/notifications", n, nil)
}

func (c *Client) ListFavorites(ctx context.Context) ([]domain.Favorite, error) {
	var out []domain.Favorite
	if err := c.get(ctx, "/favorites", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type addFavoriteRequest struct {
	ProductID string `json:"productId"`
}

func (c *Client) AddFavorite(ctx context.Context, productID string) (*domain.Favorite, error) {
	var out domain.Favorite
	if err := c.post(ctx, "/favorites", addFavoriteRequest{ProductID: productID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id string) error {
	return c.del(ctx, "/favorites/"+id)
}
