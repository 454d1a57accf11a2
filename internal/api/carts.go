package api

import (
	"context"
	"net/url"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var out domain.Cart
	if err := c.get(ctx, "/carts", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*domain.CartItem, error) {
	var out domain.CartItem
	req := addCartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.post(ctx, "/carts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.del(ctx, "/carts/"+url.PathEscape(itemID))
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.del(ctx, "/carts/clear")
}
