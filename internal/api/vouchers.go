package api

import (
	"context"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

func (c *Client) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	var out []domain.Voucher
	if err := c.get(ctx, "/vouchers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUserVouchers(ctx context.Context) ([]domain.UserVoucher, error) {
	var out []domain.UserVoucher
	if err := c.get(ctx, "/vouchers/user/vouchers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type exchangeVoucherRequest struct {
	VoucherID string `json:"voucherId"`
}

// ExchangeVoucher redeems reward points for a voucher. Insufficient
// points come back as a business failure with server text.
func (c *Client) ExchangeVoucher(ctx context.Context, voucherID string) (*domain.UserVoucher, error) {
	var out domain.UserVoucher
	req := exchangeVoucherRequest{VoucherID: voucherID}
	if err := c.post(ctx, "/vouchers/rewards/exchange", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
