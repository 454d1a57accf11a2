package checkout

import (
	"regexp"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/domain"
)

// DefaultShippingFee is the flat fee in VND applied unless a
// free-shipping voucher matches.
const DefaultShippingFee = 25000

// freeShipPattern matches vouchers that waive the shipping fee, by code
// or description, in either language the store uses.
var freeShipPattern = regexp.MustCompile(`(?i)free\s?ship|miễn phí ship`)

type Breakdown struct {
	Subtotal        float64 `json:"subtotal"`
	VoucherDiscount float64 `json:"voucherDiscount"`
	ShippingFee     float64 `json:"shippingFee"`
	GrandTotal      float64 `json:"grandTotal"`
}

// Price computes the checkout totals. It is a pure function of its
// inputs: cart lines outside the selection contribute nothing, the
// voucher discount applies to the selected subtotal, and free-shipping
// vouchers zero the fee while their percentage still applies. The
// discount is clamped to the subtotal, so the grand total is never
// negative.
func Price(items []domain.CartItem, selection domain.Selection, voucher *domain.Voucher, shippingFee float64) Breakdown {
	b := Breakdown{ShippingFee: shippingFee}

	for _, it := range items {
		if selection.Has(it.ID) {
			b.Subtotal += it.LineTotal()
		}
	}

	if voucher != nil {
		b.VoucherDiscount = b.Subtotal * voucher.DiscountPercent / 100
		if b.VoucherDiscount > b.Subtotal {
			b.VoucherDiscount = b.Subtotal
		}
		if IsFreeShip(voucher) {
			b.ShippingFee = 0
		}
	}

	b.GrandTotal = b.Subtotal - b.VoucherDiscount + b.ShippingFee
	return b
}

func IsFreeShip(v *domain.Voucher) bool {
	return freeShipPattern.MatchString(v.Code) || freeShipPattern.MatchString(v.Description)
}
