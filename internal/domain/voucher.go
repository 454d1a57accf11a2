package domain

type Voucher struct {
	ID              string  `json:"_id"`
	Code            string  `json:"code"`
	Description     string  `json:"description"`
	DiscountPercent float64 `json:"discount"`
	PointCost       int     `json:"pointCost"`
}

// UserVoucher is a voucher already redeemed by the user.
type UserVoucher struct {
	ID      string  `json:"_id"`
	Voucher Voucher `json:"voucher"`
	Used    bool    `json:"used"`
}
