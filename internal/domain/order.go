package domain

import "time"

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

type ShippingAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	UserVoucherID   string          `json:"userVoucherId,omitempty"`
	VoucherDiscount float64         `json:"voucherDiscount,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

type Order struct {
	ID              string          `json:"_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}
