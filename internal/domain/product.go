package domain

type Product struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount"`
	Quantity        int     `json:"quantity"`
	Image           string  `json:"image"`
	Description     string  `json:"description"`
}

// FinalPrice is the unit price after the product's own discount.
func (p Product) FinalPrice() float64 {
	return p.Price * (1 - p.DiscountPercent/100)
}
