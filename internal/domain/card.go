package domain

type Card struct {
	ID        string `json:"_id"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"expMonth"`
	ExpYear   int    `json:"expYear"`
	IsDefault bool   `json:"isDefault"`
}

type Address struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Province  string `json:"province"`
	District  string `json:"district"`
	Ward      string `json:"ward"`
	IsDefault bool   `json:"isDefault"`
}

// Shipping converts an address-book entry into the order shipping shape.
func (a Address) Shipping() ShippingAddress {
	return ShippingAddress{
		Name:     a.Name,
		Phone:    a.Phone,
		Address:  a.Address,
		Province: a.Province,
		District: a.District,
		Ward:     a.Ward,
	}
}

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type Favorite struct {
	ID        string  `json:"_id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}
