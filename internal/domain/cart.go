package domain

// CartItem is a single cart line as returned by the backend. Price and
// DiscountPercent are denormalized from the product at add time.
type CartItem struct {
	ID              string  `json:"_id"`
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount"`
	Quantity        int     `json:"quantity"`
	Image           string  `json:"image"`
}

// LineTotal is the discounted unit price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * (1 - i.DiscountPercent/100) * float64(i.Quantity)
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Selection is the set of cart line IDs chosen for checkout. IDs that no
// longer match an existing cart line are ignored, not treated as errors.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) Add(id string)    { s[id] = struct{}{} }
func (s Selection) Remove(id string) { delete(s, id) }
