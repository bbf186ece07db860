package orderitem

// OrderItem represents an item within an order
type OrderItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// LineTotal returns the unit price multiplied by the quantity.
func (i OrderItem) LineTotal() int64 {
	return i.Price * i.Quantity
}
