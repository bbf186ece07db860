package order

import (
	"github.com/corray333/backend-labs/notify/internal/service/models/orderitem"
)

// Order represents an order submitted from the storefront checkout.
// Totals are taken from the client as is and are never recomputed.
type Order struct {
	CustomerName    string                `json:"customerName"`
	CustomerEmail   string                `json:"customerEmail"`
	CustomerPhone   string                `json:"customerPhone"`
	CustomerAddress string                `json:"customerAddress"`
	Items           []orderitem.OrderItem `json:"items"`
	TotalPrice      int64                 `json:"totalPrice"`
	DeliveryCost    int64                 `json:"deliveryCost"`
	FinalPrice      int64                 `json:"finalPrice"`
}
